package service

import (
	"caseforge_backend/internal/leveling"
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"context"
	"errors"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ProfileService struct {
	Profiles     ProfileStore
	Stats        StatsStore
	Submissions  SubmissionStore
	Achievements *AchievementService
	Storage      *StorageService
}

func NewProfileService(
	profiles ProfileStore,
	stats StatsStore,
	submissions SubmissionStore,
	achievements *AchievementService,
	storage *StorageService,
) *ProfileService {
	return &ProfileService{
		Profiles:     profiles,
		Stats:        stats,
		Submissions:  submissions,
		Achievements: achievements,
		Storage:      storage,
	}
}

// LevelView 等级卡片：缓存等级优先，进度按经验计算
type LevelView struct {
	Level     int               `json:"level"`
	XP        int               `json:"xp"`
	Progress  leveling.Progress `json:"progress"`
	Percent   float64           `json:"percent"`
	NextLevel int               `json:"next_level"`
}

func NewLevelView(stats *model.UserStats) LevelView {
	if stats == nil {
		return LevelView{Level: 1, Progress: leveling.ProgressForLevel(0, 1), NextLevel: 2}
	}
	level := leveling.CachedOrDerived(stats.Level, stats.XP)
	progress := leveling.ProgressForLevel(stats.XP, level)
	return LevelView{
		Level:     level,
		XP:        stats.XP,
		Progress:  progress,
		Percent:   progress.Percent(),
		NextLevel: level + 1,
	}
}

type ProfileView struct {
	Profile      *model.UserProfile                 `json:"profile"`
	Stats        *model.UserStats                   `json:"stats"`
	Level        LevelView                          `json:"level"`
	Initials     string                             `json:"initials"`
	Submissions  []model.SubmissionWithCase         `json:"submissions"`
	Achievements []model.UserAchievementWithDetails `json:"achievements"`
}

// View 并发读取资料页所需数据，单项失败只会让对应区域为空
func (s *ProfileService) View(ctx context.Context, userID string) *ProfileView {
	view := &ProfileView{
		Submissions:  []model.SubmissionWithCase{},
		Achievements: []model.UserAchievementWithDetails{},
	}

	var g errgroup.Group
	g.Go(func() error {
		view.Profile = s.profile(ctx, userID)
		return nil
	})
	g.Go(func() error {
		view.Stats = s.stats(ctx, userID)
		return nil
	})
	g.Go(func() error {
		subs, err := s.Submissions.FindByUser(ctx, userID)
		if err != nil {
			logger.Log.Warn("Failed to load submissions", zap.String("user_id", userID), zap.Error(err))
			return nil
		}
		view.Submissions = subs
		return nil
	})
	g.Go(func() error {
		if s.Achievements != nil {
			view.Achievements = s.Achievements.Earned(ctx, userID)
		}
		return nil
	})
	_ = g.Wait()

	view.Level = NewLevelView(view.Stats)
	if view.Profile != nil {
		view.Initials = Initials(view.Profile.DisplayName)
	} else {
		view.Initials = Initials("")
	}
	return view
}

func (s *ProfileService) profile(ctx context.Context, userID string) *model.UserProfile {
	p, err := s.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("Failed to load user profile", zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	return p
}

func (s *ProfileService) stats(ctx context.Context, userID string) *model.UserStats {
	st, err := s.Stats.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("Failed to load user stats", zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	return st
}

// Initials 取前两个单词的首字母
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		out = append(out, unicode.ToUpper(r[0]))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "CS"
	}
	return string(out)
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" form:"display_name"`
	Bio         string `json:"bio" form:"bio"`
}

func (s *ProfileService) Update(ctx context.Context, userID string, req *UpdateProfileRequest) (*model.UserProfile, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, util.ErrDisplayNameEmpty
	}

	p, err := s.Profiles.Update(ctx, userID, map[string]interface{}{
		"display_name": name,
		"bio":          strings.TrimSpace(req.Bio),
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProfileNotFound
	}
	return p, err
}

// UploadAvatar 只接受图片，上传后写回资料
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, file *FileUpload) (*model.UserProfile, error) {
	if !strings.HasPrefix(file.ContentType, util.MimeImage) {
		return nil, util.ErrUnsupportedFile
	}

	url, err := s.Storage.Store(ctx, "avatars/"+userID, file, util.AllowedImageExtensions)
	if err != nil {
		return nil, err
	}

	p, err := s.Profiles.Update(ctx, userID, map[string]interface{}{"avatar_url": url})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProfileNotFound
	}
	return p, err
}
