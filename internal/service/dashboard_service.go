package service

import (
	"caseforge_backend/internal/model"
	"caseforge_backend/pkg/logger"
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 仪表盘上展示的成就数量
const dashboardAchievementLimit = 6

type DashboardService struct {
	Profiles        *ProfileService
	Daily           *DailyChallengeService
	Recommendations *RecommendationService
	Achievements    *AchievementService
	Progress        CaseProgressStore
}

func NewDashboardService(
	profiles *ProfileService,
	daily *DailyChallengeService,
	recommendations *RecommendationService,
	achievements *AchievementService,
	progress CaseProgressStore,
) *DashboardService {
	return &DashboardService{
		Profiles:        profiles,
		Daily:           daily,
		Recommendations: recommendations,
		Achievements:    achievements,
		Progress:        progress,
	}
}

type Dashboard struct {
	DisplayName     string                      `json:"display_name"`
	Profile         *model.UserProfile          `json:"profile"`
	Stats           *model.UserStats            `json:"stats"`
	Level           LevelView                   `json:"level"`
	DailyChallenge  *DailyChallengeView         `json:"daily_challenge"`
	Recommendations []model.Case                `json:"recommendations"`
	Achievements    []AchievementBadge          `json:"achievements"`
	Resume          *model.CaseProgressWithCase `json:"resume,omitempty"`
}

// GetUserDashboard 并发读取各个卡片的数据，全部完成后再组装
func (s *DashboardService) GetUserDashboard(ctx context.Context, userID, fallbackName string) *Dashboard {
	d := &Dashboard{}

	var g errgroup.Group
	g.Go(func() error {
		d.Profile = s.Profiles.profile(ctx, userID)
		return nil
	})
	g.Go(func() error {
		d.Stats = s.Profiles.stats(ctx, userID)
		return nil
	})
	g.Go(func() error {
		d.DailyChallenge = s.Daily.View(ctx, userID)
		return nil
	})
	g.Go(func() error {
		d.Recommendations = s.Recommendations.Recommend(ctx, userID, DefaultRecommendationLimit)
		return nil
	})
	g.Go(func() error {
		badges := s.Achievements.Badges(ctx, userID)
		if len(badges) > dashboardAchievementLimit {
			badges = badges[:dashboardAchievementLimit]
		}
		d.Achievements = badges
		return nil
	})
	g.Go(func() error {
		d.Resume = s.resumable(ctx, userID)
		return nil
	})
	_ = g.Wait()

	d.Level = NewLevelView(d.Stats)
	d.DisplayName = fallbackName
	if d.Profile != nil && d.Profile.DisplayName != "" {
		d.DisplayName = d.Profile.DisplayName
	}
	return d
}

// resumable 最近访问且仍启用的未完成案例
func (s *DashboardService) resumable(ctx context.Context, userID string) *model.CaseProgressWithCase {
	progress, err := s.Progress.FindByUser(ctx, userID)
	if err != nil {
		logger.Log.Warn("Failed to load case progress", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	for i := range progress {
		if progress[i].Case.IsActive {
			return &progress[i]
		}
	}
	return nil
}
