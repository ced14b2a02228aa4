package service

import (
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/session"
	"caseforge_backend/pkg/logger"
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultBio = "Business case enthusiast"

// OnboardingService 首次登录时创建资料和统计，订阅会话事件
type OnboardingService struct {
	Profiles     ProfileStore
	Stats        StatsStore
	Achievements *AchievementService
}

func NewOnboardingService(profiles ProfileStore, stats StatsStore, achievements *AchievementService) *OnboardingService {
	return &OnboardingService{Profiles: profiles, Stats: stats, Achievements: achievements}
}

// EnsureUser 补齐缺失的资料和统计，可重复调用；错误只记录不返回
func (s *OnboardingService) EnsureUser(ctx context.Context, sess *session.Session) {
	if sess == nil {
		return
	}

	created := false
	if _, err := s.Profiles.FindByUserID(ctx, sess.UserID); err != nil {
		profile := &model.UserProfile{
			UserID:      sess.UserID,
			DisplayName: sess.DisplayName(),
			AvatarURL:   sess.Metadata.AvatarURL,
			Bio:         defaultBio,
		}
		if err := s.Profiles.Create(ctx, profile); err != nil {
			logger.Log.Warn("Failed to create user profile", zap.String("user_id", sess.UserID), zap.Error(err))
		} else {
			created = true
		}
	}

	if _, err := s.Stats.FindByUserID(ctx, sess.UserID); err != nil {
		stats := &model.UserStats{UserID: sess.UserID, Level: 1}
		if err := s.Stats.Create(ctx, stats); err != nil {
			logger.Log.Warn("Failed to create user stats", zap.String("user_id", sess.UserID), zap.Error(err))
		} else {
			created = true
		}
	}

	if !created {
		return
	}

	if s.Achievements != nil {
		if _, err := s.Achievements.Award(ctx, sess.UserID, model.FirstCaseAchievement); err != nil {
			logger.Log.Debug("First case achievement not awarded", zap.String("user_id", sess.UserID), zap.Error(err))
		}
	}

	logger.Log.Info("New user onboarded", zap.String("user_id", sess.UserID))
}

// Run 消费会话事件直到通道关闭，登录时已同步初始化，这里只补齐遗漏
func (s *OnboardingService) Run(events <-chan session.Event) {
	for e := range events {
		if e.Type != session.SignedIn {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		sess := e.Session
		s.EnsureUser(ctx, &sess)
		cancel()
	}
}
