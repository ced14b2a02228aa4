package service

import (
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AchievementService 成就目录与发放；没有自动解锁规则
type AchievementService struct {
	Achievements AchievementStore
}

func NewAchievementService(achievements AchievementStore) *AchievementService {
	return &AchievementService{Achievements: achievements}
}

// AchievementBadge 目录中的成就及当前用户是否已获得
type AchievementBadge struct {
	model.Achievement
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

func (s *AchievementService) Catalog(ctx context.Context) []model.Achievement {
	catalog, err := s.Achievements.Catalog(ctx)
	if err != nil {
		logger.Log.Warn("Failed to load achievement catalog", zap.Error(err))
		return []model.Achievement{}
	}
	return catalog
}

func (s *AchievementService) Earned(ctx context.Context, userID string) []model.UserAchievementWithDetails {
	earned, err := s.Achievements.FindByUserID(ctx, userID)
	if err != nil {
		logger.Log.Warn("Failed to load user achievements", zap.String("user_id", userID), zap.Error(err))
		return []model.UserAchievementWithDetails{}
	}
	return earned
}

// Badges 目录顺序，标记已获得的成就
func (s *AchievementService) Badges(ctx context.Context, userID string) []AchievementBadge {
	catalog := s.Catalog(ctx)
	earnedAt := make(map[string]time.Time)
	for _, ua := range s.Earned(ctx, userID) {
		earnedAt[ua.AchievementID] = ua.EarnedAt
	}

	badges := make([]AchievementBadge, 0, len(catalog))
	for _, a := range catalog {
		badge := AchievementBadge{Achievement: a}
		if t, ok := earnedAt[a.ID]; ok {
			badge.Earned = true
			badge.EarnedAt = &t
		}
		badges = append(badges, badge)
	}
	return badges
}

// Award 按成就编码发放，重复发放返回 ErrAlreadyAwarded
func (s *AchievementService) Award(ctx context.Context, userID, code string) (*model.UserAchievement, error) {
	a, err := s.Achievements.FindByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAchievementUnknown
	}
	if err != nil {
		return nil, err
	}

	ua, err := s.Achievements.Award(ctx, userID, a.ID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrAlreadyAwarded
	}
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Achievement awarded", zap.String("user_id", userID), zap.String("code", code))
	return ua, nil
}
