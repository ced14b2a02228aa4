package repository

import (
	"caseforge_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

// Catalog 按分值从低到高
func (r *AchievementRepository) Catalog(ctx context.Context) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.WithContext(ctx).Order("points ASC").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindByCode(ctx context.Context, code string) (*model.Achievement, error) {
	var a model.Achievement
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByUserID 用户已获得的成就，最新的在前
func (r *AchievementRepository) FindByUserID(ctx context.Context, userID string) ([]model.UserAchievementWithDetails, error) {
	var earned []model.UserAchievementWithDetails
	err := r.DB.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&earned).Error
	return earned, err
}

func (r *AchievementRepository) Award(ctx context.Context, userID, achievementID string) (*model.UserAchievement, error) {
	ua := &model.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      time.Now(),
	}
	if err := r.DB.WithContext(ctx).Create(ua).Error; err != nil {
		return nil, err
	}
	return ua, nil
}
