package repository

import (
	"caseforge_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type DailyChallengeRepository struct {
	DB *gorm.DB
}

func NewDailyChallengeRepository(db *gorm.DB) *DailyChallengeRepository {
	return &DailyChallengeRepository{DB: db}
}

func (r *DailyChallengeRepository) FindActiveByDate(ctx context.Context, date string) (*model.DailyChallengeWithCase, error) {
	var dc model.DailyChallengeWithCase
	err := r.DB.WithContext(ctx).
		Preload("Case").
		Where("challenge_date = ? AND is_active = ?", date, true).
		First(&dc).Error
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

func (r *DailyChallengeRepository) Create(ctx context.Context, dc *model.DailyChallenge) error {
	return r.DB.WithContext(ctx).Create(dc).Error
}
