package repository

import (
	"caseforge_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

// FindByUserAndDate date 格式为 YYYY-MM-DD
func (r *StreakRepository) FindByUserAndDate(ctx context.Context, userID, date string) (*model.UserStreak, error) {
	var streak model.UserStreak
	err := r.DB.WithContext(ctx).Where("user_id = ? AND streak_date = ?", userID, date).First(&streak).Error
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func (r *StreakRepository) Create(ctx context.Context, streak *model.UserStreak) error {
	return r.DB.WithContext(ctx).Create(streak).Error
}
