package repository

import (
	"caseforge_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.UserProfile) error {
	return r.DB.WithContext(ctx).Create(profile).Error
}

// Update 按 user_id 更新并返回最新记录
func (r *ProfileRepository) Update(ctx context.Context, userID string, updates map[string]interface{}) (*model.UserProfile, error) {
	res := r.DB.WithContext(ctx).Model(&model.UserProfile{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByUserID(ctx, userID)
}
