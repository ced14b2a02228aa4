package repository

import (
	"caseforge_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// FindByUser 用户全部提交（带案例），最新的在前
func (r *SubmissionRepository) FindByUser(ctx context.Context, userID string) ([]model.SubmissionWithCase, error) {
	var subs []model.SubmissionWithCase
	err := r.DB.WithContext(ctx).
		Preload("Case").
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

// CompletedByUser 推荐算法使用的已完成提交
func (r *SubmissionRepository) CompletedByUser(ctx context.Context, userID string) ([]model.SubmissionWithCase, error) {
	var subs []model.SubmissionWithCase
	err := r.DB.WithContext(ctx).
		Preload("Case").
		Where("user_id = ? AND status = ?", userID, model.SubmissionCompleted).
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]model.SubmissionWithCase, error) {
	var subs []model.SubmissionWithCase
	err := r.DB.WithContext(ctx).
		Preload("Case").
		Where("user_id = ? AND submitted_at >= ?", userID, since).
		Order("submitted_at ASC").
		Find(&subs).Error
	return subs, err
}
