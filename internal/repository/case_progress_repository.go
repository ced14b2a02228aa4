package repository

import (
	"caseforge_backend/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type CaseProgressRepository struct {
	DB *gorm.DB
}

func NewCaseProgressRepository(db *gorm.DB) *CaseProgressRepository {
	return &CaseProgressRepository{DB: db}
}

// FindByUser 最近访问的在前
func (r *CaseProgressRepository) FindByUser(ctx context.Context, userID string) ([]model.CaseProgressWithCase, error) {
	var progress []model.CaseProgressWithCase
	err := r.DB.WithContext(ctx).
		Preload("Case").
		Where("user_id = ?", userID).
		Order("last_accessed DESC").
		Find(&progress).Error
	return progress, err
}

func (r *CaseProgressRepository) FindByUserAndCase(ctx context.Context, userID, caseID string) (*model.CaseProgress, error) {
	var p model.CaseProgress
	err := r.DB.WithContext(ctx).Where("user_id = ? AND case_id = ?", userID, caseID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Touch 不存在则创建（记录开始时间），存在则只刷新访问时间
func (r *CaseProgressRepository) Touch(ctx context.Context, userID, caseID string, now time.Time) (*model.CaseProgress, error) {
	existing, err := r.FindByUserAndCase(ctx, userID, caseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p := &model.CaseProgress{
			UserID:       userID,
			CaseID:       caseID,
			StartedAt:    now,
			LastAccessed: now,
		}
		if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
			return nil, err
		}
		return p, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(existing).Update("last_accessed", now).Error; err != nil {
		return nil, err
	}
	existing.LastAccessed = now
	return existing, nil
}

func (r *CaseProgressRepository) SaveDraft(ctx context.Context, userID, caseID, draft string, now time.Time) error {
	res := r.DB.WithContext(ctx).Model(&model.CaseProgress{}).
		Where("user_id = ? AND case_id = ?", userID, caseID).
		Updates(map[string]interface{}{"draft": draft, "last_accessed": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CaseProgressRepository) Delete(ctx context.Context, userID, caseID string) error {
	return r.DB.WithContext(ctx).Where("user_id = ? AND case_id = ?", userID, caseID).Delete(&model.CaseProgress{}).Error
}
