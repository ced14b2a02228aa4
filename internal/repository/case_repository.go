package repository

import (
	"caseforge_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// CaseFilter 零值表示不限制
type CaseFilter struct {
	Domain     string
	Difficulty int
}

type CaseRepository struct {
	DB *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{DB: db}
}

func (r *CaseRepository) active(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&model.Case{}).Where("is_active = ?", true)
}

// List 启用的案例，条件之间为 AND，按创建时间倒序
func (r *CaseRepository) List(ctx context.Context, filter CaseFilter) ([]model.Case, error) {
	q := r.active(ctx)
	if filter.Domain != "" {
		q = q.Where("domain = ?", filter.Domain)
	}
	if filter.Difficulty != 0 {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}

	var cases []model.Case
	if err := q.Order("created_at DESC").Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *CaseRepository) FindByID(ctx context.Context, id string) (*model.Case, error) {
	var c model.Case
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepository) FindBySlug(ctx context.Context, slug string) (*model.Case, error) {
	var c model.Case
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Case{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *CaseRepository) Create(ctx context.Context, c *model.Case) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// Recent 最新的启用案例（"精选"）
func (r *CaseRepository) Recent(ctx context.Context, limit int) ([]model.Case, error) {
	var cases []model.Case
	err := r.active(ctx).Order("created_at DESC").Limit(limit).Find(&cases).Error
	return cases, err
}

// Popular 至少被提交过一次的启用案例
func (r *CaseRepository) Popular(ctx context.Context, limit int) ([]model.Case, error) {
	var cases []model.Case
	err := r.active(ctx).
		Where("EXISTS (SELECT 1 FROM submissions WHERE submissions.case_id = cases.id)").
		Order("created_at DESC").
		Limit(limit).
		Find(&cases).Error
	return cases, err
}

// Unexplored 排除已尝试领域后指定难度的案例
func (r *CaseRepository) Unexplored(ctx context.Context, excludedDomains []string, difficulty, limit int) ([]model.Case, error) {
	q := r.active(ctx).Where("difficulty = ?", difficulty)
	if len(excludedDomains) > 0 {
		q = q.Where("domain NOT IN ?", excludedDomains)
	}

	var cases []model.Case
	err := q.Order("created_at DESC").Limit(limit).Find(&cases).Error
	return cases, err
}

func (r *CaseRepository) ActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.active(ctx).Order("created_at DESC").Pluck("id", &ids).Error
	return ids, err
}

func (r *CaseRepository) Domains(ctx context.Context) ([]string, error) {
	var domains []string
	err := r.active(ctx).Distinct("domain").Order("domain").Pluck("domain", &domains).Error
	return domains, err
}
