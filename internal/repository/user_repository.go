package repository

import (
	"caseforge_backend/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertOAuthUser 按邮箱创建或刷新第三方账号信息
func (r *UserRepository) UpsertOAuthUser(ctx context.Context, u *model.User) (*model.User, error) {
	now := time.Now()
	existing, err := r.FindByEmail(ctx, u.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u.LastLogin = now
		if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
			return nil, err
		}
		return u, nil
	}
	if err != nil {
		return nil, err
	}

	err = r.DB.WithContext(ctx).Model(existing).Updates(map[string]interface{}{
		"name":        u.Name,
		"avatar_url":  u.AvatarURL,
		"provider":    u.Provider,
		"provider_id": u.ProviderID,
		"last_login":  now,
	}).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, existing.ID)
}
