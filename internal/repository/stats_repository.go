package repository

import (
	"caseforge_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) FindByUserID(ctx context.Context, userID string) (*model.UserStats, error) {
	var stats model.UserStats
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepository) Create(ctx context.Context, stats *model.UserStats) error {
	return r.DB.WithContext(ctx).Create(stats).Error
}

func (r *StatsRepository) Update(ctx context.Context, userID string, updates map[string]interface{}) (*model.UserStats, error) {
	res := r.DB.WithContext(ctx).Model(&model.UserStats{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByUserID(ctx, userID)
}

// Leaderboard 按总分倒序取前 limit 名，并带上资料中的昵称和头像
func (r *StatsRepository) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.DB.WithContext(ctx).
		Table("user_stats AS s").
		Select(`s.user_id, COALESCE(p.display_name, '') AS display_name, COALESCE(p.avatar_url, '') AS avatar_url,
			s.total_score, s.cases_solved, s.average_score, s.current_streak, s.xp, s.level`).
		Joins("LEFT JOIN user_profiles AS p ON p.user_id = s.user_id").
		Order("s.total_score DESC").
		Order("s.user_id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
