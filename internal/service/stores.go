package service

import (
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/repository"
	"context"
	"time"
)

// 以下接口由 repository 包中的实现满足，服务只依赖自己用到的方法

type CaseStore interface {
	List(ctx context.Context, filter repository.CaseFilter) ([]model.Case, error)
	FindByID(ctx context.Context, id string) (*model.Case, error)
	FindBySlug(ctx context.Context, slug string) (*model.Case, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, c *model.Case) error
	Recent(ctx context.Context, limit int) ([]model.Case, error)
	Popular(ctx context.Context, limit int) ([]model.Case, error)
	Unexplored(ctx context.Context, excludedDomains []string, difficulty, limit int) ([]model.Case, error)
	ActiveIDs(ctx context.Context) ([]string, error)
	Domains(ctx context.Context) ([]string, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) error
	FindByUser(ctx context.Context, userID string) ([]model.SubmissionWithCase, error)
	CompletedByUser(ctx context.Context, userID string) ([]model.SubmissionWithCase, error)
	FindByUserSince(ctx context.Context, userID string, since time.Time) ([]model.SubmissionWithCase, error)
}

type StatsStore interface {
	FindByUserID(ctx context.Context, userID string) (*model.UserStats, error)
	Create(ctx context.Context, stats *model.UserStats) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) (*model.UserStats, error)
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type ProfileStore interface {
	FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	Create(ctx context.Context, profile *model.UserProfile) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) (*model.UserProfile, error)
}

type StreakStore interface {
	FindByUserAndDate(ctx context.Context, userID, date string) (*model.UserStreak, error)
	Create(ctx context.Context, streak *model.UserStreak) error
}

type DailyChallengeStore interface {
	FindActiveByDate(ctx context.Context, date string) (*model.DailyChallengeWithCase, error)
	Create(ctx context.Context, dc *model.DailyChallenge) error
}

type AchievementStore interface {
	Catalog(ctx context.Context) ([]model.Achievement, error)
	FindByCode(ctx context.Context, code string) (*model.Achievement, error)
	FindByUserID(ctx context.Context, userID string) ([]model.UserAchievementWithDetails, error)
	Award(ctx context.Context, userID, achievementID string) (*model.UserAchievement, error)
}

type CaseProgressStore interface {
	FindByUser(ctx context.Context, userID string) ([]model.CaseProgressWithCase, error)
	FindByUserAndCase(ctx context.Context, userID, caseID string) (*model.CaseProgress, error)
	Touch(ctx context.Context, userID, caseID string, now time.Time) (*model.CaseProgress, error)
	SaveDraft(ctx context.Context, userID, caseID, draft string, now time.Time) error
	Delete(ctx context.Context, userID, caseID string) error
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpsertOAuthUser(ctx context.Context, u *model.User) (*model.User, error)
}

var (
	_ CaseStore           = (*repository.CaseRepository)(nil)
	_ SubmissionStore     = (*repository.SubmissionRepository)(nil)
	_ StatsStore          = (*repository.StatsRepository)(nil)
	_ ProfileStore        = (*repository.ProfileRepository)(nil)
	_ StreakStore         = (*repository.StreakRepository)(nil)
	_ DailyChallengeStore = (*repository.DailyChallengeRepository)(nil)
	_ AchievementStore    = (*repository.AchievementRepository)(nil)
	_ CaseProgressStore   = (*repository.CaseProgressRepository)(nil)
	_ UserStore           = (*repository.UserRepository)(nil)
)
