package service

import (
	"caseforge_backend/internal/model"
	"caseforge_backend/pkg/logger"
	"context"

	"go.uber.org/zap"
)

const DefaultRecommendationLimit = 4

// 平均分达到该阈值后推荐更高难度
const (
	advancedScoreThreshold     = 80
	intermediateScoreThreshold = 60
)

// RecommendationService 根据历史提交推荐案例，无状态
type RecommendationService struct {
	Cases       CaseStore
	Submissions SubmissionStore
}

func NewRecommendationService(cases CaseStore, submissions SubmissionStore) *RecommendationService {
	return &RecommendationService{Cases: cases, Submissions: submissions}
}

// TargetDifficulty 按平均分映射目标难度
func TargetDifficulty(avgScore float64) int {
	switch {
	case avgScore >= advancedScoreThreshold:
		return model.DifficultyAdvanced
	case avgScore >= intermediateScoreThreshold:
		return model.DifficultyIntermediate
	default:
		return model.DifficultyBeginner
	}
}

// Recommend 推荐未尝试过的领域中匹配难度的案例；
// 无结果时依次回退到热门案例、精选案例
func (s *RecommendationService) Recommend(ctx context.Context, userID string, limit int) []model.Case {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	completed, err := s.Submissions.CompletedByUser(ctx, userID)
	if err != nil {
		logger.Log.Warn("Failed to load submission history for recommendations",
			zap.String("user_id", userID), zap.Error(err))
		return s.Popular(ctx, limit)
	}

	if len(completed) == 0 {
		return s.TopPicks(ctx, limit)
	}

	var (
		tried []string
		seen  = make(map[string]bool)
		total float64
	)
	for _, sub := range completed {
		if !seen[sub.Case.Domain] {
			seen[sub.Case.Domain] = true
			tried = append(tried, sub.Case.Domain)
		}
		total += sub.ScoreOrZero()
	}
	difficulty := TargetDifficulty(total / float64(len(completed)))

	cases, err := s.Cases.Unexplored(ctx, tried, difficulty, limit)
	if err != nil {
		logger.Log.Warn("Failed to load unexplored cases",
			zap.String("user_id", userID), zap.Int("difficulty", difficulty), zap.Error(err))
		return s.Popular(ctx, limit)
	}
	if len(cases) == 0 {
		return s.Popular(ctx, limit)
	}
	return cases
}

// Popular 至少有一次提交的案例，为空时回退到精选案例
func (s *RecommendationService) Popular(ctx context.Context, limit int) []model.Case {
	cases, err := s.Cases.Popular(ctx, limit)
	if err != nil {
		logger.Log.Warn("Failed to load popular cases", zap.Error(err))
		return s.TopPicks(ctx, limit)
	}
	if len(cases) == 0 {
		return s.TopPicks(ctx, limit)
	}
	return cases
}

// TopPicks 最新的启用案例
func (s *RecommendationService) TopPicks(ctx context.Context, limit int) []model.Case {
	cases, err := s.Cases.Recent(ctx, limit)
	if err != nil {
		logger.Log.Warn("Failed to load top picks", zap.Error(err))
		return []model.Case{}
	}
	return cases
}
