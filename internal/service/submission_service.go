package service

import (
	"caseforge_backend/internal/leveling"
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/session"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"caseforge_backend/pkg/monitoring"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlaceholderScore 人工评分上线前，平均分按固定 85 分累计
// TODO: 评审流程写入 submissions.score 后改用真实分数
const PlaceholderScore = 85.0

// PointsPerDifficulty 每级难度带来的总分与 XP
const PointsPerDifficulty = 10

type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateComposing  SubmissionState = "composing"
	StateSubmitting SubmissionState = "submitting"
	StateSucceeded  SubmissionState = "succeeded"
	StateFailed     SubmissionState = "failed"
)

// StepError 标记提交流程在哪一步失败，已完成的步骤不会回滚
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("submission step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type SubmissionService struct {
	Cases       CaseStore
	Submissions SubmissionStore
	Stats       StatsStore
	Streaks     StreakStore
	Progress    CaseProgressStore
	Leaderboard *LeaderboardService
	Now         func() time.Time
}

func NewSubmissionService(
	cases CaseStore,
	submissions SubmissionStore,
	stats StatsStore,
	streaks StreakStore,
	progress CaseProgressStore,
	leaderboard *LeaderboardService,
) *SubmissionService {
	return &SubmissionService{
		Cases:       cases,
		Submissions: submissions,
		Stats:       stats,
		Streaks:     streaks,
		Progress:    progress,
		Leaderboard: leaderboard,
		Now:         time.Now,
	}
}

// CaseAttempt 开始作答后的页面状态
type CaseAttempt struct {
	State     SubmissionState `json:"state"`
	Case      *model.Case     `json:"case"`
	StartedAt time.Time       `json:"started_at"`
	Draft     string          `json:"draft,omitempty"`
}

type SubmitRequest struct {
	CaseID    string `json:"case_id"`
	Response  string `json:"response"`
	TimeSpent *int   `json:"time_spent,omitempty"`
}

type SubmitResult struct {
	State         SubmissionState   `json:"state"`
	Submission    *model.Submission `json:"submission,omitempty"`
	Stats         *model.UserStats  `json:"stats,omitempty"`
	XPGained      int               `json:"xp_gained"`
	StreakCreated bool              `json:"streak_created"`
	Message       string            `json:"message,omitempty"`
}

func (s *SubmissionService) loadCase(ctx context.Context, caseID string) (*model.Case, error) {
	c, err := s.Cases.FindByID(ctx, caseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, util.ErrCaseInactive
	}
	return c, nil
}

// StartCase 载入案例并记录开始时间，已有进度时沿用原来的开始时间和草稿
func (s *SubmissionService) StartCase(ctx context.Context, sess *session.Session, caseID string) (*CaseAttempt, error) {
	if sess == nil {
		return &CaseAttempt{State: StateIdle}, util.ErrUnauthenticated
	}

	c, err := s.loadCase(ctx, caseID)
	if err != nil {
		return &CaseAttempt{State: StateIdle}, err
	}

	now := s.Now()
	attempt := &CaseAttempt{State: StateComposing, Case: c, StartedAt: now}

	progress, err := s.Progress.Touch(ctx, sess.UserID, c.ID, now)
	if err != nil {
		logger.Log.Warn("Failed to record case progress",
			zap.String("user_id", sess.UserID),
			zap.String("case_id", c.ID),
			zap.Error(err))
		return attempt, nil
	}

	attempt.StartedAt = progress.StartedAt
	attempt.Draft = progress.Draft
	return attempt, nil
}

// SaveDraft 保存未提交的作答内容
func (s *SubmissionService) SaveDraft(ctx context.Context, sess *session.Session, caseID, draft string) error {
	if sess == nil {
		return util.ErrUnauthenticated
	}
	return s.Progress.SaveDraft(ctx, sess.UserID, caseID, draft, s.Now())
}

// Submit 提交作答：写入提交记录，更新统计，记录当天连续打卡。
// 各步骤之间没有事务，失败时已写入的部分保留。
func (s *SubmissionService) Submit(ctx context.Context, sess *session.Session, req *SubmitRequest) (*SubmitResult, error) {
	if sess == nil {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return &SubmitResult{State: StateComposing, Message: util.ErrUnauthenticated.Error()}, util.ErrUnauthenticated
	}
	if strings.TrimSpace(req.Response) == "" {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return &SubmitResult{State: StateComposing, Message: util.ErrEmptyResponse.Error()}, util.ErrEmptyResponse
	}

	c, err := s.loadCase(ctx, req.CaseID)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return &SubmitResult{State: StateComposing, Message: err.Error()}, err
	}

	result, err := s.submit(ctx, sess.UserID, c, req)
	if err != nil {
		var stepErr *StepError
		step := "unknown"
		if errors.As(err, &stepErr) {
			step = stepErr.Step
		}
		logger.Log.Error("Submission failed",
			zap.String("user_id", sess.UserID),
			zap.String("case_id", c.ID),
			zap.String("step", step),
			zap.Error(err))
		monitoring.SubmissionCounter.WithLabelValues("failed").Inc()
		result.State = StateFailed
		result.Message = "submission failed"
		return result, err
	}

	monitoring.SubmissionCounter.WithLabelValues("succeeded").Inc()
	logger.Log.Info("Submission completed",
		zap.String("user_id", sess.UserID),
		zap.String("case_id", c.ID),
		zap.Int("xp_gained", result.XPGained),
		zap.Bool("streak_created", result.StreakCreated))
	return result, nil
}

func (s *SubmissionService) submit(ctx context.Context, userID string, c *model.Case, req *SubmitRequest) (*SubmitResult, error) {
	now := s.Now()
	today := util.DateOf(now)
	result := &SubmitResult{State: StateSubmitting}

	sub := &model.Submission{
		CaseID:      c.ID,
		UserID:      userID,
		Response:    req.Response,
		TimeSpent:   s.elapsed(ctx, userID, c.ID, req.TimeSpent, now),
		Status:      model.SubmissionCompleted,
		SubmittedAt: now,
	}
	if err := s.Submissions.Create(ctx, sub); err != nil {
		return result, &StepError{Step: "create_submission", Err: err}
	}
	result.Submission = sub

	_, err := s.Streaks.FindByUserAndDate(ctx, userID, today)
	hasToday := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return result, &StepError{Step: "read_streak", Err: err}
	}

	stats, err := s.Stats.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		logger.Log.Warn("User stats missing, skipping stats update", zap.String("user_id", userID))
	case err != nil:
		return result, &StepError{Step: "read_stats", Err: err}
	default:
		updated, err := s.Stats.Update(ctx, userID, statsUpdates(stats, c.Difficulty))
		if err != nil {
			return result, &StepError{Step: "update_stats", Err: err}
		}
		result.Stats = updated
		result.XPGained = c.Difficulty * PointsPerDifficulty
	}

	if !hasToday {
		err := s.Streaks.Create(ctx, &model.UserStreak{
			UserID:         userID,
			StreakDate:     today,
			CasesCompleted: 1,
		})
		switch {
		case err == nil:
			result.StreakCreated = true
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// 并发提交已写入当天记录，连续天数由那次提交推进
		default:
			return result, &StepError{Step: "create_streak", Err: err}
		}
	}

	// 只有写入当天记录的那次提交推进连续天数
	if result.StreakCreated && stats != nil {
		updated, err := s.Stats.Update(ctx, userID, s.streakUpdates(ctx, stats, now))
		if err != nil {
			return result, &StepError{Step: "update_streak", Err: err}
		}
		result.Stats = updated
	}

	if err := s.Progress.Delete(ctx, userID, c.ID); err != nil {
		logger.Log.Warn("Failed to clear case progress",
			zap.String("user_id", userID), zap.String("case_id", c.ID), zap.Error(err))
	}
	if s.Leaderboard != nil {
		s.Leaderboard.Invalidate(ctx)
	}

	result.State = StateSucceeded
	result.Message = "submitted"
	return result, nil
}

// statsUpdates 计算提交后的计数、分数与 XP
func statsUpdates(stats *model.UserStats, difficulty int) map[string]interface{} {
	solved := stats.CasesSolved
	gained := difficulty * PointsPerDifficulty
	xp := stats.XP + gained

	return map[string]interface{}{
		"cases_solved":  solved + 1,
		"total_score":   stats.TotalScore + gained,
		"average_score": (stats.AverageScore*float64(solved) + PlaceholderScore) / float64(solved+1),
		"xp":            xp,
		"level":         leveling.LevelFromXP(xp),
	}
}

// streakUpdates 昨天有记录则在原连续天数上加一，否则从 1 开始
func (s *SubmissionService) streakUpdates(ctx context.Context, stats *model.UserStats, now time.Time) map[string]interface{} {
	current := 1
	yesterday := util.DateOf(now.AddDate(0, 0, -1))
	if _, err := s.Streaks.FindByUserAndDate(ctx, stats.UserID, yesterday); err == nil {
		current = stats.CurrentStreak + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Warn("Failed to read previous streak day",
			zap.String("user_id", stats.UserID), zap.Error(err))
	}

	return map[string]interface{}{
		"current_streak": current,
		"longest_streak": max(stats.LongestStreak, current),
	}
}

// elapsed 客户端未提供用时时按开始作答时间计算
func (s *SubmissionService) elapsed(ctx context.Context, userID, caseID string, reported *int, now time.Time) int {
	if reported != nil && *reported >= 0 {
		return *reported
	}

	progress, err := s.Progress.FindByUserAndCase(ctx, userID, caseID)
	if err != nil {
		return 0
	}
	seconds := int(now.Sub(progress.StartedAt).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}
