package service

import (
	"caseforge_backend/internal/config"
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"caseforge_backend/pkg/monitoring"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Selection 每日挑战的选题策略
type Selection string

const (
	SelectLatest Selection = "latest"
	SelectRandom Selection = "random"
)

const (
	triggerLazy      = "lazy"
	triggerScheduled = "scheduled"
)

type DailyChallengeService struct {
	Challenges DailyChallengeStore
	Cases      CaseStore
	Streaks    StreakStore

	// LazySelection 页面首次访问时创建使用的策略，ScheduledSelection 定时任务使用的策略
	LazySelection      Selection
	ScheduledSelection Selection

	Now  func() time.Time
	Intn func(n int) int
}

func NewDailyChallengeService(challenges DailyChallengeStore, cases CaseStore, streaks StreakStore, cfg *config.DailyChallengeConfig) *DailyChallengeService {
	return &DailyChallengeService{
		Challenges:         challenges,
		Cases:              cases,
		Streaks:            streaks,
		LazySelection:      Selection(cfg.LazySelection),
		ScheduledSelection: Selection(cfg.ScheduledSelection),
		Now:                time.Now,
		Intn:               rand.IntN,
	}
}

// Today 当天（UTC）的挑战，不存在时按 LazySelection 创建；没有可用案例时返回 nil
func (s *DailyChallengeService) Today(ctx context.Context) *model.DailyChallengeWithCase {
	date := util.DateOf(s.Now())
	dc, err := s.Ensure(ctx, date, s.LazySelection, triggerLazy)
	if err != nil {
		if !errors.Is(err, util.ErrNoCasesAvailable) {
			logger.Log.Warn("Failed to load daily challenge", zap.String("date", date), zap.Error(err))
		}
		return nil
	}
	return dc
}

// Generate 定时任务调用，为指定日期预先创建挑战
func (s *DailyChallengeService) Generate(ctx context.Context, date string) (*model.DailyChallengeWithCase, error) {
	return s.Ensure(ctx, date, s.ScheduledSelection, triggerScheduled)
}

// Ensure 查询指定日期的挑战，不存在则选题并插入；
// 并发插入触发唯一约束时重新读取已存在的记录
func (s *DailyChallengeService) Ensure(ctx context.Context, date string, sel Selection, trigger string) (*model.DailyChallengeWithCase, error) {
	dc, err := s.Challenges.FindActiveByDate(ctx, date)
	if err == nil {
		return dc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c, err := s.pick(ctx, sel)
	if err != nil {
		return nil, err
	}

	challenge := model.DailyChallenge{
		CaseID:        c.ID,
		ChallengeDate: date,
		IsActive:      true,
	}
	if err := s.Challenges.Create(ctx, &challenge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.Challenges.FindActiveByDate(ctx, date)
		}
		return nil, fmt.Errorf("create daily challenge: %w", err)
	}

	monitoring.DailyChallengeCreated.WithLabelValues(string(sel), trigger).Inc()
	logger.Log.Info("Daily challenge created",
		zap.String("date", date),
		zap.String("case_id", c.ID),
		zap.String("selection", string(sel)),
		zap.String("trigger", trigger))

	return &model.DailyChallengeWithCase{DailyChallenge: challenge, Case: *c}, nil
}

func (s *DailyChallengeService) pick(ctx context.Context, sel Selection) (*model.Case, error) {
	if sel == SelectRandom {
		ids, err := s.Cases.ActiveIDs(ctx)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, util.ErrNoCasesAvailable
		}
		return s.Cases.FindByID(ctx, ids[s.Intn(len(ids))])
	}

	cases, err := s.Cases.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, util.ErrNoCasesAvailable
	}
	return &cases[0], nil
}

// DailyChallengeView 仪表盘上的每日挑战卡片
type DailyChallengeView struct {
	Challenge       *model.DailyChallengeWithCase `json:"challenge"`
	Completed       bool                          `json:"completed"`
	ResetsIn        string                        `json:"resets_in"`
	DifficultyLabel string                        `json:"difficulty_label,omitempty"`
}

func (s *DailyChallengeService) View(ctx context.Context, userID string) *DailyChallengeView {
	now := s.Now()
	view := &DailyChallengeView{
		Challenge: s.Today(ctx),
		ResetsIn:  FormatCountdown(TimeUntilReset(now)),
	}
	if view.Challenge != nil {
		view.DifficultyLabel = model.DifficultyLabel(view.Challenge.Case.Difficulty)
	}
	view.Completed = s.CompletedOn(ctx, userID, util.DateOf(now))
	return view
}

// CompletedOn 当天的打卡记录存在且完成数大于 0
func (s *DailyChallengeService) CompletedOn(ctx context.Context, userID, date string) bool {
	streak, err := s.Streaks.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("Failed to load streak day", zap.String("user_id", userID), zap.Error(err))
		}
		return false
	}
	return streak.CasesCompleted > 0
}

// TimeUntilReset 距离下一个 UTC 零点的时长
func TimeUntilReset(now time.Time) time.Duration {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return midnight.Sub(now)
}

// FormatCountdown 渲染为 HH:MM:SS
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
