package service

import (
	"caseforge_backend/internal/config"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Scheduler 后台定时任务，目前只负责预生成每日挑战
type Scheduler struct {
	cron gocron.Scheduler
}

func NewScheduler(cfg *config.DailyChallengeConfig, daily *DailyChallengeService) (*Scheduler, error) {
	cron, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	if cfg.ScheduleEnabled {
		_, err = cron.NewJob(
			gocron.CronJob(cfg.ScheduleCron, false),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				date := util.DateOf(daily.Now())
				if _, err := daily.Generate(ctx, date); err != nil {
					logger.Log.Warn("Scheduled daily challenge generation failed",
						zap.String("date", date), zap.Error(err))
				}
			}),
			gocron.WithName("daily-challenge"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, err
		}
	}

	return &Scheduler{cron: cron}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Log.Info("Scheduler started", zap.Int("jobs", len(s.cron.Jobs())))
}

func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}
