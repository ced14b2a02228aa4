// 手动生成每日挑战脚本
//
// 主应用已通过定时任务在每天 UTC 零点预生成挑战，页面访问时也会按需生成。
// 此脚本用于补录历史日期或在定时任务关闭的环境中手动生成。
//
// 用法: go run scripts/daily_challenge.go -date 2026-03-10 -selection random

package main

import (
	"caseforge_backend/internal/config"
	"caseforge_backend/internal/repository"
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/database"
	"caseforge_backend/pkg/logger"
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	date := flag.String("date", util.DateOf(time.Now()), "挑战日期 (YYYY-MM-DD, UTC)")
	selection := flag.String("selection", "", "选题策略 latest / random，默认使用配置中的定时策略")
	flag.Parse()

	if _, err := time.Parse(util.DateFormat, *date); err != nil {
		log.Fatalf("日期格式错误: %v", err)
	}

	_ = godotenv.Load()
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, false, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	cases := repository.NewCaseRepository(db)
	daily := service.NewDailyChallengeService(
		repository.NewDailyChallengeRepository(db),
		cases,
		repository.NewStreakRepository(db),
		&cfg.DailyChallenge,
	)

	sel := daily.ScheduledSelection
	if *selection != "" {
		sel = service.Selection(*selection)
		if sel != service.SelectLatest && sel != service.SelectRandom {
			log.Fatalf("未知的选题策略: %s", *selection)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	challenge, err := daily.Ensure(ctx, *date, sel, "manual")
	if err != nil {
		log.Fatalf("生成每日挑战失败: %v", err)
	}

	log.Printf("每日挑战 %s: %s (%s)", challenge.ChallengeDate, challenge.Case.Title, challenge.Case.ID)
}
