package database

import (
	"caseforge_backend/internal/config"
	"caseforge_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models 需要迁移的全部表
var Models = []interface{}{
	&model.User{},
	&model.UserProfile{},
	&model.UserStats{},
	&model.Case{},
	&model.Submission{},
	&model.UserStreak{},
	&model.DailyChallenge{},
	&model.Achievement{},
	&model.UserAchievement{},
	&model.CaseProgress{},
}

// DefaultAchievements 成就目录初始数据
var DefaultAchievements = []model.Achievement{
	{Code: model.FirstCaseAchievement, Name: "First Case", Description: "Submit your first case response", Icon: "trophy", Points: 10, Criteria: "cases_solved >= 1"},
	{Code: "streak-3", Name: "On a Roll", Description: "Solve cases three days in a row", Icon: "flame", Points: 25, Criteria: "current_streak >= 3"},
	{Code: "cases-10", Name: "Case Cracker", Description: "Solve ten cases", Icon: "target", Points: 50, Criteria: "cases_solved >= 10"},
	{Code: "streak-7", Name: "Week Warrior", Description: "Keep a seven day streak", Icon: "calendar", Points: 75, Criteria: "current_streak >= 7"},
	{Code: "advanced-5", Name: "Strategist", Description: "Solve five advanced cases", Icon: "brain", Points: 100, Criteria: "advanced_solved >= 5"},
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=true&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.Charset)
		return mysql.Open(dsn), nil
	case "sqlite":
		// 本地开发使用，DBName 为文件路径
		return sqlite.Open(cfg.DBName), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func InitDB(cfg *config.DatabaseConfig, debug bool, migrate bool) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Database connection established (%s)", cfg.Driver)

	if !migrate {
		return db, nil
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}

// Migrate 建表并写入成就目录
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	return SeedAchievements(db)
}

func SeedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, a := range DefaultAchievements {
		a := a
		if err := db.Create(&a).Error; err != nil {
			return err
		}
	}
	return nil
}
