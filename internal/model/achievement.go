package model

import "time"

// FirstCaseAchievement 新用户引导时尝试发放的成就编码
const FirstCaseAchievement = "first-case"

// Achievement 成就目录（静态数据）
type Achievement struct {
	UUIDBase
	Code        string `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Icon        string `gorm:"size:64" json:"icon"`
	Points      int    `gorm:"default:0" json:"points"`
	Criteria    string `gorm:"size:255" json:"criteria"`
}

func (Achievement) TableName() string {
	return "achievements"
}

type UserAchievement struct {
	UUIDBase
	UserID        string    `gorm:"size:36;not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string    `gorm:"size:36;not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

type UserAchievementWithDetails struct {
	UserAchievement
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
}

func (UserAchievementWithDetails) TableName() string {
	return "user_achievements"
}
