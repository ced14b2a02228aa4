package model

// UserStreak 每个用户每个自然日（UTC）最多一条
// swagger:model UserStreak
type UserStreak struct {
	UUIDBase
	UserID         string `gorm:"size:36;not null;uniqueIndex:idx_user_streak_date" json:"user_id"`
	StreakDate     string `gorm:"size:10;not null;uniqueIndex:idx_user_streak_date" json:"streak_date"`
	CasesCompleted int    `gorm:"default:0" json:"cases_completed"`
}

func (UserStreak) TableName() string {
	return "user_streaks"
}
