package model

// UserStats 用户聚合数据，Level 为缓存值，可能与 XP 推导出的等级不一致
// swagger:model UserStats
type UserStats struct {
	UUIDBase
	UserID        string  `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	TotalScore    int     `gorm:"default:0" json:"total_score"`
	CasesSolved   int     `gorm:"default:0" json:"cases_solved"`
	CurrentStreak int     `gorm:"default:0" json:"current_streak"`
	LongestStreak int     `gorm:"default:0" json:"longest_streak"`
	AverageScore  float64 `gorm:"default:0" json:"average_score"`
	XP            int     `gorm:"column:xp;default:0" json:"xp"`
	Level         int     `gorm:"default:1" json:"level"`
}

func (UserStats) TableName() string {
	return "user_stats"
}

// LeaderboardEntry 排行榜行：统计数据加上资料中的展示字段
type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"user_id"`
	DisplayName   string  `json:"display_name"`
	AvatarURL     string  `json:"avatar_url,omitempty"`
	TotalScore    int     `json:"total_score"`
	CasesSolved   int     `json:"cases_solved"`
	AverageScore  float64 `json:"average_score"`
	CurrentStreak int     `json:"current_streak"`
	XP            int     `json:"xp"`
	Level         int     `json:"level"`
}
