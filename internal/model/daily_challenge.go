package model

// swagger:model DailyChallenge
type DailyChallenge struct {
	UUIDBase
	CaseID        string `gorm:"size:36;not null" json:"case_id"`
	ChallengeDate string `gorm:"size:10;uniqueIndex;not null" json:"challenge_date"`
	IsActive      bool   `json:"is_active"`
}

func (DailyChallenge) TableName() string {
	return "daily_challenges"
}

type DailyChallengeWithCase struct {
	DailyChallenge
	Case Case `gorm:"foreignKey:CaseID" json:"case"`
}

func (DailyChallengeWithCase) TableName() string {
	return "daily_challenges"
}
