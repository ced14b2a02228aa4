package model

import "time"

const SubmissionCompleted = "completed"

// swagger:model Submission
type Submission struct {
	UUIDBase
	CaseID      string     `gorm:"size:36;index;not null" json:"case_id"`
	UserID      string     `gorm:"size:36;index;not null" json:"user_id"`
	Response    string     `gorm:"type:text;not null" json:"response"`
	Score       *float64   `json:"score,omitempty"`
	Feedback    *string    `gorm:"type:text" json:"feedback,omitempty"`
	TimeSpent   int        `gorm:"default:0" json:"time_spent"`
	Status      string     `gorm:"size:20;index;default:'completed'" json:"status"`
	SubmittedAt time.Time  `gorm:"index" json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  *string    `gorm:"size:36" json:"reviewed_by,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SubmissionWithCase 查询时显式关联了案例的提交记录
type SubmissionWithCase struct {
	Submission
	Case Case `gorm:"foreignKey:CaseID" json:"case"`
}

func (SubmissionWithCase) TableName() string {
	return "submissions"
}

// ScoreOrZero 未评分的提交按 0 分计
func (s *Submission) ScoreOrZero() float64 {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}
