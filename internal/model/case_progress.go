package model

import "time"

// CaseProgress 未提交的作答进度，用于"继续作答"和服务端计时
type CaseProgress struct {
	UUIDBase
	UserID       string    `gorm:"size:36;not null;uniqueIndex:idx_case_progress_user_case" json:"user_id"`
	CaseID       string    `gorm:"size:36;not null;uniqueIndex:idx_case_progress_user_case" json:"case_id"`
	StartedAt    time.Time `json:"started_at"`
	LastAccessed time.Time `gorm:"index" json:"last_accessed"`
	Draft        string    `gorm:"type:text" json:"draft,omitempty"`
}

func (CaseProgress) TableName() string {
	return "case_progress"
}

type CaseProgressWithCase struct {
	CaseProgress
	Case Case `gorm:"foreignKey:CaseID" json:"case"`
}

func (CaseProgressWithCase) TableName() string {
	return "case_progress"
}
