package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = 1
	DifficultyIntermediate = 2
	DifficultyAdvanced     = 3
)

// swagger:model Case
type Case struct {
	UUIDBase
	Slug               string                      `gorm:"size:255;uniqueIndex" json:"slug"`
	Title              string                      `gorm:"size:255;not null" json:"title"`
	Domain             string                      `gorm:"size:100;index;not null" json:"domain"`
	Brief              string                      `gorm:"type:text;not null" json:"brief"`
	EvaluationCriteria string                      `gorm:"type:text;not null" json:"evaluation_criteria"`
	Difficulty         int                         `gorm:"index;not null;default:1" json:"difficulty"`
	EstimatedTime      *int                        `json:"estimated_time,omitempty"`
	Tags               datatypes.JSONSlice[string] `json:"tags,omitempty"`
	ExhibitURL         string                      `gorm:"size:512" json:"exhibit_url,omitempty"`
	IsActive           bool                        `gorm:"index" json:"is_active"`
}

func (Case) TableName() string {
	return "cases"
}

// BeforeSave 标签列始终写入 JSON 数组，避免 NULL
func (c *Case) BeforeSave(tx *gorm.DB) error {
	if c.Tags == nil {
		c.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}

func ValidDifficulty(d int) bool {
	return d >= DifficultyBeginner && d <= DifficultyAdvanced
}

// DifficultyLabel 页面展示用的难度文案
func DifficultyLabel(d int) string {
	switch d {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	default:
		return "Unknown"
	}
}
