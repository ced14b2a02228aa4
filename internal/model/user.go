package model

import (
	"time"
)

// User 第三方登录后落库的账号，会话从这里读取 id / email / 元数据
// swagger:model User
type User struct {
	UUIDBase
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name       string    `gorm:"size:255" json:"name"`
	AvatarURL  string    `gorm:"size:512" json:"avatar_url"`
	Provider   string    `gorm:"size:32;not null;default:'google'" json:"provider"`
	ProviderID string    `gorm:"size:255;index" json:"provider_id"`
	LastLogin  time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}

// UserMetadata 对应会话里的 user_metadata
type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (u *User) Metadata() UserMetadata {
	return UserMetadata{FullName: u.Name, AvatarURL: u.AvatarURL}
}
