package model

// swagger:model UserProfile
type UserProfile struct {
	UUIDBase
	UserID      string `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	AvatarURL   string `gorm:"size:512" json:"avatar_url,omitempty"`
	Bio         string `gorm:"type:text" json:"bio"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
