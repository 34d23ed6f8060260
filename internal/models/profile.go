package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile extends a User one-to-one with the data shown on swipe cards.
type UserProfile struct {
	ID                  uint                        `gorm:"primaryKey" json:"id"`
	UserID              uint                        `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio                 string                      `gorm:"type:text" json:"bio"`
	Skills              datatypes.JSONSlice[string] `json:"skills"`
	Interests           datatypes.JSONSlice[string] `json:"interests"`
	University          string                      `gorm:"size:200" json:"university"`
	ProfileImageURL     string                      `gorm:"size:1024" json:"profile_image_url"`
	OnboardingCompleted bool                        `gorm:"not null;default:false" json:"onboarding_completed"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

// ProfileView is a profile together with the public identity of its owner.
type ProfileView struct {
	User    PublicUser   `json:"user"`
	Profile *UserProfile `json:"profile"`
}
