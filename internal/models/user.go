// Package models contains the persisted entities of DevSwipe and the API
// shapes derived from them.
package models

import (
	"time"
)

// User is an account. Credentials and the push token never leave the server.
type User struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Email     string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username  string       `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Password  string       `gorm:"not null" json:"-"`
	FirstName string       `gorm:"size:100" json:"first_name,omitempty"`
	LastName  string       `gorm:"size:100" json:"last_name,omitempty"`
	PushToken *string      `gorm:"size:255;index" json:"-"`
	Profile   *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// HasPushToken reports whether the user registered a device for push delivery.
func (u *User) HasPushToken() bool {
	return u.PushToken != nil && *u.PushToken != ""
}

// PublicUser is the subset of a user that other users may see.
type PublicUser struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	University      string `json:"university,omitempty"`
}

// Public projects the user into its public shape. The profile is optional and
// only contributes when it was preloaded.
func (u *User) Public() PublicUser {
	p := PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.Profile != nil {
		p.ProfileImageURL = u.Profile.ProfileImageURL
		p.University = u.Profile.University
	}
	return p
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
