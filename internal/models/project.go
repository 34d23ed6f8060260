package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project is a project idea that other users swipe through.
type Project struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	Title              string                      `gorm:"size:200;not null" json:"title"`
	PreviewDescription string                      `gorm:"size:500" json:"preview_description"`
	FullDescription    string                      `gorm:"type:text" json:"full_description"`
	Tags               datatypes.JSONSlice[string] `json:"tags"`
	Difficulty         string                      `gorm:"size:32;index" json:"difficulty"`
	ExternalLink       *string                     `gorm:"size:1024" json:"external_link,omitempty"`
	UserID             uint                        `gorm:"index;not null" json:"user_id"`
	User               *User                       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt          time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// OwnedBy reports whether userID created the project.
func (p *Project) OwnedBy(userID uint) bool { return p.UserID == userID }

// ProjectFilter narrows project listings. Zero values disable a filter.
type ProjectFilter struct {
	OwnerID    uint
	Tag        string
	Difficulty string
	Search     string
	Limit      int
	Offset     int
}
