package models

import (
	"time"

	"gorm.io/datatypes"
)

// CollabStatus is the lifecycle state of a collaboration post.
type CollabStatus string

const (
	CollabStatusActive    CollabStatus = "active"
	CollabStatusFilled    CollabStatus = "filled"
	CollabStatusCompleted CollabStatus = "completed"
	CollabStatusCancelled CollabStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s CollabStatus) Valid() bool {
	switch s {
	case CollabStatusActive, CollabStatusFilled, CollabStatusCompleted, CollabStatusCancelled:
		return true
	}
	return false
}

// CollabPost asks for collaborators with specific skills.
type CollabPost struct {
	ID              uint                        `gorm:"primaryKey" json:"id"`
	Title           string                      `gorm:"size:200;not null" json:"title"`
	Description     string                      `gorm:"type:text" json:"description"`
	NeededSkills    datatypes.JSONSlice[string] `json:"needed_skills"`
	TimeCommitment  string                      `gorm:"size:100" json:"time_commitment"`
	TargetTeamSize  int                         `gorm:"not null;default:1" json:"target_team_size"`
	CurrentTeamSize int                         `gorm:"not null;default:1" json:"current_team_size"`
	Status          CollabStatus                `gorm:"size:20;index;not null;default:active" json:"status"`
	UserID          uint                        `gorm:"index;not null" json:"user_id"`
	User            *User                       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// OwnedBy reports whether userID created the post.
func (p *CollabPost) OwnedBy(userID uint) bool { return p.UserID == userID }

// CollabFilter narrows collab post listings. Zero values disable a filter.
type CollabFilter struct {
	OwnerID uint
	Skill   string
	Status  CollabStatus
	Search  string
	Limit   int
	Offset  int
}
