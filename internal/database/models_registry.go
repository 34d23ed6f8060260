package database

import "devswipe/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters for AutoMigrate: referenced tables come first.
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.UserProfile{},
		&models.Project{},
		&models.CollabPost{},
		&models.Conversation{},
		&models.Message{},
	}
}
