package repository

import (
	"context"

	"devswipe/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for user profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.UserProfile, error)
	GetOrCreate(ctx context.Context, userID uint) (*models.UserProfile, error)
	Save(ctx context.Context, profile *models.UserProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFoundOr(err, "Profile for user", userID)
	}
	return &profile, nil
}

// GetOrCreate returns the user's profile, inserting an empty one when the
// account predates eager profile creation. A concurrent insert that wins the
// unique index is read back.
func (r *profileRepository) GetOrCreate(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile := models.UserProfile{UserID: userID}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).FirstOrCreate(&profile).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return r.GetByUserID(ctx, userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *models.UserProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
