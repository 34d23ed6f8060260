package repository

import (
	"context"
	"errors"
	"strings"

	"devswipe/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, email, username string) (emailTaken, usernameTaken bool, err error)
	CreateWithProfile(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	SetPushToken(ctx context.Context, userID uint, token string) error
	ClearPushToken(ctx context.Context, userID uint) error
	ClearPushTokenValue(ctx context.Context, token string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "User", email)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").Where("LOWER(username) = LOWER(?)", username).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "User", username)
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, email, username string) (bool, bool, error) {
	var rows []models.User
	err := r.db.WithContext(ctx).
		Select("email", "username").
		Where("email = ? OR LOWER(username) = LOWER(?)", email, username).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return false, false, models.NewInternalError(err)
	}
	var emailTaken, usernameTaken bool
	for _, u := range rows {
		if u.Email == email {
			emailTaken = true
		}
		if strings.EqualFold(u.Username, username) {
			usernameTaken = true
		}
	}
	return emailTaken, usernameTaken, nil
}

// CreateWithProfile inserts the user and an empty profile in one transaction.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile := user.Profile
		user.Profile = nil
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if profile == nil {
			profile = &models.UserProfile{}
		}
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Email or username already registered")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit("Profile").Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Email or username already registered")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// SetPushToken moves token to userID. Any other account holding the same
// token loses it in the same transaction, so a device notifies one user.
func (r *userRepository) SetPushToken(ctx context.Context, userID uint, token string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("push_token = ? AND id <> ?", token, userID).
			Update("push_token", nil).Error; err != nil {
			return err
		}
		res := tx.Model(&models.User{}).Where("id = ?", userID).Update("push_token", token)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) ClearPushToken(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("push_token", nil).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ClearPushTokenValue removes token from whichever account holds it.
func (r *userRepository) ClearPushTokenValue(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("push_token = ?", token).
		Update("push_token", nil).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
