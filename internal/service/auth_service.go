// Package service holds DevSwipe's business logic. Handlers translate HTTP
// into service inputs; services enforce validation and ownership and call
// the repositories.
package service

import (
	"context"
	"strings"

	"devswipe/internal/auth"
	"devswipe/internal/models"
	"devswipe/internal/repository"
	"devswipe/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = models.NewUnauthorizedError("Invalid email or password")

// AuthService registers accounts and issues tokens.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// RegisterInput is the input for creating an account.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,devemail"`
	Username  string `json:"username" validate:"required,username"`
	Password  string `json:"password" validate:"required,password"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// LoginInput is the input for exchanging credentials for a token.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NewAuthService returns a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcrypt.DefaultCost}
}

// Register validates in, rejects taken emails and usernames, and creates the
// user together with an empty profile.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.AuthResponse, error) {
	in.Email = validation.NormalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	emailTaken, usernameTaken, err := s.users.Exists(ctx, in.Email, in.Username)
	if err != nil {
		return nil, err
	}
	switch {
	case emailTaken:
		return nil, models.NewConflictError("Email is already registered")
	case usernameTaken:
		return nil, models.NewConflictError("Username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user := &models.User{
		Email:     in.Email,
		Username:  in.Username,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.users.CreateWithProfile(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login checks credentials. Unknown emails and wrong passwords produce the
// same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.AuthResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := s.users.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, errBadCredentials
	}
	return s.issue(user)
}

// Me resolves the account behind a verified token.
func (s *AuthService) Me(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// Logout revokes the presented token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
