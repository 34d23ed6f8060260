package service

import (
	"context"
	"strings"

	"devswipe/internal/models"
	"devswipe/internal/patch"
	"devswipe/internal/repository"
	"devswipe/internal/validation"
)

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	Bio             *string   `json:"bio" validate:"omitnil,max=1000"`
	Skills          *[]string `json:"skills" validate:"omitnil,max=30,dive,min=1,max=50"`
	Interests       *[]string `json:"interests" validate:"omitnil,max=30,dive,min=1,max=50"`
	University      *string   `json:"university" validate:"omitnil,max=200"`
	ProfileImageURL *string   `json:"profile_image_url" validate:"omitnil,max=1024"`
}

// Apply merges the patch into p and reports whether anything changed.
func (in ProfilePatch) Apply(p *models.UserProfile) bool {
	var changed patch.Changes
	changed.Track(patch.Field(&p.Bio, in.Bio)).
		Track(patch.Slice(&p.Skills, in.Skills)).
		Track(patch.Slice(&p.Interests, in.Interests)).
		Track(patch.Field(&p.University, in.University)).
		Track(patch.Field(&p.ProfileImageURL, in.ProfileImageURL))
	return changed.Any()
}

func (in *ProfilePatch) normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(in.Bio)
	trim(in.University)
	trim(in.ProfileImageURL)
	in.Skills = cleanList(in.Skills)
	in.Interests = cleanList(in.Interests)
}

// cleanList trims entries and drops blanks and case-insensitive duplicates.
func cleanList(list *[]string) *[]string {
	if list == nil {
		return nil
	}
	seen := make(map[string]bool, len(*list))
	out := make([]string, 0, len(*list))
	for _, item := range *list {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return &out
}

// ProfileService manages the swipe-card profile attached to every user.
type ProfileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(users repository.UserRepository, profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{users: users, profiles: profiles}
}

// GetByUserID returns another user's profile with their public identity.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.ProfileView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	return &models.ProfileView{User: user.Public(), Profile: profile}, nil
}

// GetMine returns the caller's profile, creating an empty one if needed.
func (s *ProfileService) GetMine(ctx context.Context, userID uint) (*models.ProfileView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	return &models.ProfileView{User: user.Public(), Profile: profile}, nil
}

// Save applies in to the caller's profile, creating the profile first when
// it does not exist.
func (s *ProfileService) Save(ctx context.Context, userID uint, in ProfilePatch) (*models.UserProfile, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !in.Apply(profile) {
		return profile, nil
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CompleteOnboarding marks the caller's onboarding as finished. It is
// idempotent.
func (s *ProfileService) CompleteOnboarding(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.OnboardingCompleted {
		return profile, nil
	}
	profile.OnboardingCompleted = true
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
