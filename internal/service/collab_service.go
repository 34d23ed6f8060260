package service

import (
	"context"
	"fmt"
	"strings"

	"devswipe/internal/models"
	"devswipe/internal/patch"
	"devswipe/internal/repository"
	"devswipe/internal/validation"
)

const maxTeamSize = 50

// CreateCollabInput is the input for posting a collaboration request.
type CreateCollabInput struct {
	Title           string              `json:"title" validate:"required,max=200"`
	Description     string              `json:"description" validate:"max=10000"`
	NeededSkills    []string            `json:"needed_skills" validate:"max=20,dive,min=1,max=50"`
	TimeCommitment  string              `json:"time_commitment" validate:"max=100"`
	TargetTeamSize  int                 `json:"target_team_size" validate:"gte=0,lte=50"`
	CurrentTeamSize int                 `json:"current_team_size" validate:"gte=0,lte=50"`
	Status          models.CollabStatus `json:"status"`
}

// CollabPatch is a partial collab post update. Nil fields are left unchanged.
type CollabPatch struct {
	Title           *string              `json:"title" validate:"omitnil,min=1,max=200"`
	Description     *string              `json:"description" validate:"omitnil,max=10000"`
	NeededSkills    *[]string            `json:"needed_skills" validate:"omitnil,max=20,dive,min=1,max=50"`
	TimeCommitment  *string              `json:"time_commitment" validate:"omitnil,max=100"`
	TargetTeamSize  *int                 `json:"target_team_size" validate:"omitnil,gte=1,lte=50"`
	CurrentTeamSize *int                 `json:"current_team_size" validate:"omitnil,gte=1,lte=50"`
	Status          *models.CollabStatus `json:"status"`
}

// Apply merges the patch into p and reports whether anything changed.
func (in CollabPatch) Apply(p *models.CollabPost) bool {
	var changed patch.Changes
	changed.Track(patch.Field(&p.Title, in.Title)).
		Track(patch.Field(&p.Description, in.Description)).
		Track(patch.Slice(&p.NeededSkills, in.NeededSkills)).
		Track(patch.Field(&p.TimeCommitment, in.TimeCommitment)).
		Track(patch.Field(&p.TargetTeamSize, in.TargetTeamSize)).
		Track(patch.Field(&p.CurrentTeamSize, in.CurrentTeamSize)).
		Track(patch.Field(&p.Status, in.Status))
	return changed.Any()
}

// UpdateCollabInput identifies the caller and the post being patched.
type UpdateCollabInput struct {
	CallerID uint
	ID       uint
	Patch    CollabPatch
}

// CollabService manages collaboration posts.
type CollabService struct {
	posts repository.CollabRepository
}

// NewCollabService returns a new CollabService.
func NewCollabService(posts repository.CollabRepository) *CollabService {
	return &CollabService{posts: posts}
}

// checkPost enforces the rules that span fields of a stored post.
func checkPost(p *models.CollabPost) error {
	if !p.Status.Valid() {
		return models.NewFieldValidationError(map[string]string{
			"status": fmt.Sprintf("must be one of: %s %s %s %s",
				models.CollabStatusActive, models.CollabStatusFilled,
				models.CollabStatusCompleted, models.CollabStatusCancelled),
		})
	}
	if p.TargetTeamSize < 1 || p.TargetTeamSize > maxTeamSize {
		return models.NewFieldValidationError(map[string]string{"target_team_size": "must be between 1 and 50"})
	}
	if p.CurrentTeamSize < 1 || p.CurrentTeamSize > p.TargetTeamSize {
		return models.NewFieldValidationError(map[string]string{
			"current_team_size": "must be at least 1 and not exceed target_team_size",
		})
	}
	return nil
}

// Create stores a new post owned by ownerID. Team sizes default to 1 and
// status to active.
func (s *CollabService) Create(ctx context.Context, ownerID uint, in CreateCollabInput) (*models.CollabPost, error) {
	in.Title = strings.TrimSpace(in.Title)
	if skills := cleanList(&in.NeededSkills); skills != nil {
		in.NeededSkills = *skills
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	post := &models.CollabPost{
		Title:           in.Title,
		Description:     strings.TrimSpace(in.Description),
		NeededSkills:    in.NeededSkills,
		TimeCommitment:  strings.TrimSpace(in.TimeCommitment),
		TargetTeamSize:  in.TargetTeamSize,
		CurrentTeamSize: in.CurrentTeamSize,
		Status:          in.Status,
		UserID:          ownerID,
	}
	if post.TargetTeamSize == 0 {
		post.TargetTeamSize = 1
	}
	if post.CurrentTeamSize == 0 {
		post.CurrentTeamSize = 1
	}
	if post.Status == "" {
		post.Status = models.CollabStatusActive
	}
	if err := checkPost(post); err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update patches a post. Only the owner may update it, and the merged post
// must still satisfy the team size and status rules.
func (s *CollabService) Update(ctx context.Context, in UpdateCollabInput) (*models.CollabPost, error) {
	if in.Patch.Title != nil {
		t := strings.TrimSpace(*in.Patch.Title)
		in.Patch.Title = &t
	}
	in.Patch.NeededSkills = cleanList(in.Patch.NeededSkills)
	if err := validation.Struct(in.Patch); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(in.CallerID) {
		return nil, models.NewForbiddenError("You can only edit your own collaboration posts")
	}
	if !in.Patch.Apply(post) {
		return post, nil
	}
	if err := checkPost(post); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetByID returns a single post.
func (s *CollabService) GetByID(ctx context.Context, id uint) (*models.CollabPost, error) {
	return s.posts.GetByID(ctx, id)
}

// ListByOwner returns one page of posts created by ownerID.
func (s *CollabService) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.CollabPost, int64, error) {
	return s.posts.List(ctx, models.CollabFilter{OwnerID: ownerID, Limit: limit, Offset: offset})
}

// List returns one page of posts matching filter.
func (s *CollabService) List(ctx context.Context, filter models.CollabFilter) ([]models.CollabPost, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, models.NewValidationError("Unknown status filter")
	}
	return s.posts.List(ctx, filter)
}

// Delete removes a post. Only the owner may delete it.
func (s *CollabService) Delete(ctx context.Context, callerID, id uint) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.OwnedBy(callerID) {
		return models.NewForbiddenError("You can only delete your own collaboration posts")
	}
	return s.posts.Delete(ctx, id)
}
