package service

import (
	"context"
	"strings"

	"devswipe/internal/models"
	"devswipe/internal/patch"
	"devswipe/internal/repository"
	"devswipe/internal/validation"
)

// CreateProjectInput is the input for posting a project idea.
type CreateProjectInput struct {
	Title              string   `json:"title" validate:"required,max=200"`
	PreviewDescription string   `json:"preview_description" validate:"max=500"`
	FullDescription    string   `json:"full_description" validate:"max=10000"`
	Tags               []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
	Difficulty         string   `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	ExternalLink       *string  `json:"external_link" validate:"omitnil,omitempty,url,max=1024"`
}

// ProjectPatch is a partial project update. Nil fields are left unchanged.
type ProjectPatch struct {
	Title              *string   `json:"title" validate:"omitnil,min=1,max=200"`
	PreviewDescription *string   `json:"preview_description" validate:"omitnil,max=500"`
	FullDescription    *string   `json:"full_description" validate:"omitnil,max=10000"`
	Tags               *[]string `json:"tags" validate:"omitnil,max=20,dive,min=1,max=50"`
	Difficulty         *string   `json:"difficulty" validate:"omitnil,omitempty,oneof=beginner intermediate advanced"`
	ExternalLink       *string   `json:"external_link" validate:"omitnil,omitempty,url,max=1024"`
}

// Apply merges the patch into p and reports whether anything changed.
func (in ProjectPatch) Apply(p *models.Project) bool {
	var changed patch.Changes
	changed.Track(patch.Field(&p.Title, in.Title)).
		Track(patch.Field(&p.PreviewDescription, in.PreviewDescription)).
		Track(patch.Field(&p.FullDescription, in.FullDescription)).
		Track(patch.Slice(&p.Tags, in.Tags)).
		Track(patch.Field(&p.Difficulty, in.Difficulty)).
		Track(patch.Nullable(&p.ExternalLink, in.ExternalLink))
	return changed.Any()
}

// UpdateProjectInput identifies the caller and the project being patched.
type UpdateProjectInput struct {
	CallerID uint
	ID       uint
	Patch    ProjectPatch
}

// ProjectService manages project ideas.
type ProjectService struct {
	projects repository.ProjectRepository
}

// NewProjectService returns a new ProjectService.
func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// Create stores a new project owned by ownerID.
func (s *ProjectService) Create(ctx context.Context, ownerID uint, in CreateProjectInput) (*models.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Difficulty = strings.ToLower(strings.TrimSpace(in.Difficulty))
	if tags := cleanList(&in.Tags); tags != nil {
		in.Tags = *tags
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:              in.Title,
		PreviewDescription: strings.TrimSpace(in.PreviewDescription),
		FullDescription:    strings.TrimSpace(in.FullDescription),
		Tags:               in.Tags,
		Difficulty:         in.Difficulty,
		UserID:             ownerID,
	}
	patch.Nullable(&project.ExternalLink, in.ExternalLink)
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update patches a project. Only the owner may update it.
func (s *ProjectService) Update(ctx context.Context, in UpdateProjectInput) (*models.Project, error) {
	if in.Patch.Title != nil {
		t := strings.TrimSpace(*in.Patch.Title)
		in.Patch.Title = &t
	}
	if in.Patch.Difficulty != nil {
		d := strings.ToLower(strings.TrimSpace(*in.Patch.Difficulty))
		in.Patch.Difficulty = &d
	}
	in.Patch.Tags = cleanList(in.Patch.Tags)
	if err := validation.Struct(in.Patch); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(in.CallerID) {
		return nil, models.NewForbiddenError("You can only edit your own projects")
	}
	if !in.Patch.Apply(project) {
		return project, nil
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetByID returns a single project.
func (s *ProjectService) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// ListByOwner returns one page of projects created by ownerID.
func (s *ProjectService) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Project, int64, error) {
	return s.projects.List(ctx, models.ProjectFilter{OwnerID: ownerID, Limit: limit, Offset: offset})
}

// List returns one page of projects matching filter.
func (s *ProjectService) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, int64, error) {
	return s.projects.List(ctx, filter)
}

// Delete removes a project. Only the owner may delete it.
func (s *ProjectService) Delete(ctx context.Context, callerID, id uint) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !project.OwnedBy(callerID) {
		return models.NewForbiddenError("You can only delete your own projects")
	}
	return s.projects.Delete(ctx, id)
}
