package repository

import (
	"context"
	"fmt"

	"devswipe/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository defines persistence operations for project ideas.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository returns a new ProjectRepository implementation.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFoundOr(err, "Project", id)
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Project", id)
	}
	return nil
}

// List returns one page of projects, newest first, and the total number of
// projects matching the filter.
func (r *projectRepository) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Project{})
	if filter.OwnerID != 0 {
		q = q.Where("user_id = ?", filter.OwnerID)
	}
	if filter.Tag != "" {
		q = q.Where(fmt.Sprintf(jsonContainsSQL, "tags"), jsonElementPattern(filter.Tag))
	}
	if filter.Difficulty != "" {
		q = q.Where("LOWER(difficulty) = LOWER(?)", filter.Difficulty)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where(fmt.Sprintf(searchTextClause, "preview_description"), pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	limit, offset := clampLimit(filter.Limit, filter.Offset)
	var projects []models.Project
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&projects).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return projects, total, nil
}
