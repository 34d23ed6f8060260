package repository

import (
	"context"
	"fmt"

	"devswipe/internal/models"

	"gorm.io/gorm"
)

// CollabRepository defines persistence operations for collaboration posts.
type CollabRepository interface {
	Create(ctx context.Context, post *models.CollabPost) error
	GetByID(ctx context.Context, id uint) (*models.CollabPost, error)
	Update(ctx context.Context, post *models.CollabPost) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter models.CollabFilter) ([]models.CollabPost, int64, error)
}

type collabRepository struct {
	db *gorm.DB
}

// NewCollabRepository returns a new CollabRepository implementation.
func NewCollabRepository(db *gorm.DB) CollabRepository {
	return &collabRepository{db: db}
}

func (r *collabRepository) Create(ctx context.Context, post *models.CollabPost) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *collabRepository) GetByID(ctx context.Context, id uint) (*models.CollabPost, error) {
	var post models.CollabPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, notFoundOr(err, "Collaboration post", id)
	}
	return &post, nil
}

func (r *collabRepository) Update(ctx context.Context, post *models.CollabPost) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *collabRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.CollabPost{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Collaboration post", id)
	}
	return nil
}

// List returns one page of posts, newest first, and the total matching count.
func (r *collabRepository) List(ctx context.Context, filter models.CollabFilter) ([]models.CollabPost, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.CollabPost{})
	if filter.OwnerID != 0 {
		q = q.Where("user_id = ?", filter.OwnerID)
	}
	if filter.Skill != "" {
		q = q.Where(fmt.Sprintf(jsonContainsSQL, "needed_skills"), jsonElementPattern(filter.Skill))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where(fmt.Sprintf(searchTextClause, "description"), pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	limit, offset := clampLimit(filter.Limit, filter.Offset)
	var posts []models.CollabPost
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}
