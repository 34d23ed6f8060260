package repository

import (
	"context"
	"testing"

	"devswipe/internal/models"
	"devswipe/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_CRUDAndFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "o@example.com", "owner")
	other := testutil.CreateUser(t, db, "x@example.com", "other")

	p1 := &models.Project{Title: "Campus Marketplace", PreviewDescription: "Buy and sell books", Tags: []string{"Go", "react"}, Difficulty: "intermediate", UserID: owner.ID}
	p2 := &models.Project{Title: "Study Buddy", PreviewDescription: "Find a 100% match", Tags: []string{"swift"}, Difficulty: "beginner", UserID: owner.ID}
	p3 := &models.Project{Title: "Rust Compiler", PreviewDescription: "toy language", Tags: []string{"rust"}, Difficulty: "advanced", UserID: other.ID}
	for _, p := range []*models.Project{p1, p2, p3} {
		require.NoError(t, repo.Create(ctx, p))
	}

	tests := []struct {
		name   string
		filter models.ProjectFilter
		want   []uint
	}{
		{"all newest first", models.ProjectFilter{}, []uint{p3.ID, p2.ID, p1.ID}},
		{"by owner", models.ProjectFilter{OwnerID: owner.ID}, []uint{p2.ID, p1.ID}},
		{"tag case insensitive", models.ProjectFilter{Tag: "GO"}, []uint{p1.ID}},
		{"tag matches whole element", models.ProjectFilter{Tag: "rus"}, nil},
		{"difficulty", models.ProjectFilter{Difficulty: "Beginner"}, []uint{p2.ID}},
		{"search title", models.ProjectFilter{Search: "marketplace"}, []uint{p1.ID}},
		{"search escapes wildcards", models.ProjectFilter{Search: "100%"}, []uint{p2.ID}},
		{"limit", models.ProjectFilter{Limit: 1, Offset: 1}, []uint{p2.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			var ids []uint
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	_, total, err := repo.List(ctx, models.ProjectFilter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	p1.Title = "Campus Market"
	require.NoError(t, repo.Update(ctx, p1))
	got, err := repo.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Campus Market", got.Title)
	assert.Equal(t, []string{"Go", "react"}, []string(got.Tags))

	require.NoError(t, repo.Delete(ctx, p1.ID))
	_, err = repo.GetByID(ctx, p1.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.True(t, models.IsCode(repo.Delete(ctx, p1.ID), models.CodeNotFound))
}

func TestCollabRepository_CRUDAndFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCollabRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "o@example.com", "owner")

	c1 := &models.CollabPost{Title: "Hackathon team", Description: "Need a designer", NeededSkills: []string{"Figma", "UX"}, TargetTeamSize: 4, CurrentTeamSize: 1, Status: models.CollabStatusActive, UserID: owner.ID}
	c2 := &models.CollabPost{Title: "Thesis app", Description: "ML backend", NeededSkills: []string{"python"}, TargetTeamSize: 2, CurrentTeamSize: 2, Status: models.CollabStatusFilled, UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, c1))
	require.NoError(t, repo.Create(ctx, c2))

	got, total, err := repo.List(ctx, models.CollabFilter{Skill: "figma"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, c1.ID, got[0].ID)

	got, _, err = repo.List(ctx, models.CollabFilter{Status: models.CollabStatusFilled})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c2.ID, got[0].ID)

	got, _, err = repo.List(ctx, models.CollabFilter{Search: "ml"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c2.ID, got[0].ID)

	c1.Status = models.CollabStatusCompleted
	require.NoError(t, repo.Update(ctx, c1))
	stored, err := repo.GetByID(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CollabStatusCompleted, stored.Status)

	require.NoError(t, repo.Delete(ctx, c2.ID))
	_, err = repo.GetByID(ctx, c2.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestProfileRepository_GetOrCreate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	u := &models.User{Email: "legacy@example.com", Username: "legacy", Password: "hash"}
	require.NoError(t, db.Create(u).Error)

	_, err := repo.GetByUserID(ctx, u.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	p, err := repo.GetOrCreate(ctx, u.ID)
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	again, err := repo.GetOrCreate(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)

	again.Bio = "Go and coffee"
	again.Skills = []string{"go"}
	require.NoError(t, repo.Save(ctx, again))
	stored, err := repo.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go and coffee", stored.Bio)
	assert.Equal(t, []string{"go"}, []string(stored.Skills))
}
