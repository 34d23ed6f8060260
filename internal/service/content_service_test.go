package service

import (
	"context"
	"fmt"
	"testing"

	"devswipe/internal/models"
	"devswipe/internal/repository"
	"devswipe/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_OwnershipAndPatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewProjectService(repository.NewProjectRepository(db))
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "o@example.com", "owner")
	stranger := testutil.CreateUser(t, db, "s@example.com", "stranger")

	p, err := svc.Create(ctx, owner.ID, CreateProjectInput{
		Title:              "  Course Planner ",
		PreviewDescription: "Plan semesters",
		Tags:               []string{"go", " Go ", "", "vue"},
		Difficulty:         "Intermediate",
		ExternalLink:       ptr("https://github.com/example/planner"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Course Planner", p.Title)
	assert.Equal(t, []string{"go", "vue"}, []string(p.Tags))
	assert.Equal(t, "intermediate", p.Difficulty)
	require.NotNil(t, p.ExternalLink)

	_, err = svc.Update(ctx, UpdateProjectInput{CallerID: stranger.ID, ID: p.ID, Patch: ProjectPatch{Title: ptr("Hijacked")}})
	assertCode(t, err, models.CodeForbidden)
	assertCode(t, svc.Delete(ctx, stranger.ID, p.ID), models.CodeForbidden)

	updated, err := svc.Update(ctx, UpdateProjectInput{CallerID: owner.ID, ID: p.ID, Patch: ProjectPatch{
		FullDescription: ptr("Drag and drop courses"),
		ExternalLink:    ptr(""),
	}})
	require.NoError(t, err)
	assert.Equal(t, "Course Planner", updated.Title, "absent fields are unchanged")
	assert.Equal(t, "Drag and drop courses", updated.FullDescription)
	assert.Nil(t, updated.ExternalLink, "empty link clears it")

	stored, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drag and drop courses", stored.FullDescription)

	_, err = svc.Update(ctx, UpdateProjectInput{CallerID: owner.ID, ID: p.ID, Patch: ProjectPatch{Difficulty: ptr("impossible")}})
	assertCode(t, err, models.CodeValidation)

	mine, total, err := svc.ListByOwner(ctx, owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, mine, 1)

	require.NoError(t, svc.Delete(ctx, owner.ID, p.ID))
	_, err = svc.GetByID(ctx, p.ID)
	assertCode(t, err, models.CodeNotFound)
}

func TestProjectService_CreateValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewProjectService(repository.NewProjectRepository(db))
	owner := testutil.CreateUser(t, db, "o@example.com", "owner")

	_, err := svc.Create(context.Background(), owner.ID, CreateProjectInput{Title: "   "})
	assertCode(t, err, models.CodeValidation)

	_, err = svc.Create(context.Background(), owner.ID, CreateProjectInput{Title: "x", ExternalLink: ptr("not a url")})
	assertCode(t, err, models.CodeValidation)
}

func TestCollabService_Rules(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCollabService(repository.NewCollabRepository(db))
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "o@example.com", "owner")
	stranger := testutil.CreateUser(t, db, "s@example.com", "stranger")

	post, err := svc.Create(ctx, owner.ID, CreateCollabInput{Title: "Hackathon", NeededSkills: []string{"Go"}, TargetTeamSize: 3})
	require.NoError(t, err)
	assert.Equal(t, models.CollabStatusActive, post.Status)
	assert.Equal(t, 1, post.CurrentTeamSize)

	_, err = svc.Create(ctx, owner.ID, CreateCollabInput{Title: "Bad", TargetTeamSize: 2, CurrentTeamSize: 3})
	assertCode(t, err, models.CodeValidation)

	_, err = svc.Create(ctx, owner.ID, CreateCollabInput{Title: "Bad", Status: "paused"})
	assertCode(t, err, models.CodeValidation)

	_, err = svc.Update(ctx, UpdateCollabInput{CallerID: stranger.ID, ID: post.ID, Patch: CollabPatch{Status: ptr(models.CollabStatusFilled)}})
	assertCode(t, err, models.CodeForbidden)

	_, err = svc.Update(ctx, UpdateCollabInput{CallerID: owner.ID, ID: post.ID, Patch: CollabPatch{CurrentTeamSize: ptr(4)}})
	assertCode(t, err, models.CodeValidation)

	updated, err := svc.Update(ctx, UpdateCollabInput{CallerID: owner.ID, ID: post.ID, Patch: CollabPatch{
		CurrentTeamSize: ptr(3),
		Status:          ptr(models.CollabStatusFilled),
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.CurrentTeamSize)
	assert.Equal(t, models.CollabStatusFilled, updated.Status)
	assert.Equal(t, "Hackathon", updated.Title)

	stored, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.CurrentTeamSize, "rejected patches are not persisted")

	list, _, err := svc.List(ctx, models.CollabFilter{Status: models.CollabStatusFilled})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, _, err = svc.List(ctx, models.CollabFilter{Status: "bogus"})
	assertCode(t, err, models.CodeValidation)

	assertCode(t, svc.Delete(ctx, stranger.ID, post.ID), models.CodeForbidden)
	require.NoError(t, svc.Delete(ctx, owner.ID, post.ID))
}

func TestProfileService_SaveAndOnboarding(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewUserRepository(db)
	svc := NewProfileService(users, repository.NewProfileRepository(db))
	ctx := context.Background()

	legacy := &models.User{Email: "legacy@example.com", Username: "legacy", Password: "hash", FirstName: "Leg"}
	require.NoError(t, db.Create(legacy).Error)

	_, err := svc.GetByUserID(ctx, legacy.ID)
	assertCode(t, err, models.CodeNotFound)

	saved, err := svc.Save(ctx, legacy.ID, ProfilePatch{
		Bio:        ptr(" Backend nerd "),
		Skills:     ptr([]string{"Go", "go", "SQL"}),
		University: ptr("TU Delft"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend nerd", saved.Bio)
	assert.Equal(t, []string{"Go", "SQL"}, []string(saved.Skills))

	saved, err = svc.Save(ctx, legacy.ID, ProfilePatch{Interests: ptr([]string{"music"})})
	require.NoError(t, err)
	assert.Equal(t, "Backend nerd", saved.Bio, "nil fields are unchanged")
	assert.Equal(t, []string{"music"}, []string(saved.Interests))

	tooMany := make([]string, 31)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("skill-%d", i)
	}
	_, err = svc.Save(ctx, legacy.ID, ProfilePatch{Skills: &tooMany})
	assertCode(t, err, models.CodeValidation)

	view, err := svc.GetByUserID(ctx, legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, "TU Delft", view.User.University)
	assert.Equal(t, "legacy", view.User.Username)

	done, err := svc.CompleteOnboarding(ctx, legacy.ID)
	require.NoError(t, err)
	assert.True(t, done.OnboardingCompleted)

	mine, err := svc.GetMine(ctx, legacy.ID)
	require.NoError(t, err)
	assert.True(t, mine.Profile.OnboardingCompleted)
}
