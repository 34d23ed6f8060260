package server

import (
	"fmt"
	"net/http"
	"testing"

	"devswipe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileEndpoints(t *testing.T) {
	app := newTestServer(t, nil).App()
	token, id := register(t, app, "erin")
	otherToken, _ := register(t, app, "frank")

	status, body := doJSON(t, app, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	view := decode[models.ProfileView](t, body)
	assert.Equal(t, "erin", view.User.Username)
	assert.False(t, view.Profile.OnboardingCompleted)

	status, body = doJSON(t, app, http.MethodPut, "/api/profile", token, map[string]any{
		"bio":        "Gopher",
		"skills":     []string{"Go", "go", "SQL"},
		"university": "MIT",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	profile := decode[models.UserProfile](t, body)
	assert.Equal(t, []string{"Go", "SQL"}, []string(profile.Skills))

	// Fields left out of the patch keep their values.
	status, body = doJSON(t, app, http.MethodPost, "/api/profile", token, map[string]any{"bio": "Rustacean"})
	require.Equal(t, http.StatusOK, status)
	profile = decode[models.UserProfile](t, body)
	assert.Equal(t, "Rustacean", profile.Bio)
	assert.Equal(t, "MIT", profile.University)
	assert.Equal(t, []string{"Go", "SQL"}, []string(profile.Skills))

	status, body = doJSON(t, app, http.MethodPost, "/api/profile/complete-onboarding", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[models.UserProfile](t, body).OnboardingCompleted)

	status, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/profile/%d", id), otherToken, nil)
	require.Equal(t, http.StatusOK, status)
	other := decode[models.ProfileView](t, body)
	assert.Equal(t, "MIT", other.User.University)
	assert.Equal(t, "Rustacean", other.Profile.Bio)

	status, _ = doJSON(t, app, http.MethodGet, "/api/profile/9999", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, body = doJSON(t, app, http.MethodGet, "/api/profile/abc", otherToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid user ID", decode[models.ErrorResponse](t, body).Error)
}

func TestProjectOwnership(t *testing.T) {
	app := newTestServer(t, nil).App()
	owner, ownerID := register(t, app, "grace")
	intruder, _ := register(t, app, "heidi")

	status, body := doJSON(t, app, http.MethodPost, "/api/projects", owner, map[string]any{
		"title":               "Realtime chess",
		"preview_description": "Play chess over websockets",
		"tags":                []string{"go", "websocket"},
		"difficulty":          "Intermediate",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	project := decode[models.Project](t, body)
	assert.Equal(t, ownerID, project.UserID)
	assert.Equal(t, "intermediate", project.Difficulty)
	path := fmt.Sprintf("/api/projects/%d", project.ID)

	status, _ = doJSON(t, app, http.MethodPost, "/api/projects", "", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, app, http.MethodPut, path, intruder, map[string]any{"title": "Mine now"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, models.CodeForbidden, decode[models.ErrorResponse](t, body).Code)

	status, body = doJSON(t, app, http.MethodPut, path, owner, map[string]any{"title": "Realtime chess 2"})
	require.Equal(t, http.StatusOK, status)
	updated := decode[models.Project](t, body)
	assert.Equal(t, "Realtime chess 2", updated.Title)
	assert.Equal(t, []string{"go", "websocket"}, []string(updated.Tags))

	status, body = doJSON(t, app, http.MethodGet, "/api/projects?tag=websocket", "", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[ListResponse[models.Project]](t, body)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 20, list.Limit)

	status, body = doJSON(t, app, http.MethodGet, "/api/projects?difficulty=beginner", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[ListResponse[models.Project]](t, body).Items)

	status, body = doJSON(t, app, http.MethodGet, "/api/projects/mine", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[ListResponse[models.Project]](t, body).Items, 1)

	status, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projects/user/%d", ownerID), "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[ListResponse[models.Project]](t, body).Items, 1)

	status, _ = doJSON(t, app, http.MethodDelete, path, intruder, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = doJSON(t, app, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doJSON(t, app, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCollabRules(t *testing.T) {
	app := newTestServer(t, nil).App()
	owner, _ := register(t, app, "ivan")
	intruder, _ := register(t, app, "judy")

	status, body := doJSON(t, app, http.MethodPost, "/api/collaborations", owner, map[string]any{
		"title":             "Hackathon team",
		"needed_skills":     []string{"React", "Go"},
		"target_team_size":  3,
		"current_team_size": 4,
	})
	assert.Equal(t, http.StatusBadRequest, status, string(body))

	status, body = doJSON(t, app, http.MethodPost, "/api/collaborations", owner, map[string]any{
		"title":             "Hackathon team",
		"needed_skills":     []string{"React", "Go"},
		"target_team_size":  3,
		"current_team_size": 1,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	post := decode[models.CollabPost](t, body)
	assert.Equal(t, models.CollabStatusActive, post.Status)
	path := fmt.Sprintf("/api/collaborations/%d", post.ID)

	status, _ = doJSON(t, app, http.MethodPut, path, intruder, map[string]any{"status": "filled"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodPut, path, owner, map[string]any{"current_team_size": 5})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPut, path, owner, map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodPut, path, owner, map[string]any{"status": "filled", "current_team_size": 3})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, models.CollabStatusFilled, decode[models.CollabPost](t, body).Status)

	status, body = doJSON(t, app, http.MethodGet, "/api/collaborations?skill=go&status=filled", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[ListResponse[models.CollabPost]](t, body).Total)

	status, _ = doJSON(t, app, http.MethodGet, "/api/collaborations?status=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/collaborations/mine", intruder, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[ListResponse[models.CollabPost]](t, body).Items)

	status, _ = doJSON(t, app, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusNoContent, status)
}
