package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListOptions pages a listing. Zero values use the server defaults.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		v.Set("offset", strconv.Itoa(o.Offset))
	}
	return v
}

// ProjectQuery filters ListProjects.
type ProjectQuery struct {
	ListOptions
	Tag        string
	Difficulty string
	Search     string
}

// CollabQuery filters ListCollabs.
type CollabQuery struct {
	ListOptions
	Skill  string
	Status string
	Search string
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// MyProfile returns the caller's profile.
func (c *Client) MyProfile(ctx context.Context, s *Session) (*ProfileView, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[ProfileView](ctx, c, request{method: http.MethodGet, path: "/profile", session: s})
}

// UserProfile returns another user's profile.
func (c *Client) UserProfile(ctx context.Context, s *Session, userID uint) (*ProfileView, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[ProfileView](ctx, c, request{method: http.MethodGet, path: fmt.Sprintf("/profile/%d", userID), session: s})
}

// UpdateProfile applies a partial patch to the caller's profile.
func (c *Client) UpdateProfile(ctx context.Context, s *Session, patch ProfilePatch) (*Profile, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[Profile](ctx, c, request{method: http.MethodPut, path: "/profile", session: s, body: patch})
}

// CompleteOnboarding marks the caller's onboarding as done.
func (c *Client) CompleteOnboarding(ctx context.Context, s *Session) (*Profile, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[Profile](ctx, c, request{method: http.MethodPost, path: "/profile/complete-onboarding", session: s})
}

// ListProjects browses project ideas. No session is needed.
func (c *Client) ListProjects(ctx context.Context, q ProjectQuery) (*List[Project], error) {
	v := q.values()
	setIf(v, "tag", q.Tag)
	setIf(v, "difficulty", q.Difficulty)
	setIf(v, "q", q.Search)
	return call[List[Project]](ctx, c, request{method: http.MethodGet, path: "/projects", query: v})
}

// GetProject fetches one project.
func (c *Client) GetProject(ctx context.Context, id uint) (*Project, error) {
	return call[Project](ctx, c, request{method: http.MethodGet, path: fmt.Sprintf("/projects/%d", id)})
}

// UserProjects lists the projects a user posted.
func (c *Client) UserProjects(ctx context.Context, userID uint, opts ListOptions) (*List[Project], error) {
	return call[List[Project]](ctx, c, request{method: http.MethodGet, path: fmt.Sprintf("/projects/user/%d", userID), query: opts.values()})
}

// MyProjects lists the caller's projects.
func (c *Client) MyProjects(ctx context.Context, s *Session, opts ListOptions) (*List[Project], error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[List[Project]](ctx, c, request{method: http.MethodGet, path: "/projects/mine", query: opts.values(), session: s})
}

// CreateProject posts a project idea owned by the caller.
func (c *Client) CreateProject(ctx context.Context, s *Session, in ProjectInput) (*Project, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[Project](ctx, c, request{method: http.MethodPost, path: "/projects", session: s, body: in})
}

// UpdateProject patches a project the caller owns.
func (c *Client) UpdateProject(ctx context.Context, s *Session, id uint, patch ProjectPatch) (*Project, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[Project](ctx, c, request{method: http.MethodPut, path: fmt.Sprintf("/projects/%d", id), session: s, body: patch})
}

// DeleteProject removes a project the caller owns.
func (c *Client) DeleteProject(ctx context.Context, s *Session, id uint) error {
	if err := requireSession(s); err != nil {
		return err
	}
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/projects/%d", id), session: s})
}

// ListCollabs browses collaboration posts. No session is needed.
func (c *Client) ListCollabs(ctx context.Context, q CollabQuery) (*List[CollabPost], error) {
	v := q.values()
	setIf(v, "skill", q.Skill)
	setIf(v, "status", q.Status)
	setIf(v, "q", q.Search)
	return call[List[CollabPost]](ctx, c, request{method: http.MethodGet, path: "/collaborations", query: v})
}

// GetCollab fetches one collaboration post.
func (c *Client) GetCollab(ctx context.Context, id uint) (*CollabPost, error) {
	return call[CollabPost](ctx, c, request{method: http.MethodGet, path: fmt.Sprintf("/collaborations/%d", id)})
}

// UserCollabs lists the collaboration posts a user created.
func (c *Client) UserCollabs(ctx context.Context, userID uint, opts ListOptions) (*List[CollabPost], error) {
	return call[List[CollabPost]](ctx, c, request{method: http.MethodGet, path: fmt.Sprintf("/collaborations/user/%d", userID), query: opts.values()})
}

// MyCollabs lists the caller's collaboration posts.
func (c *Client) MyCollabs(ctx context.Context, s *Session, opts ListOptions) (*List[CollabPost], error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[List[CollabPost]](ctx, c, request{method: http.MethodGet, path: "/collaborations/mine", query: opts.values(), session: s})
}

// CreateCollab posts a collaboration request owned by the caller.
func (c *Client) CreateCollab(ctx context.Context, s *Session, in CollabInput) (*CollabPost, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[CollabPost](ctx, c, request{method: http.MethodPost, path: "/collaborations", session: s, body: in})
}

// UpdateCollab patches a collaboration post the caller owns.
func (c *Client) UpdateCollab(ctx context.Context, s *Session, id uint, patch CollabPatch) (*CollabPost, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	return call[CollabPost](ctx, c, request{method: http.MethodPut, path: fmt.Sprintf("/collaborations/%d", id), session: s, body: patch})
}

// DeleteCollab removes a collaboration post the caller owns.
func (c *Client) DeleteCollab(ctx context.Context, s *Session, id uint) error {
	if err := requireSession(s); err != nil {
		return err
	}
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/collaborations/%d", id), session: s})
}
