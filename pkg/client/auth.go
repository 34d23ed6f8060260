package client

import (
	"context"
	"net/http"
)

// Register creates an account and signs s in as it.
func (c *Client) Register(ctx context.Context, s *Session, in RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: in, out: &out}); err != nil {
		return nil, err
	}
	s.set(&out)
	return &out, nil
}

// Login exchanges credentials for a token and stores it in s.
func (c *Client) Login(ctx context.Context, s *Session, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: body, out: &out}); err != nil {
		return nil, err
	}
	s.set(&out)
	return &out, nil
}

// Me returns the signed-in user and refreshes s.User.
func (c *Client) Me(ctx context.Context, s *Session) (*User, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	var out User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", session: s, out: &out}); err != nil {
		return nil, err
	}
	s.setUser(&out)
	return &out, nil
}

// Logout revokes the token on the server and clears s. The session is
// cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context, s *Session) error {
	if err := requireSession(s); err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout", session: s})
}
