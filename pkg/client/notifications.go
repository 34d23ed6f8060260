package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// RegisterPushToken attaches a device token to the caller. The server moves
// the token away from any other account holding it.
func (c *Client) RegisterPushToken(ctx context.Context, s *Session, token string) error {
	if err := requireSession(s); err != nil {
		return err
	}
	return c.do(ctx, request{method: http.MethodPost, path: "/notifications/register-token", session: s, body: map[string]string{"token": token}})
}

// UnregisterPushToken clears the caller's device token.
func (c *Client) UnregisterPushToken(ctx context.Context, s *Session) error {
	if err := requireSession(s); err != nil {
		return err
	}
	return c.do(ctx, request{method: http.MethodPost, path: "/notifications/unregister-token", session: s})
}

// FeatureFlags returns the flags as evaluated for the caller.
func (c *Client) FeatureFlags(ctx context.Context, s *Session) (map[string]bool, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	out, err := call[map[string]bool](ctx, c, request{method: http.MethodGet, path: "/feature-flags", session: s})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Upload stores the content of r under filename and returns its public URL.
// The whole file is buffered so the request carries a Content-Length.
func (c *Client) Upload(ctx context.Context, s *Session, filename string, r io.Reader) (*UploadResult, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/upload", nil), &body)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Bearer "+s.Token())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST /upload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out UploadResult
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
