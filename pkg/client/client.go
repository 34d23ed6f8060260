// Package client is a typed HTTP and WebSocket client for the DevSwipe API.
//
// A Client is safe for concurrent use and holds no user state. Callers keep
// credentials in a Session, which Login and Register fill and every
// authenticated call takes explicitly:
//
//	c, _ := client.New("http://localhost:8080")
//	s := client.NewSession()
//	defer s.Close()
//	if _, err := c.Login(ctx, s, "ada@example.com", "secret123"); err != nil { ... }
//	convs, err := c.Conversations(ctx, s)
//
// GET requests are retried with exponential backoff on transport errors,
// 5xx and 429 responses. Mutations are sent exactly once.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/websocket"
)

const apiPrefix = "/api"

// Client talks to one DevSwipe server.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	dialer     *websocket.Dialer
	logger     *slog.Logger
	userAgent  string
	maxTries   uint
	minBackoff time.Duration
	maxBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithDialer replaces the WebSocket dialer used by StreamNotifications.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRetry tunes GET retries. maxTries counts the first attempt, so 1
// disables retrying.
func WithRetry(maxTries uint, minBackoff, maxBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxTries = maxTries
		c.minBackoff = minBackoff
		c.maxBackoff = maxBackoff
	}
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL:    u,
		http:       &http.Client{Timeout: 10 * time.Second},
		dialer:     websocket.DefaultDialer,
		logger:     slog.Default(),
		userAgent:  "devswipe-client/1.0",
		maxTries:   4,
		minBackoff: 200 * time.Millisecond,
		maxBackoff: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxTries == 0 {
		c.maxTries = 1
	}
	return c, nil
}

// request describes one API call.
type request struct {
	method  string
	path    string
	query   url.Values
	session *Session
	body    any
	out     any
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + apiPrefix + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, r request) error {
	var payload []byte
	if r.body != nil {
		var err error
		if payload, err = json.Marshal(r.body); err != nil {
			return fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
	}

	if r.method != http.MethodGet {
		return c.roundTrip(ctx, r, payload)
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.minBackoff
	eb.MaxInterval = c.maxBackoff

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, classify(ctx, c.roundTrip(ctx, r, payload))
	},
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.DebugContext(ctx, "retrying request",
				slog.String("path", r.path), slog.Duration("in", next), slog.String("error", err.Error()))
		}),
	)
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	return err
}

// classify marks errors that retrying cannot fix as permanent.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return backoff.Permanent(err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Temporary() {
			return err
		}
		return backoff.Permanent(err)
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return backoff.Permanent(err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, r request, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.session != nil {
		if token := r.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	return decodeResponse(resp, r.out)
}

func decodeResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Status: resp.StatusCode, Err: err}
	}
	return nil
}

// requireSession fails fast when an authenticated call has no token.
func requireSession(s *Session) error {
	if s == nil || !s.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// call performs r and decodes a successful response into a new T.
func call[T any](ctx context.Context, c *Client, r request) (*T, error) {
	var out T
	r.out = &out
	if err := c.do(ctx, r); err != nil {
		return nil, err
	}
	return &out, nil
}
