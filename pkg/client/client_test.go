package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, WithRetry(3, time.Millisecond, 5*time.Millisecond))
	require.NoError(t, err)
	return c
}

func signedIn() *Session {
	s := NewSession()
	s.Restore("tok", time.Time{})
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewValidatesBaseURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)
	_, err = New("http://")
	assert.Error(t, err)

	c, err := New("https://api.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/api/projects", c.endpoint("/projects", nil))
}

func TestGetIsRetriedOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "busy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"unread_count": 4})
	}))

	n, err := c.UnreadCount(context.Background(), signedIn())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetGivesUpAfterMaxTries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "down"})
	}))

	_, err := c.GetProject(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project with id 9 not found", "code": "NOT_FOUND"})
	}))

	_, err := c.GetProject(context.Background(), 9)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Project with id 9 not found", apiErr.Message)
	assert.False(t, apiErr.Temporary())
	assert.Equal(t, int32(1), calls.Load())
}

func TestMutationsAreSentOnce(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "busy"})
	}))

	_, err := c.CreateProject(context.Background(), signedIn(), ProjectInput{Title: "x"})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusServiceUnavailable))
	assert.Equal(t, int32(1), calls.Load())
}

func TestAPIErrorFields(t *testing.T) {
	e := newAPIError(http.StatusBadRequest, []byte(`{"error":"Validation failed","code":"VALIDATION_ERROR","fields":{"email":"is required"}}`))
	assert.Equal(t, "is required", e.Fields["email"])
	assert.Contains(t, e.Error(), "VALIDATION_ERROR")

	plain := newAPIError(http.StatusBadGateway, []byte("upstream gone\n"))
	assert.Equal(t, "upstream gone", plain.Message)
	assert.True(t, plain.Temporary())

	empty := newAPIError(http.StatusTooManyRequests, nil)
	assert.Equal(t, "Too Many Requests", empty.Message)
	assert.True(t, empty.Temporary())
}

func TestDecodeErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := c.GetCollab(context.Background(), 1)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, int32(1), calls.Load())
}

func TestAuthenticatedCallsNeedASession(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := c.Conversations(context.Background(), NewSession())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = c.Me(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	expired := NewSession()
	expired.Restore("tok", time.Now().Add(-time.Minute))
	_, err = c.UnreadCount(context.Background(), expired)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.Zero(t, calls.Load())
}

func TestLoginFillsSessionAndLogoutClearsIt(t *testing.T) {
	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	var logoutAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		writeJSON(w, http.StatusOK, AuthResponse{Token: "jwt-1", ExpiresAt: exp, User: &User{ID: 7, Username: "ada"}})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, User{ID: 7, Username: "ada", Email: "ada@example.com"})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		logoutAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "redis down"})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	s := NewSession()
	res, err := c.Login(ctx, s, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", res.Token)
	assert.True(t, s.Authenticated())
	assert.True(t, exp.Equal(s.ExpiresAt()))
	assert.Equal(t, uint(7), s.User().ID)

	me, err := c.Me(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)
	assert.Equal(t, "ada@example.com", s.User().Email)

	err = c.Logout(ctx, s)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.Equal(t, "Bearer jwt-1", logoutAuth)
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials", "code": "UNAUTHORIZED"})
	}))

	s := NewSession()
	_, err := c.Login(context.Background(), s, "ada@example.com", "wrong")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, s.Authenticated())
}

func TestListQueryParameters(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/collaborations", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "go", q.Get("skill"))
		assert.Equal(t, "active", q.Get("status"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Empty(t, q.Get("offset"))
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, List[CollabPost]{Items: []CollabPost{{ID: 1, Title: "Need a Go dev"}}, Total: 1, Limit: 10})
	}))

	page, err := c.ListCollabs(context.Background(), CollabQuery{ListOptions: ListOptions{Limit: 10}, Skill: "go", Status: CollabActive})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Total)
}
