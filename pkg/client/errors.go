package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotAuthenticated is returned before any network call when an
// authenticated endpoint is called with an empty or expired session.
var ErrNotAuthenticated = errors.New("client: session is not authenticated")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	var payload struct {
		Error  string            `json:"error"`
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Code = payload.Code
		e.Message = payload.Error
		e.Fields = payload.Fields
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("devswipe api: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("devswipe api: %d: %s", e.Status, e.Message)
}

// Temporary reports whether the request may succeed if retried.
func (e *APIError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// DecodeError means a 2xx response body did not match the expected shape.
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("devswipe api: decode %d response: %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
