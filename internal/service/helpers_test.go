package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"devswipe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertCode asserts that err is an AppError with the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func ptr[T any](v T) *T { return &v }

type readEvent struct {
	senderID, readerID uint
	count              int64
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []models.MessageView
	reads    []readEvent
}

func (r *recordingNotifier) NotifyNewMessage(_ context.Context, _ *models.User, msg *models.MessageView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
}

func (r *recordingNotifier) NotifyMessagesRead(_ context.Context, senderID, readerID uint, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads = append(r.reads, readEvent{senderID, readerID, count})
}
