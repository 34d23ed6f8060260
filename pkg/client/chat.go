package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SendMessage sends a direct message. It is not idempotent and is never
// retried. Expected refusals (unknown receiver, messaging yourself) come
// back as a SendResult with Success false rather than as an error.
func (c *Client) SendMessage(ctx context.Context, s *Session, in SendRequest) (*SendResult, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	res, err := call[SendResult](ctx, c, request{method: http.MethodPost, path: "/chat/messages", session: s, body: in})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Code == FailureReceiverNotFound || apiErr.Code == FailureSelfMessageRejected) {
			return &SendResult{Failure: apiErr.Code, Error: apiErr.Message}, nil
		}
		return nil, err
	}
	return res, nil
}

// Conversations lists the caller's conversations, most recent first.
func (c *Client) Conversations(ctx context.Context, s *Session) ([]ConversationSummary, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	out, err := call[[]ConversationSummary](ctx, c, request{method: http.MethodGet, path: "/chat/conversations", session: s})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Messages returns one zero-based page of the conversation with otherUserID,
// oldest first. size <= 0 uses the server default.
func (c *Client) Messages(ctx context.Context, s *Session, otherUserID uint, page, size int) (*MessagePage, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return call[MessagePage](ctx, c, request{method: http.MethodGet, path: fmt.Sprintf("/chat/messages/%d", otherUserID), query: q, session: s})
}

// MarkAsRead marks every message from otherUserID to the caller as read and
// returns how many changed.
func (c *Client) MarkAsRead(ctx context.Context, s *Session, otherUserID uint) (int64, error) {
	if err := requireSession(s); err != nil {
		return 0, err
	}
	out, err := call[struct {
		Updated int64 `json:"updated"`
	}](ctx, c, request{method: http.MethodPost, path: fmt.Sprintf("/chat/messages/%d/mark-as-read", otherUserID), session: s})
	if err != nil {
		return 0, err
	}
	return out.Updated, nil
}

// UnreadCount returns how many messages addressed to the caller are unread.
func (c *Client) UnreadCount(ctx context.Context, s *Session) (int64, error) {
	if err := requireSession(s); err != nil {
		return 0, err
	}
	out, err := call[struct {
		UnreadCount int64 `json:"unread_count"`
	}](ctx, c, request{method: http.MethodGet, path: "/chat/unread-count", session: s})
	if err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}
