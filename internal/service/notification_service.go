package service

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"devswipe/internal/featureflags"
	"devswipe/internal/middleware"
	"devswipe/internal/models"
	"devswipe/internal/notifications"
	"devswipe/internal/repository"
)

const (
	maxPushTokenLen  = 255
	pushPreviewRunes = 100
	realtimeTimeout  = 2 * time.Second
)

// PushQueue accepts pushes for asynchronous delivery.
type PushQueue interface {
	Enqueue(p notifications.Push) bool
}

// EventPublisher sends realtime events to a user's connections.
type EventPublisher interface {
	PublishEvent(ctx context.Context, userID uint, evt notifications.Event) error
}

// NotificationService owns push token registration and fans chat events out
// to push and realtime delivery.
type NotificationService struct {
	users    repository.UserRepository
	push     PushQueue
	realtime EventPublisher
	flags    *featureflags.Manager
}

// NewNotificationService returns a new NotificationService. push and
// realtime may be nil.
func NewNotificationService(
	users repository.UserRepository,
	push PushQueue,
	realtime EventPublisher,
	flags *featureflags.Manager,
) *NotificationService {
	return &NotificationService{users: users, push: push, realtime: realtime, flags: flags}
}

// RegisterToken associates a device token with userID. The token is removed
// from any other account first.
func (s *NotificationService) RegisterToken(ctx context.Context, userID uint, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.NewFieldValidationError(map[string]string{"token": "is required"})
	}
	if len(token) > maxPushTokenLen {
		return models.NewFieldValidationError(map[string]string{"token": "must have at most 255 characters"})
	}
	return s.users.SetPushToken(ctx, userID, token)
}

// UnregisterToken clears the caller's device token.
func (s *NotificationService) UnregisterToken(ctx context.Context, userID uint) error {
	return s.users.ClearPushToken(ctx, userID)
}

// ForgetToken is the dispatcher's callback for tokens the gateway rejected.
func (s *NotificationService) ForgetToken(ctx context.Context, token string) {
	if err := s.users.ClearPushTokenValue(ctx, token); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to clear rejected push token", "error", err)
	}
}

// NotifyNewMessage queues a push for receiver and publishes a realtime
// new_message event. Neither outcome is reported to the caller.
func (s *NotificationService) NotifyNewMessage(ctx context.Context, receiver *models.User, msg *models.MessageView) {
	if s.push != nil && receiver.HasPushToken() && s.flags.Enabled(featureflags.PushNotifications, receiver.ID) {
		p := notifications.Push{
			Token: *receiver.PushToken,
			Title: senderName(msg.Sender),
			Body:  messagePreview(msg),
			Data: map[string]any{
				"type":            notifications.EventNewMessage,
				"sender_id":       msg.Sender.ID,
				"conversation_id": msg.ConversationID,
				"message_id":      msg.ID,
			},
		}
		if !s.push.Enqueue(p) {
			middleware.Logger.WarnContext(ctx, "push not queued", "receiver_id", receiver.ID)
		}
	}

	s.publish(ctx, receiver.ID, notifications.Event{Type: notifications.EventNewMessage, Payload: msg})
}

// NotifyMessagesRead tells senderID that readerID read count messages.
func (s *NotificationService) NotifyMessagesRead(ctx context.Context, senderID, readerID uint, count int64) {
	s.publish(ctx, senderID, notifications.Event{
		Type:    notifications.EventMessagesRead,
		Payload: notifications.MessagesReadPayload{ReaderID: readerID, Count: count},
	})
}

func (s *NotificationService) publish(ctx context.Context, userID uint, evt notifications.Event) {
	if s.realtime == nil || !s.flags.Enabled(featureflags.RealtimeEvents, userID) {
		return
	}
	// The event outlives a cancelled request but not a stuck Redis.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), realtimeTimeout)
	defer cancel()
	if err := s.realtime.PublishEvent(pubCtx, userID, evt); err != nil {
		middleware.Logger.WarnContext(ctx, "realtime publish failed",
			"event", evt.Type, "user_id", userID, "error", err)
	}
}

func senderName(u models.PublicUser) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	return "User " + strconv.FormatUint(uint64(u.ID), 10)
}

func messagePreview(msg *models.MessageView) string {
	switch msg.MessageType {
	case models.MessageTypeImage:
		return "Sent you an image"
	case models.MessageTypeFile:
		return "Sent you a file"
	}
	if utf8.RuneCountInString(msg.Content) <= pushPreviewRunes {
		return msg.Content
	}
	runes := []rune(msg.Content)
	return string(runes[:pushPreviewRunes-1]) + "…"
}
