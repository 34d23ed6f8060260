package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"devswipe/internal/models"
	"devswipe/internal/observability"
	"devswipe/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	maxMessageContentLen = 5000
	defaultPageSize      = 50
	maxPageSize          = 100
)

// SendFailure tags an expected, non-exceptional send failure.
type SendFailure string

const (
	FailureReceiverNotFound    SendFailure = "ReceiverNotFound"
	FailureSelfMessageRejected SendFailure = "SelfMessageRejected"
)

// SendResult is the outcome of SendMessage. Exactly one of Message or
// Failure is set.
type SendResult struct {
	Success bool                `json:"success"`
	Message *models.MessageView `json:"message,omitempty"`
	Failure SendFailure         `json:"failure,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func failed(f SendFailure, msg string) *SendResult {
	observability.MessageSendRejected.WithLabelValues(string(f)).Inc()
	return &SendResult{Failure: f, Error: msg}
}

// SendMessageInput is the input for sending a message.
type SendMessageInput struct {
	SenderID   uint               `json:"-"`
	ReceiverID uint               `json:"receiver_id"`
	Content    string             `json:"content"`
	Type       models.MessageType `json:"message_type"`
}

// MessageNotifier receives best-effort side effects of chat operations.
type MessageNotifier interface {
	NotifyNewMessage(ctx context.Context, receiver *models.User, msg *models.MessageView)
	NotifyMessagesRead(ctx context.Context, senderID, readerID uint, count int64)
}

// PageConfig bounds message history pages.
type PageConfig struct {
	Default int
	Max     int
}

// ChatService provides direct messaging between two users.
type ChatService struct {
	chat     repository.ChatRepository
	users    repository.UserRepository
	notifier MessageNotifier
	page     PageConfig
	now      func() time.Time
}

// NewChatService returns a new ChatService. notifier may be nil.
func NewChatService(
	chat repository.ChatRepository,
	users repository.UserRepository,
	notifier MessageNotifier,
	page PageConfig,
) *ChatService {
	if page.Max <= 0 || page.Max > maxPageSize {
		page.Max = maxPageSize
	}
	if page.Default <= 0 || page.Default > page.Max {
		page.Default = min(defaultPageSize, page.Max)
	}
	return &ChatService{
		chat:     chat,
		users:    users,
		notifier: notifier,
		page:     page,
		now:      time.Now,
	}
}

// SendMessage stores a message from in.SenderID to in.ReceiverID and
// advances their conversation. Self messages and unknown receivers are
// reported in the result rather than as errors and write nothing.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*SendResult, error) {
	ctx, span := observability.StartSpan(ctx, "chat.send_message",
		attribute.Int64("sender_id", int64(in.SenderID)),
		attribute.Int64("receiver_id", int64(in.ReceiverID)))
	var spanErr error
	defer func() { span.End(spanErr) }()

	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, models.NewFieldValidationError(map[string]string{"content": "is required"})
	}
	if utf8.RuneCountInString(in.Content) > maxMessageContentLen {
		return nil, models.NewFieldValidationError(map[string]string{"content": "must have at most 5000 characters"})
	}
	if in.Type == "" {
		in.Type = models.MessageTypeText
	}
	if !in.Type.Valid() {
		return nil, models.NewFieldValidationError(map[string]string{"message_type": "must be one of: text image file"})
	}

	if in.SenderID == in.ReceiverID {
		return failed(FailureSelfMessageRejected, "You cannot send a message to yourself"), nil
	}
	receiver, err := s.users.GetByID(ctx, in.ReceiverID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return failed(FailureReceiverNotFound, "Receiver not found"), nil
		}
		spanErr = err
		return nil, err
	}

	msg := &models.Message{
		SenderID:    in.SenderID,
		ReceiverID:  in.ReceiverID,
		Content:     in.Content,
		MessageType: in.Type,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.chat.RecordMessage(ctx, msg); err != nil {
		spanErr = err
		return nil, err
	}
	observability.MessagesSent.WithLabelValues(string(in.Type)).Inc()
	span.AddAttributes(attribute.Int64("conversation_id", int64(msg.ConversationID)))

	view := models.NewMessageView(msg)
	if s.notifier != nil {
		s.notifier.NotifyNewMessage(ctx, receiver, &view)
	}
	return &SendResult{Success: true, Message: &view}, nil
}

// GetConversations lists the user's conversations, most recent first, with
// the unread count of messages from the other participant.
func (s *ChatService) GetConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	convs, err := s.chat.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.chat.UnreadCountsBySender(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.ConversationSummary, 0, len(convs))
	for i := range convs {
		c := &convs[i]
		otherID := c.Other(userID)
		other := models.PublicUser{ID: otherID}
		if u := c.OtherUser(userID); u != nil {
			other = u.Public()
		}
		out = append(out, models.ConversationSummary{
			ConversationID: c.ID,
			OtherUser:      other,
			LastMessage:    c.LastMessage,
			LastMessageAt:  c.LastMessageAt,
			UnreadCount:    unread[otherID],
			UpdatedAt:      c.UpdatedAt,
		})
	}
	return out, nil
}

// GetConversationMessages returns one zero-based page of the history
// between userID and otherUserID, oldest first.
func (s *ChatService) GetConversationMessages(ctx context.Context, userID, otherUserID uint, page, size int) (*models.MessagePage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = s.page.Default
	}
	if size > s.page.Max {
		size = s.page.Max
	}

	// One extra row tells us whether another page exists.
	msgs, err := s.chat.ListMessagesBetween(ctx, userID, otherUserID, size+1, page*size)
	if err != nil {
		return nil, err
	}
	hasMore := len(msgs) > size
	if hasMore {
		msgs = msgs[:size]
	}

	views := make([]models.MessageView, 0, len(msgs))
	for i := range msgs {
		views = append(views, models.NewMessageView(&msgs[i]))
	}
	return &models.MessagePage{Messages: views, Page: page, Size: size, HasMore: hasMore}, nil
}

// MarkMessagesAsRead marks every unread message from otherUserID to userID
// as read and returns how many changed.
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, userID, otherUserID uint) (int64, error) {
	n, err := s.chat.MarkReadFrom(ctx, userID, otherUserID, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 && s.notifier != nil {
		s.notifier.NotifyMessagesRead(ctx, otherUserID, userID, n)
	}
	return n, nil
}

// GetUnreadCount returns the number of unread messages addressed to userID.
func (s *ChatService) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.chat.CountUnread(ctx, userID)
}
