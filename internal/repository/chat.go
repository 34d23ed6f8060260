package repository

import (
	"context"
	"time"

	"devswipe/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository defines the data operations behind direct messaging.
type ChatRepository interface {
	FindOrCreateConversation(ctx context.Context, a, b uint, lastMessage string, at time.Time) (*models.Conversation, error)
	GetConversationByPair(ctx context.Context, a, b uint) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID uint) ([]models.Conversation, error)
	RecordMessage(ctx context.Context, msg *models.Message) error
	GetMessageByID(ctx context.Context, id uint) (*models.Message, error)
	ListMessagesBetween(ctx context.Context, a, b uint, limit, offset int) ([]models.Message, error)
	UnreadCountsBySender(ctx context.Context, receiverID uint) (map[uint]int64, error)
	CountUnread(ctx context.Context, receiverID uint) (int64, error)
	MarkReadFrom(ctx context.Context, receiverID, senderID uint, at time.Time) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) FindOrCreateConversation(ctx context.Context, a, b uint, lastMessage string, at time.Time) (*models.Conversation, error) {
	conv, err := upsertConversation(r.db.WithContext(ctx), a, b, lastMessage, at)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return conv, nil
}

// upsertConversation inserts the conversation for the pair or refreshes its
// last-message fields, then reads the row back by pair. The unique pair index
// makes concurrent first messages converge on one row.
func upsertConversation(tx *gorm.DB, a, b uint, lastMessage string, at time.Time) (*models.Conversation, error) {
	u1, u2 := models.CanonicalPair(a, b)
	at = at.UTC()
	conv := models.Conversation{
		User1ID:       u1,
		User2ID:       u2,
		LastMessage:   lastMessage,
		LastMessageAt: &at,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_message", "last_message_at", "updated_at"}),
	}).Create(&conv).Error
	if err != nil {
		return nil, err
	}

	var stored models.Conversation
	if err := tx.Where("user1_id = ? AND user2_id = ?", u1, u2).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *chatRepository) GetConversationByPair(ctx context.Context, a, b uint) (*models.Conversation, error) {
	u1, u2 := models.CanonicalPair(a, b)
	var conv models.Conversation
	err := r.db.WithContext(ctx).Where("user1_id = ? AND user2_id = ?", u1, u2).First(&conv).Error
	if err != nil {
		return nil, notFoundOr(err, "Conversation", [2]uint{u1, u2})
	}
	return &conv, nil
}

// ListConversations returns every conversation involving userID with both
// participants and their profiles preloaded, most recently active first.
func (r *chatRepository) ListConversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.WithContext(ctx).
		Preload("User1.Profile").
		Preload("User2.Profile").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return conversations, nil
}

// RecordMessage stores msg and advances its conversation in one transaction.
// On return msg carries its ID, ConversationID and preloaded participants.
func (r *chatRepository) RecordMessage(ctx context.Context, msg *models.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conv, err := upsertConversation(tx, msg.SenderID, msg.ReceiverID, msg.Content, msg.CreatedAt)
		if err != nil {
			return err
		}
		msg.ConversationID = conv.ID
		msg.IsRead = false
		msg.ReadAt = nil
		return tx.Omit(clause.Associations).Create(msg).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	err = r.db.WithContext(ctx).
		Preload("Sender.Profile").
		Preload("Receiver.Profile").
		First(msg, msg.ID).Error
	if err != nil {
		return notFoundOr(err, "Message", msg.ID)
	}
	return nil
}

func (r *chatRepository) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender.Profile").
		Preload("Receiver.Profile").
		First(&msg, id).Error
	if err != nil {
		return nil, notFoundOr(err, "Message", id)
	}
	return &msg, nil
}

// ListMessagesBetween returns messages exchanged by a and b in either
// direction, oldest first.
func (r *chatRepository) ListMessagesBetween(ctx context.Context, a, b uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender.Profile").
		Preload("Receiver.Profile").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

type unreadRow struct {
	SenderID uint
	Count    int64
}

// UnreadCountsBySender counts unread messages addressed to receiverID,
// grouped by sender, in a single query.
func (r *chatRepository) UnreadCountsBySender(ctx context.Context, receiverID uint) (map[uint]int64, error) {
	var rows []unreadRow
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Select("sender_id, COUNT(*) AS count").
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.SenderID] = row.Count
	}
	return counts, nil
}

func (r *chatRepository) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// MarkReadFrom flips every unread message from senderID to receiverID in one
// conditional UPDATE and returns how many rows changed.
func (r *chatRepository) MarkReadFrom(ctx context.Context, receiverID, senderID uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Updates(map[string]any{"is_read": true, "read_at": at.UTC()})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
