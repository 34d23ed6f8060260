package models

import (
	"time"
)

// MessageType tags the payload carried by a message.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

// Valid reports whether t is a known message type.
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeFile:
		return true
	}
	return false
}

// Conversation is the single container for all messages between two users.
// Participants are stored ordered so that User1ID < User2ID.
type Conversation struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	User1ID       uint       `gorm:"not null;uniqueIndex:idx_conversations_pair,priority:1" json:"user1_id"`
	User2ID       uint       `gorm:"not null;uniqueIndex:idx_conversations_pair,priority:2;index" json:"user2_id"`
	User1         *User      `gorm:"foreignKey:User1ID;constraint:OnDelete:CASCADE" json:"-"`
	User2         *User      `gorm:"foreignKey:User2ID;constraint:OnDelete:CASCADE" json:"-"`
	LastMessage   string     `gorm:"type:text" json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `gorm:"index" json:"updated_at"`
}

// CanonicalPair orders two user ids the way conversations store them.
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// Other returns the participant that is not userID.
func (c *Conversation) Other(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// OtherUser returns the preloaded participant that is not userID.
func (c *Conversation) OtherUser(userID uint) *User {
	if c.User1ID == userID {
		return c.User2
	}
	return c.User1
}

// Message is a single directed unit of chat. Only the read state changes
// after creation.
type Message struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	ConversationID uint        `gorm:"index;not null" json:"conversation_id"`
	SenderID       uint        `gorm:"not null;index:idx_messages_sender_receiver,priority:1" json:"sender_id"`
	ReceiverID     uint        `gorm:"not null;index:idx_messages_sender_receiver,priority:2;index:idx_messages_receiver_read,priority:1" json:"receiver_id"`
	Sender         *User       `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver       *User       `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	Content        string      `gorm:"type:text;not null" json:"content"`
	MessageType    MessageType `gorm:"size:10;not null;default:text" json:"message_type"`
	IsRead         bool        `gorm:"not null;default:false;index:idx_messages_receiver_read,priority:2" json:"is_read"`
	ReadAt         *time.Time  `json:"read_at,omitempty"`
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`
}

// MessageView is a message hydrated with both participants' public fields.
type MessageView struct {
	ID             uint        `json:"id"`
	ConversationID uint        `json:"conversation_id"`
	Sender         PublicUser  `json:"sender"`
	Receiver       PublicUser  `json:"receiver"`
	Content        string      `json:"content"`
	MessageType    MessageType `json:"message_type"`
	IsRead         bool        `json:"is_read"`
	CreatedAt      time.Time   `json:"created_at"`
}

// NewMessageView builds the API shape of m. Sender and Receiver must be
// preloaded.
func NewMessageView(m *Message) MessageView {
	v := MessageView{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Content:        m.Content,
		MessageType:    m.MessageType,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
	if m.Sender != nil {
		v.Sender = m.Sender.Public()
	} else {
		v.Sender = PublicUser{ID: m.SenderID}
	}
	if m.Receiver != nil {
		v.Receiver = m.Receiver.Public()
	} else {
		v.Receiver = PublicUser{ID: m.ReceiverID}
	}
	return v
}

// ConversationSummary is one row of a user's conversation list.
type ConversationSummary struct {
	ConversationID uint       `json:"conversation_id"`
	OtherUser      PublicUser `json:"other_user"`
	LastMessage    string     `json:"last_message"`
	LastMessageAt  *time.Time `json:"last_message_at"`
	UnreadCount    int64      `json:"unread_count"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// MessagePage is one page of a conversation history, oldest first.
type MessagePage struct {
	Messages []MessageView `json:"messages"`
	Page     int           `json:"page"`
	Size     int           `json:"size"`
	HasMore  bool          `json:"has_more"`
}
