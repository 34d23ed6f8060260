package client

import (
	"encoding/json"
	"time"
)

// User is the caller's own account.
type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Profile   *Profile  `json:"profile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is what other users can see of an account.
type PublicUser struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	University      string `json:"university,omitempty"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Profile is the editable extension of a user.
type Profile struct {
	ID                  uint      `json:"id"`
	UserID              uint      `json:"user_id"`
	Bio                 string    `json:"bio"`
	Skills              []string  `json:"skills"`
	Interests           []string  `json:"interests"`
	University          string    `json:"university"`
	ProfileImageURL     string    `json:"profile_image_url"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ProfileView pairs a profile with its owner's public identity.
type ProfileView struct {
	User    PublicUser `json:"user"`
	Profile *Profile   `json:"profile"`
}

// ProfilePatch updates only the non-nil fields.
type ProfilePatch struct {
	Bio             *string   `json:"bio,omitempty"`
	Skills          *[]string `json:"skills,omitempty"`
	Interests       *[]string `json:"interests,omitempty"`
	University      *string   `json:"university,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
}

// Project is a project idea posting.
type Project struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	PreviewDescription string    `json:"preview_description"`
	FullDescription    string    `json:"full_description"`
	Tags               []string  `json:"tags"`
	Difficulty         string    `json:"difficulty"`
	ExternalLink       *string   `json:"external_link,omitempty"`
	UserID             uint      `json:"user_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProjectInput creates a project.
type ProjectInput struct {
	Title              string   `json:"title"`
	PreviewDescription string   `json:"preview_description,omitempty"`
	FullDescription    string   `json:"full_description,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Difficulty         string   `json:"difficulty,omitempty"`
	ExternalLink       *string  `json:"external_link,omitempty"`
}

// ProjectPatch updates only the non-nil fields.
type ProjectPatch struct {
	Title              *string   `json:"title,omitempty"`
	PreviewDescription *string   `json:"preview_description,omitempty"`
	FullDescription    *string   `json:"full_description,omitempty"`
	Tags               *[]string `json:"tags,omitempty"`
	Difficulty         *string   `json:"difficulty,omitempty"`
	ExternalLink       *string   `json:"external_link,omitempty"`
}

// Collaboration post statuses.
const (
	CollabActive    = "active"
	CollabFilled    = "filled"
	CollabCompleted = "completed"
	CollabCancelled = "cancelled"
)

// CollabPost solicits collaborators.
type CollabPost struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	NeededSkills    []string  `json:"needed_skills"`
	TimeCommitment  string    `json:"time_commitment"`
	TargetTeamSize  int       `json:"target_team_size"`
	CurrentTeamSize int       `json:"current_team_size"`
	Status          string    `json:"status"`
	UserID          uint      `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CollabInput creates a collaboration post.
type CollabInput struct {
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	NeededSkills    []string `json:"needed_skills,omitempty"`
	TimeCommitment  string   `json:"time_commitment,omitempty"`
	TargetTeamSize  int      `json:"target_team_size,omitempty"`
	CurrentTeamSize int      `json:"current_team_size,omitempty"`
	Status          string   `json:"status,omitempty"`
}

// CollabPatch updates only the non-nil fields.
type CollabPatch struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	NeededSkills    *[]string `json:"needed_skills,omitempty"`
	TimeCommitment  *string   `json:"time_commitment,omitempty"`
	TargetTeamSize  *int      `json:"target_team_size,omitempty"`
	CurrentTeamSize *int      `json:"current_team_size,omitempty"`
	Status          *string   `json:"status,omitempty"`
}

// List is one page of a filtered listing.
type List[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Message types.
const (
	MessageText  = "text"
	MessageImage = "image"
	MessageFile  = "file"
)

// Message is a direct message with both participants attached.
type Message struct {
	ID             uint       `json:"id"`
	ConversationID uint       `json:"conversation_id"`
	Sender         PublicUser `json:"sender"`
	Receiver       PublicUser `json:"receiver"`
	Content        string     `json:"content"`
	MessageType    string     `json:"message_type"`
	IsRead         bool       `json:"is_read"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SendRequest is the body of SendMessage. MessageType defaults to text.
type SendRequest struct {
	ReceiverID  uint   `json:"receiver_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type,omitempty"`
}

// Send failure tags reported by the server.
const (
	FailureReceiverNotFound    = "ReceiverNotFound"
	FailureSelfMessageRejected = "SelfMessageRejected"
)

// SendResult is the outcome of SendMessage. Exactly one of Message or
// Failure is set.
type SendResult struct {
	Success bool     `json:"success"`
	Message *Message `json:"message,omitempty"`
	Failure string   `json:"failure,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// ConversationSummary is one row of the inbox.
type ConversationSummary struct {
	ConversationID uint       `json:"conversation_id"`
	OtherUser      PublicUser `json:"other_user"`
	LastMessage    string     `json:"last_message"`
	LastMessageAt  *time.Time `json:"last_message_at"`
	UnreadCount    int64      `json:"unread_count"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// MessagePage is one zero-based page of a conversation, oldest first.
type MessagePage struct {
	Messages []Message `json:"messages"`
	Page     int       `json:"page"`
	Size     int       `json:"size"`
	HasMore  bool      `json:"has_more"`
}

// UploadResult describes a stored file.
type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Realtime event types.
const (
	EventNewMessage      = "new_message"
	EventMessagesRead    = "messages_read"
	EventMessagesDropped = "messages_dropped"
)

// Event is one realtime notification. Payload is decoded with the helpers
// matching Type.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message decodes the payload of a new_message event.
func (e Event) Message() (*Message, error) {
	var m Message
	if err := json.Unmarshal(e.Payload, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MessagesRead is the payload of a messages_read event.
type MessagesRead struct {
	ReaderID uint  `json:"reader_id"`
	Count    int64 `json:"count"`
}

// MessagesRead decodes the payload of a messages_read event.
func (e Event) MessagesRead() (*MessagesRead, error) {
	var r MessagesRead
	if err := json.Unmarshal(e.Payload, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
