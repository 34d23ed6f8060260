// Package notifications delivers realtime events over WebSockets and push
// notifications to mobile devices.
package notifications

import (
	"encoding/json"
	"fmt"
)

// Realtime event types sent to clients.
const (
	EventNewMessage   = "new_message"
	EventMessagesRead = "messages_read"
	EventDropped      = "messages_dropped"
)

// Event is the envelope written to WebSocket clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Encode renders the event as JSON.
func (e Event) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	return data, nil
}

// MessagesReadPayload tells a sender that the receiver caught up.
type MessagesReadPayload struct {
	ReaderID uint  `json:"reader_id"`
	Count    int64 `json:"count"`
}
