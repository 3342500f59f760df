package models

import "time"

// ChatMessage is one staff message on the messaging server's WebSocket
// channel. Messages are transient: they are displayed, not stored in the
// local database, so they carry no SyncMeta.
type ChatMessage struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id,omitempty"`
	Body        string    `json:"body"`
	SentAt      time.Time `json:"sent_at"`
}
