package domain

import "time"

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
)

// Message requires an accepted connection between sender and receiver.
// ReadAt is set once, by the receiver, when viewing the thread.
type Message struct {
	ID          int         `json:"id" db:"id"`
	SenderID    int         `json:"sender_id" db:"sender_id"`
	ReceiverID  int         `json:"receiver_id" db:"receiver_id"`
	Content     string      `json:"content" db:"content"`
	MessageType MessageType `json:"message_type" db:"message_type"`
	ReadAt      *time.Time  `json:"read_at" db:"read_at"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}
