package domain

import (
	"errors"
	"time"
)

// MaxMessageTextLen caps the length of a message body after trimming.
const MaxMessageTextLen = 2000

var ErrEmptyMessage = errors.New("text or image is required")
var ErrMessageTooLong = errors.New("message text too long")
var ErrSelfMessage = errors.New("cannot send messages to yourself")
var ErrReceiverNotFound = errors.New("receiver not found")

// Message is a single chat message between two users. Messages are immutable
// once created; there is no edit or delete.
type Message struct {
	ID         string    `json:"_id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
