package ports

import (
	"context"
	"time"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

// SendMessageInput carries everything needed to create one message.
type SendMessageInput struct {
	SenderID   string
	ReceiverID string
	Text       string
	// Image is an optional base64-encoded payload handed to the uploader.
	Image string
}

// Contact is a user entry on the contacts list, enriched with the last time
// the user was seen on the realtime channel.
type Contact struct {
	domain.User
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
}

type MessageService interface {
	// SendMessage validates, persists, and best-effort pushes a new message
	// to the receiver's live connection. Push failures never surface here;
	// the returned message is already durably stored.
	SendMessage(ctx context.Context, in SendMessageInput) (*domain.Message, error)
	Conversation(ctx context.Context, userID, partnerID string) ([]domain.Message, error)
	Contacts(ctx context.Context, userID string) ([]Contact, error)
	ChatPartners(ctx context.Context, userID string) ([]domain.User, error)
}
