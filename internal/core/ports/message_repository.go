package ports

import (
	"context"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

// MessageRepository defines persistence for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// FindConversation returns every message exchanged between the two users
	// in insertion order.
	FindConversation(ctx context.Context, userID, partnerID string) ([]domain.Message, error)
	// FindPartnerIDs returns the distinct ids of users the given user has
	// exchanged at least one message with.
	FindPartnerIDs(ctx context.Context, userID string) ([]string, error)
}
