package ports

import (
	"context"
	"time"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

// ImageUploader stores an image on the hosting provider and returns its URL.
type ImageUploader interface {
	Upload(ctx context.Context, data string) (string, error)
}

// WelcomeMailer sends the post-signup welcome email.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, email, name string) error
}

// WelcomeNotifier enqueues a welcome email for asynchronous delivery.
// Signup success never depends on it.
type WelcomeNotifier interface {
	Enqueue(email, name string)
}

// LastSeenStore records when a user was last seen on the realtime channel.
type LastSeenStore interface {
	Touch(ctx context.Context, userID string) error
	Fetch(ctx context.Context, userIDs []string) (map[string]time.Time, error)
}

// MessageDeliverer pushes a freshly persisted message to the receiver's live
// connection when one exists. Delivery is best-effort, at most once, and
// never reports failure to the caller.
type MessageDeliverer interface {
	DeliverMessage(msg *domain.Message)
}
