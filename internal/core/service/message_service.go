package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
	"github.com/AYUSHMAAN1812/chatify/internal/core/ports"
)

// MessageService implements message creation, history, and contact listings.
type MessageService struct {
	users     ports.UserRepository
	messages  ports.MessageRepository
	uploader  ports.ImageUploader
	deliverer ports.MessageDeliverer
	lastSeen  ports.LastSeenStore
	log       zerolog.Logger
}

func NewMessageService(
	users ports.UserRepository,
	messages ports.MessageRepository,
	uploader ports.ImageUploader,
	deliverer ports.MessageDeliverer,
	lastSeen ports.LastSeenStore,
	log zerolog.Logger,
) *MessageService {
	return &MessageService{
		users:     users,
		messages:  messages,
		uploader:  uploader,
		deliverer: deliverer,
		lastSeen:  lastSeen,
		log:       log,
	}
}

// SendMessage persists a new message, then hands it to the realtime deliverer.
// Persistence and push are decoupled: once the message is stored the call
// succeeds no matter what happens on the realtime side.
func (s *MessageService) SendMessage(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && in.Image == "" {
		return nil, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > domain.MaxMessageTextLen {
		return nil, domain.ErrMessageTooLong
	}
	if in.SenderID == in.ReceiverID {
		return nil, domain.ErrSelfMessage
	}

	exists, err := s.users.Exists(ctx, in.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if !exists {
		return nil, domain.ErrReceiverNotFound
	}

	var imageURL string
	if in.Image != "" {
		imageURL, err = s.uploader.Upload(ctx, in.Image)
		if err != nil {
			return nil, fmt.Errorf("send message: upload image: %w", err)
		}
	}

	now := time.Now().UTC()
	msg := &domain.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Text:       text,
		Image:      imageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.messages.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if s.deliverer != nil {
		s.deliverer.DeliverMessage(created)
	}

	return created, nil
}

func (s *MessageService) Conversation(ctx context.Context, userID, partnerID string) ([]domain.Message, error) {
	return s.messages.FindConversation(ctx, userID, partnerID)
}

// Contacts lists every other registered user, enriched with last-seen
// timestamps when the store has them.
func (s *MessageService) Contacts(ctx context.Context, userID string) ([]ports.Contact, error) {
	users, err := s.users.FindAllExcept(ctx, userID)
	if err != nil {
		return nil, err
	}

	var seen map[string]time.Time
	if s.lastSeen != nil {
		ids := make([]string, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		seen, err = s.lastSeen.Fetch(ctx, ids)
		if err != nil {
			s.log.Warn().Err(err).Msg("last-seen lookup failed, returning contacts without it")
			seen = nil
		}
	}

	contacts := make([]ports.Contact, 0, len(users))
	for _, u := range users {
		contact := ports.Contact{User: u}
		if ts, ok := seen[u.ID]; ok {
			t := ts
			contact.LastSeenAt = &t
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

func (s *MessageService) ChatPartners(ctx context.Context, userID string) ([]domain.User, error) {
	ids, err := s.messages.FindPartnerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	return s.users.FindByIDs(ctx, ids)
}
