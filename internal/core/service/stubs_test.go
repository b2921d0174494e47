package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = "u" + strconv.Itoa(r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindAllExcept(_ context.Context, id string) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if u.ID != id {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *stubUserRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *stubUserRepo) UpdateProfilePic(_ context.Context, id, url string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.ProfilePic = url
	return cloneUser(u), nil
}

type stubMessageRepo struct {
	messages []domain.Message
	nextID   int
	failNext error
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, err
	}
	copy := *msg
	r.nextID++
	copy.ID = "m" + strconv.Itoa(r.nextID)
	r.messages = append(r.messages, copy)
	return &copy, nil
}

func (r *stubMessageRepo) FindConversation(_ context.Context, userID, partnerID string) ([]domain.Message, error) {
	out := make([]domain.Message, 0)
	for _, m := range r.messages {
		if (m.SenderID == userID && m.ReceiverID == partnerID) ||
			(m.SenderID == partnerID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) FindPartnerIDs(_ context.Context, userID string) ([]string, error) {
	set := make(map[string]struct{})
	for _, m := range r.messages {
		if m.SenderID == userID {
			set[m.ReceiverID] = struct{}{}
		}
		if m.ReceiverID == userID {
			set[m.SenderID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type stubUploader struct {
	uploads int
	fail    bool
}

func (u *stubUploader) Upload(_ context.Context, data string) (string, error) {
	if u.fail {
		return "", errors.New("upload failed")
	}
	u.uploads++
	return "https://img.example.com/" + strconv.Itoa(u.uploads), nil
}

type stubNotifier struct {
	emails []string
}

func (n *stubNotifier) Enqueue(email, _ string) {
	n.emails = append(n.emails, email)
}

type stubDeliverer struct {
	delivered []*domain.Message
}

func (d *stubDeliverer) DeliverMessage(msg *domain.Message) {
	d.delivered = append(d.delivered, msg)
}

type stubLastSeen struct {
	seen map[string]time.Time
	err  error
}

func (s *stubLastSeen) Touch(_ context.Context, userID string) error {
	if s.seen == nil {
		s.seen = make(map[string]time.Time)
	}
	s.seen[userID] = time.Now()
	return nil
}

func (s *stubLastSeen) Fetch(_ context.Context, userIDs []string) (map[string]time.Time, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]time.Time)
	for _, id := range userIDs {
		if ts, ok := s.seen[id]; ok {
			out[id] = ts
		}
	}
	return out, nil
}
