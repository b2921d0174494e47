package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Last-seen entries outlive restarts but not forever; a month is plenty for a
// contacts list.
const lastSeenTTL = 30 * 24 * time.Hour

// LastSeenStore records when a user was last seen on the realtime channel.
// Key format: lastseen:<user_id>
type LastSeenStore struct {
	client *redis.Client
}

// NewLastSeenStore creates a LastSeenStore wrapping the given Redis client.
func NewLastSeenStore(client *redis.Client) *LastSeenStore {
	return &LastSeenStore{client: client}
}

// Touch stamps the user with the current time.
func (s *LastSeenStore) Touch(ctx context.Context, userID string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.client.Set(ctx, s.key(userID), now, lastSeenTTL).Err(); err != nil {
		return fmt.Errorf("last-seen touch: %w", err)
	}
	return nil
}

// Fetch returns the recorded timestamps for the given users. Users without an
// entry are simply absent from the result.
func (s *LastSeenStore) Fetch(ctx context.Context, userIDs []string) (map[string]time.Time, error) {
	if len(userIDs) == 0 {
		return map[string]time.Time{}, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = s.key(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("last-seen fetch: %w", err)
	}

	result := make(map[string]time.Time, len(userIDs))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		result[userIDs[i]] = ts
	}
	return result, nil
}

func (s *LastSeenStore) key(userID string) string {
	return fmt.Sprintf("lastseen:%s", userID)
}
