package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// SessionStore persists webapp session records in Redis as JSON.
// Key format: session:<session_id>
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Get returns the session record for sid, or nil when absent. An
// unparsable stored value is treated as corruption: the key is deleted and
// absence is returned. Redis being unreachable also reads as absence.
func (s *SessionStore) Get(ctx context.Context, sid string) *domain.SessionRecord {
	raw, err := s.client.Get(ctx, s.key(sid)).Result()
	if err != nil {
		return nil
	}

	var record domain.SessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		_ = s.client.Del(ctx, s.key(sid)).Err()
		return nil
	}
	return &record
}

func (s *SessionStore) Set(ctx context.Context, sid string, record domain.SessionRecord, ttl time.Duration) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sid), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}
