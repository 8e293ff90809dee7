package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FlagStore provides short-lived one-shot flags backed by Redis.
// Key format: redirect:<session_id>:<page>
type FlagStore struct {
	client *redis.Client
}

// NewFlagStore creates a FlagStore wrapping the given Redis client.
func NewFlagStore(client *redis.Client) *FlagStore {
	return &FlagStore{client: client}
}

// TrySet atomically sets the flag for the given scope and page, returning
// true when this call won (the flag was not already set). The flag expires
// after ttl regardless of what the caller does next.
func (f *FlagStore) TrySet(ctx context.Context, scope, page string, ttl time.Duration) (bool, error) {
	ok, err := f.client.SetNX(ctx, f.key(scope, page), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("flag setnx: %w", err)
	}
	return ok, nil
}

func (f *FlagStore) key(scope, page string) string {
	return fmt.Sprintf("redirect:%s:%s", scope, page)
}
