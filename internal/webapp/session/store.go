// Package session owns the webapp's persisted client state: one session
// record per browsing session, plus the short-lived redirect-guard flags.
package session

import (
	"context"
	"time"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// DefaultTTL is how long an authenticated session lives without renewal.
const DefaultTTL = 24 * time.Hour

// Store persists the authenticated-user record. Implementations must treat
// an unparsable stored value as corruption: delete it and report absence.
// A store that is entirely unreachable also reads as absence; callers never
// see a storage failure.
type Store interface {
	// Get returns the record for sid, or nil when absent.
	Get(ctx context.Context, sid string) *domain.SessionRecord
	Set(ctx context.Context, sid string, record domain.SessionRecord, ttl time.Duration) error
	Clear(ctx context.Context, sid string) error
}

// FlagStore provides one-shot flags with a fixed lifetime, keyed by
// browsing-session scope and target page. TrySet returns true only for the
// single caller that set the flag; everyone else within the TTL loses.
type FlagStore interface {
	TrySet(ctx context.Context, scope, page string, ttl time.Duration) (bool, error)
}
