package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryStore is the in-process Store used when Redis is not configured,
// and in tests. Values are held as raw JSON so the corruption-healing path
// is identical to the Redis store's.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sid string) *domain.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sid]
	if !ok {
		return nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, sid)
		return nil
	}

	var record domain.SessionRecord
	if err := json.Unmarshal(entry.raw, &record); err != nil {
		// Corrupted value: self-heal by discarding it.
		delete(s.entries, sid)
		return nil
	}
	return &record
}

func (s *MemoryStore) Set(_ context.Context, sid string, record domain.SessionRecord, ttl time.Duration) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{raw: raw}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[sid] = entry
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sid)
	return nil
}

// SetRaw stores an arbitrary payload under sid, bypassing marshalling.
// Used by tests to simulate corruption.
func (s *MemoryStore) SetRaw(sid string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sid] = memoryEntry{raw: raw}
}

// has reports whether any value, valid or not, is stored under sid.
func (s *MemoryStore) has(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[sid]
	return ok
}

// MemoryFlags is the in-process FlagStore counterpart to MemoryStore.
type MemoryFlags struct {
	mu    sync.Mutex
	flags map[string]time.Time
	now   func() time.Time
}

func NewMemoryFlags() *MemoryFlags {
	return &MemoryFlags{
		flags: make(map[string]time.Time),
		now:   time.Now,
	}
}

// SetClock replaces the time source. For tests.
func (f *MemoryFlags) SetClock(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

func (f *MemoryFlags) TrySet(_ context.Context, scope, page string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := scope + ":" + page
	if expiry, ok := f.flags[key]; ok && f.now().Before(expiry) {
		return false, nil
	}
	f.flags[key] = f.now().Add(ttl)
	return true, nil
}
