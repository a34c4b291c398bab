package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ai-study-assistant/internal/model"
)

// MemoryHistoryStore keeps session history in process memory with a TTL per
// session, so it is cleared when the session expires and lost on restart.
type MemoryHistoryStore struct {
	mu    sync.Mutex
	store *gocache.Cache
	ttl   time.Duration
}

func NewMemoryHistoryStore(ttl time.Duration) *MemoryHistoryStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &MemoryHistoryStore{
		store: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (s *MemoryHistoryStore) Append(_ context.Context, sessionID string, entry model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []model.HistoryEntry
	if raw, ok := s.store.Get(sessionID); ok {
		entries = raw.([]model.HistoryEntry)
	}
	entries = append(entries, entry)
	// Appending refreshes the session's TTL.
	s.store.Set(sessionID, entries, s.ttl)
	return nil
}

func (s *MemoryHistoryStore) List(_ context.Context, sessionID string) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.store.Get(sessionID)
	if !ok {
		return nil, nil
	}
	entries := raw.([]model.HistoryEntry)
	out := make([]model.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *MemoryHistoryStore) Get(ctx context.Context, sessionID, entryID string) (*model.HistoryEntry, error) {
	entries, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == entryID {
			return &entries[i], nil
		}
	}
	return nil, ErrEntryNotFound
}

func (s *MemoryHistoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Delete(sessionID)
	return nil
}

func (s *MemoryHistoryStore) Ping(context.Context) error {
	return nil
}
