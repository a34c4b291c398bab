// Package cache holds the per-session history of generated notes. History is
// append-only, TTL-bounded, and never shared across sessions.
package cache

import (
	"context"
	"errors"

	"ai-study-assistant/internal/model"
)

var ErrEntryNotFound = errors.New("history entry not found")

// HistoryStore is the session-scoped note history. The default backend is
// in-process, so history dies with the process; the Redis backend exists for
// multi-instance deployments and carries the same TTL semantics.
type HistoryStore interface {
	Append(ctx context.Context, sessionID string, entry model.HistoryEntry) error
	List(ctx context.Context, sessionID string) ([]model.HistoryEntry, error)
	Get(ctx context.Context, sessionID, entryID string) (*model.HistoryEntry, error)
	Clear(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
