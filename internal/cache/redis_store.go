package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"ai-study-assistant/internal/model"
)

// RedisHistoryStore keeps session history in Redis under a per-session key
// with the session TTL, for deployments running more than one instance.
type RedisHistoryStore struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRedisHistoryStore(client *redisv9.Client, ttl time.Duration) *RedisHistoryStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisHistoryStore{client: client, ttl: ttl}
}

func (s *RedisHistoryStore) key(sessionID string) string {
	return "history:" + sessionID
}

func (s *RedisHistoryStore) Append(ctx context.Context, sessionID string, entry model.HistoryEntry) error {
	entries, err := s.List(ctx, sessionID)
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal history failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set history failed: %w", err)
	}
	return nil
}

func (s *RedisHistoryStore) List(ctx context.Context, sessionID string) ([]model.HistoryEntry, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get history failed: %w", err)
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("unmarshal history failed: %w", err)
	}
	return entries, nil
}

func (s *RedisHistoryStore) Get(ctx context.Context, sessionID, entryID string) (*model.HistoryEntry, error) {
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

func (s *RedisHistoryStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete history failed: %w", err)
	}
	return nil
}

func (s *RedisHistoryStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
