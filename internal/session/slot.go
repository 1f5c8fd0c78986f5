// internal/session/slot.go
// Local single-slot persistence: one fixed key holding the most
// recent session record, superseded on every save

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotStore holds at most one session record per client. Reading an
// expired slot behaves like an empty slot.
type SlotStore interface {
	Save(ctx context.Context, record *SessionRecord) error
	Load(ctx context.Context) (*SessionRecord, error)
	Clear(ctx context.Context) error
}

const slotKeyPrefix = "soulmatch:session:"

// RedisSlot keeps the slot in redis under a fixed per-client key with
// a TTL matching the session expiry window.
type RedisSlot struct {
	client *redis.Client
	key    string
}

func NewRedisSlot(client *redis.Client, clientID string) *RedisSlot {
	return &RedisSlot{
		client: client,
		key:    slotKeyPrefix + clientID,
	}
}

func (s *RedisSlot) Save(ctx context.Context, record *SessionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize session slot: %w", err)
	}
	return s.client.Set(ctx, s.key, payload, SessionTTL).Err()
}

func (s *RedisSlot) Load(ctx context.Context) (*SessionRecord, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var record SessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, ErrNotFound
	}
	// Redis TTL already bounds the slot's lifetime, but the record's
	// own clock is authoritative.
	if record.Expired(time.Now()) {
		s.client.Del(ctx, s.key)
		return nil, ErrNotFound
	}
	return &record, nil
}

func (s *RedisSlot) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// MemorySlot is an in-process SlotStore used when redis is not
// configured, and by tests.
type MemorySlot struct {
	mu     sync.Mutex
	record *SessionRecord
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Save(ctx context.Context, record *SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *record
	s.record = &clone
	return nil
}

func (s *MemorySlot) Load(ctx context.Context) (*SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil || s.record.Expired(time.Now()) {
		s.record = nil
		return nil, ErrNotFound
	}
	clone := *s.record
	return &clone, nil
}

func (s *MemorySlot) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}
