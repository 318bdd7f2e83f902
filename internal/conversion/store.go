package conversion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the last fired dedupe key of each session.
type SessionStore interface {
	// Swap stores key as the session's last fired key and returns the previous
	// value ("" when none) in one atomic step.
	Swap(ctx context.Context, sessionID, key string) (string, error)
}

type memoryEntry struct {
	key       string
	expiresAt time.Time
}

// MemoryStore mirrors RedisStore for single-instance deployments: each session
// entry expires ttl after its last swap. A non-positive ttl keeps entries
// forever.
type MemoryStore struct {
	mu   sync.Mutex
	last map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		last: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *MemoryStore) Swap(_ context.Context, sessionID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var previous string
	if e, ok := s.last[sessionID]; ok && !s.expired(e, now) {
		previous = e.key
	}

	entry := memoryEntry{key: key}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}
	s.last[sessionID] = entry
	return previous, nil
}

// Cleanup remove sessões expiradas até done fechar.
func (s *MemoryStore) Cleanup(done <-chan struct{}, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.last {
		if s.expired(e, now) {
			delete(s.last, id)
		}
	}
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.last)
}

func (s *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: "conversion:last:",
		ttl:       ttl,
	}
}

// Swap uses SET ... GET EX, so two tabs racing on the same session still see
// exactly one of them as the first writer.
func (s *RedisStore) Swap(ctx context.Context, sessionID, key string) (string, error) {
	previous, err := s.client.SetArgs(ctx, s.keyPrefix+sessionID, key, redis.SetArgs{
		Get: true,
		TTL: s.ttl,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to swap conversion key: %w", err)
	}
	return previous, nil
}
