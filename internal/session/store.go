// internal/session/store.go
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"portfolio-backend/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

// Store records issued session tokens until they expire or are deleted.
type Store interface {
	Create(ctx context.Context, token, email string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

const redisKeyPrefix = "session:"

// RedisStore keeps tokens as session:<token> keys holding the user's email.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, token, email string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKeyPrefix+token, email, ttl).Err()
}

func (s *RedisStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	err := s.client.Del(ctx, redisKeyPrefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// MemoryStore is the in-process fallback used when Redis is not configured.
// Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	email     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, token, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.sessions[token] = memoryEntry{email: email, expiresAt: s.now().Add(ttl)}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, token)
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

// sweepLocked drops expired entries. Caller holds mu.
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for token, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, token)
		}
	}
}
