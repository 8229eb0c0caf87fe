package journey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long an abandoned wizard survives.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned when no journey exists for the key.
var ErrNotFound = errors.New("journey not found")

// Store persists wizard state per user.
type Store interface {
	Get(ctx context.Context, userID string) (*Journey, error)
	Put(ctx context.Context, userID string, j *Journey) error
	Clear(ctx context.Context, userID string) error
}

const redisKeyFormat = "journey:%s"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore backs the journey on redis so wizard state survives
// restarts and is shared across replicas.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, userID string) (*Journey, error) {
	raw, err := s.client.Get(ctx, fmt.Sprintf(redisKeyFormat, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var j Journey
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *redisStore) Put(ctx context.Context, userID string, j *Journey) error {
	j.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, fmt.Sprintf(redisKeyFormat, userID), raw, s.ttl).Err()
}

func (s *redisStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, fmt.Sprintf(redisKeyFormat, userID)).Err()
}

type memoryEntry struct {
	journey   Journey
	expiresAt time.Time
}

type memoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]memoryEntry
}

// NewMemoryStore keeps journeys in process memory. Used in tests and in
// deployments without redis.
func NewMemoryStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &memoryStore{ttl: ttl, m: make(map[string]memoryEntry)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (*Journey, error) {
	_ = ctx
	s.mu.RLock()
	entry, ok := s.m[userID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	j := entry.journey
	return &j, nil
}

func (s *memoryStore) Put(ctx context.Context, userID string, j *Journey) error {
	_ = ctx
	j.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	s.m[userID] = memoryEntry{journey: *j, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Clear(ctx context.Context, userID string) error {
	_ = ctx
	s.mu.Lock()
	delete(s.m, userID)
	s.mu.Unlock()
	return nil
}
