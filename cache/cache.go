package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss reports that no entry exists for the key.
var ErrMiss = errors.New("cache: miss")

// Store is a general keyed cache. A zero ttl means the entry does not
// expire.
type Store[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Set(ctx context.Context, key string, value *T, ttl ...time.Duration) error
	Delete(ctx context.Context, key string) error
}

type memoryEntry[T any] struct {
	value   *T
	expires time.Time
}

// Memory is the default in-process Store.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
}

// NewMemory creates an in-process store.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{entries: make(map[string]memoryEntry[T])}
}

// Get retrieves a single entry.
func (m *Memory[T]) Get(_ context.Context, key string) (*T, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || (!e.expires.IsZero() && time.Now().After(e.expires)) {
		return nil, ErrMiss
	}
	return e.value, nil
}

// Set stores a single entry.
func (m *Memory[T]) Set(_ context.Context, key string, value *T, ttl ...time.Duration) error {
	e := memoryEntry[T]{value: value}
	if len(ttl) > 0 && ttl[0] > 0 {
		e.expires = time.Now().Add(ttl[0])
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Delete removes an entry.
func (m *Memory[T]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Redis is a Store backed by a shared redis instance, for callers that
// want cached state to survive the process or be shared across processes.
type Redis[T any] struct {
	rc     *redis.Client
	prefix string
}

// NewRedis creates a redis-backed store. The prefix namespaces all keys.
func NewRedis[T any](rc *redis.Client, prefix string) *Redis[T] {
	return &Redis[T]{rc: rc, prefix: prefix}
}

func (r *Redis[T]) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// Get retrieves and decodes a single entry.
func (r *Redis[T]) Get(ctx context.Context, key string) (*T, error) {
	raw, err := r.rc.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}
	return &value, nil
}

// Set encodes and stores a single entry.
func (r *Redis[T]) Set(ctx context.Context, key string, value *T, ttl ...time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var expire time.Duration
	if len(ttl) > 0 {
		expire = ttl[0]
	}
	return r.rc.Set(ctx, r.key(key), raw, expire).Err()
}

// Delete removes an entry.
func (r *Redis[T]) Delete(ctx context.Context, key string) error {
	return r.rc.Del(ctx, r.key(key)).Err()
}
