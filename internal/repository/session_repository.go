package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/reflective-room/internal/models"
	"github.com/noah-isme/reflective-room/pkg/cache"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

// RedisSessionRepository persists visitor sessions in Redis.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository constructs a Redis-backed session repository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// Get loads the session, returning appErrors.ErrCacheMiss when absent.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.SessionContext, error) {
	raw, err := r.client.Get(ctx, cache.SessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}
	var sess models.SessionContext
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &sess, nil
}

// Set stores the session with ttl; a non-positive ttl never expires.
func (r *RedisSessionRepository) Set(ctx context.Context, sess models.SessionContext, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.ID, err)
	}
	if err := r.client.Set(ctx, cache.SessionKey(sess.ID), payload, cache.SessionExpiry(ttl)).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", sess.ID, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return cache.Ping(ctx, r.client)
}

// Close releases the underlying Redis connection.
func (r *RedisSessionRepository) Close() error {
	return r.client.Close()
}

// MemorySessionRepository keeps sessions in process memory.
type MemorySessionRepository struct {
	mu      sync.Mutex
	entries map[string]memorySession
	now     func() time.Time
}

type memorySession struct {
	value     models.SessionContext
	expiresAt time.Time
}

// NewMemorySessionRepository constructs an in-memory session repository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{entries: make(map[string]memorySession), now: time.Now}
}

func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*models.SessionContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		delete(r.entries, id)
		return nil, appErrors.ErrCacheMiss
	}
	sess := entry.value
	return &sess, nil
}

func (r *MemorySessionRepository) Set(ctx context.Context, sess models.SessionContext, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry := memorySession{value: sess}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.entries[sess.ID] = entry
	return nil
}
