package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/reflective-room/pkg/config"
)

const (
	// SessionNamespace prefixes every visitor session key.
	SessionNamespace = "room:session:"

	pingTimeout = 5 * time.Second
)

// NewRedis returns a Redis client that answered a ping within ctx and the
// dial timeout.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Ping checks the connection, bounded by ctx and pingTimeout.
func Ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// SessionKey namespaces a visitor session id.
func SessionKey(id string) string {
	return SessionNamespace + id
}

// SessionExpiry maps a session ttl onto a Redis expiration. Non-positive
// ttls mean no expiry; go-redis would read a negative value as KEEPTTL.
func SessionExpiry(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}
