package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "token:blacklist:"

// TokenBlacklist stores revoked access tokens until they would have expired
// anyway. Implemented by RedisTokenBlacklist in production and by in-memory
// fakes in tests.
type TokenBlacklist interface {
	// Revoke marks a token as revoked for the given TTL.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	// IsRevoked reports whether a token has been revoked.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist backed by Redis
type RedisTokenBlacklist struct {
	client *Client
}

// NewRedisTokenBlacklist creates a Redis-backed token blacklist
func NewRedisTokenBlacklist(client *Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Revoke marks a token as revoked; the entry expires with the token itself
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to store
		return nil
	}
	return b.client.Client().Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err()
}

// IsRevoked reports whether a token has been revoked
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := b.client.Client().Get(ctx, blacklistKeyPrefix+token).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
