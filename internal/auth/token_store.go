package auth

import (
	"context"
	"time"

	"portfolio-api/internal/cache"
)

const blacklistKeyPrefix = "blacklist:token:"

// TokenStore defines the interface for revoked-token storage.
type TokenStore interface {
	Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, tokenID string) bool
}

// RedisTokenStore keeps revoked token IDs in Redis until their natural
// expiry.
type RedisTokenStore struct {
	cache *cache.Client
}

// Ensure RedisTokenStore implements TokenStore.
var _ TokenStore = (*RedisTokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *RedisTokenStore {
	return &RedisTokenStore{cache: cache}
}

// Blacklist marks a token ID as revoked until it expires.
func (s *RedisTokenStore) Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl)
}

// IsBlacklisted reports whether the token ID has been revoked.
func (s *RedisTokenStore) IsBlacklisted(ctx context.Context, tokenID string) bool {
	return s.cache.Exists(ctx, blacklistKeyPrefix+tokenID)
}
