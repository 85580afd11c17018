// internal/quoting/tokens/cache.go

// Package tokens caches carrier bearer tokens between quoting runs so
// adapters do not spend carrier auth quota on every application.
package tokens

import (
	"context"
	"time"

	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/quoting/transport"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "carrier-token:"

// expiryMargin keeps us from handing out a token that expires mid-call.
const expiryMargin = 30 * time.Second

// Source fetches a fresh token from the carrier when the cache misses.
type Source func(ctx context.Context) (transport.TokenResponse, error)

type Cache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewCache(rdb *redis.Client, log logger.Logger) *Cache {
	return &Cache{rdb: rdb, logger: log}
}

// Token returns a valid bearer token for the carrier, fetching through
// source on a cache miss. Cache unavailability degrades to a direct fetch;
// a failed fetch is returned as-is with no retry.
func (c *Cache) Token(ctx context.Context, carrierID string, source Source) (string, error) {
	key := keyPrefix + carrierID

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		c.logger.Warn("token cache read failed, fetching directly", map[string]interface{}{
			"carrier": carrierID,
			"error":   err.Error(),
		})
	}

	token, err := source(ctx)
	if err != nil {
		return "", err
	}

	ttl := time.Duration(token.ExpiresIn)*time.Second - expiryMargin
	if ttl > 0 {
		if err := c.rdb.Set(ctx, key, token.AccessToken, ttl).Err(); err != nil {
			c.logger.Warn("token cache write failed", map[string]interface{}{
				"carrier": carrierID,
				"error":   err.Error(),
			})
		}
	}

	return token.AccessToken, nil
}

// Invalidate drops the cached token, forcing the next call to re-auth.
func (c *Cache) Invalidate(ctx context.Context, carrierID string) {
	if err := c.rdb.Del(ctx, keyPrefix+carrierID).Err(); err != nil {
		c.logger.Warn("token cache invalidate failed", map[string]interface{}{
			"carrier": carrierID,
			"error":   err.Error(),
		})
	}
}
