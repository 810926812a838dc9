package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const accessTTL = 15 * time.Minute

// AccessCache caches positive entitlement checks in Redis.
// Key format: access:<user_id>:<product_id>
//
// Only positive results are cached: entitlements are never revoked, so a
// cached grant can only go stale by expiring, never by being wrong. Absence
// of a key means nothing; callers must fall back to the ledger.
type AccessCache struct {
	client *redis.Client
}

// NewAccessCache creates an AccessCache wrapping the given Redis client.
func NewAccessCache(client *redis.Client) *AccessCache {
	return &AccessCache{client: client}
}

// Get reports (entitled, cached): cached is false on a miss.
func (c *AccessCache) Get(ctx context.Context, userID, productID string) (bool, bool, error) {
	err := c.client.Get(ctx, c.key(userID, productID)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("access cache get: %w", err)
	}
	return true, true, nil
}

// Set records that the user is entitled to the product (expires after
// accessTTL).
func (c *AccessCache) Set(ctx context.Context, userID, productID string) error {
	return c.client.Set(ctx, c.key(userID, productID), "1", accessTTL).Err()
}

func (c *AccessCache) key(userID, productID string) string {
	return fmt.Sprintf("access:%s:%s", userID, productID)
}
