package redis

import (
	"context"
	"fmt"
	"time"
)

// Refresh-token blacklist and login rate limiting. Both are best-effort
// from the caller's point of view: logout swallows blacklist failures,
// but login treats a failed rate-limit check as not limited rather than
// locking everyone out when Redis is down.

// BlacklistRefreshToken marks a refresh token id as revoked until its
// natural expiry.
func BlacklistRefreshToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	client := RedisClient()
	defer client.Close()

	key := fmt.Sprintf("blacklist:refresh:%s", tokenID)
	return client.Set(ctx, key, "1", ttl).Err()
}

func IsRefreshTokenBlacklisted(ctx context.Context, tokenID string) bool {
	client := RedisClient()
	defer client.Close()

	key := fmt.Sprintf("blacklist:refresh:%s", tokenID)
	exists, err := client.Exists(ctx, key).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// LoginAttemptExceeded counts login attempts per client IP in a rolling
// one-minute window and reports whether the limit is exceeded.
func LoginAttemptExceeded(ctx context.Context, ip string, limit int) bool {
	client := RedisClient()
	defer client.Close()

	key := fmt.Sprintf("ratelimit:login:%s", ip)
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return false
	}
	if count == 1 {
		client.Expire(ctx, key, time.Minute)
	}
	return count > int64(limit)
}
