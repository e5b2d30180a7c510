package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit gates repeated event submissions from one player.
// Returns true when the submission is allowed. Nil client means no limit.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, externalID string, limit time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:player:%s:event", externalID)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func ClearRateLimit(ctx context.Context, rdb *redis.Client, externalID string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:player:%s:event", externalID)
	_, err := rdb.Del(ctx, key).Result()
	return err
}
