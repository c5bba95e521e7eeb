package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisService struct {
	client *redis.Client
}

// NewRedisService creates a cooldown tracker backed by redis. SET NX
// with a TTL gives the atomic check-and-set, and redis expires entries
// on its own so no pruning is needed.
func NewRedisService(client *redis.Client) Service {
	return &redisService{client: client}
}

func (s *redisService) TryAcquire(ctx context.Context, accountID, communityID, command string, duration time.Duration) (bool, time.Duration, error) {
	k := key(accountID, communityID, command)
	acquired, err := s.client.SetNX(ctx, k, 1, duration).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to acquire cooldown: %w", err)
	}
	if acquired {
		return true, 0, nil
	}

	remaining, err := s.Remaining(ctx, accountID, communityID, command)
	if err != nil {
		return false, 0, err
	}
	return false, remaining, nil
}

func (s *redisService) Remaining(ctx context.Context, accountID, communityID, command string) (time.Duration, error) {
	ttl, err := s.client.PTTL(ctx, key(accountID, communityID, command)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cooldown ttl: %w", err)
	}
	// PTTL reports negative values for missing keys and keys without
	// expiry; both mean not throttled here.
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (s *redisService) Reset(ctx context.Context, accountID, communityID, command string) error {
	if err := s.client.Del(ctx, key(accountID, communityID, command)).Err(); err != nil {
		return fmt.Errorf("failed to reset cooldown: %w", err)
	}
	return nil
}
