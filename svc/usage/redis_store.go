package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisKeyTTL keeps counter keys around for two full periods so that a
// just-rolled-over month remains readable for reporting, then lets Redis
// reclaim them.
const redisKeyTTL = 62 * 24 * time.Hour

// redisStore implements Store using INCRBY, Redis's native atomic
// insert-or-increment.
type redisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore returns a Redis-backed usage store. The prefix namespaces
// keys when the instance is shared; pass "" for the default "usage".
func NewRedisStore(client redis.UniversalClient, prefix string) Store {
	if prefix == "" {
		prefix = "usage"
	}
	return &redisStore{client: client, prefix: prefix}
}

func (s *redisStore) key(userID uuid.UUID, usageType Type, period string) string {
	return fmt.Sprintf("%s:%s:%s:%s", s.prefix, userID, usageType, period)
}

func (s *redisStore) Count(ctx context.Context, userID uuid.UUID, usageType Type, period string) (int64, error) {
	count, err := s.client.Get(ctx, s.key(userID, usageType, period)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

func (s *redisStore) Increment(ctx context.Context, userID uuid.UUID, usageType Type, period string, amount int64) error {
	key := s.key(userID, usageType, period)

	pipe := s.client.TxPipeline()
	pipe.IncrBy(ctx, key, amount)
	pipe.Expire(ctx, key, redisKeyTTL)
	_, err := pipe.Exec(ctx)
	return err
}
