package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sparkmatch/sparkmatch/internal/config"
)

// likeCountTTL bounds staleness of the liked-you counters. Counters are
// re-derived from the database on a cache miss.
const likeCountTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes the Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// KeyForLikeCount generates the Redis key for a user's liked-you count.
func (c *RedisCache) KeyForLikeCount(userID string) string {
	return fmt.Sprintf("likes:count:%s", userID)
}

// GetLikeCount reads the cached liked-you count. Returns ok=false on a
// cache miss; the caller falls back to the database.
func (c *RedisCache) GetLikeCount(ctx context.Context, userID string) (int64, bool, error) {
	key := c.KeyForLikeCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil // treat a corrupt value as a miss
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, key, likeCountTTL).Err()
	return n, true, nil
}

// SetLikeCount stores the liked-you count with a fresh TTL.
func (c *RedisCache) SetLikeCount(ctx context.Context, userID string, count int64) error {
	return c.Client.Set(ctx, c.KeyForLikeCount(userID), count, likeCountTTL).Err()
}

// IncrLikeCount bumps the counter after a successful like. Only bumps a
// key that already exists so a miss stays a miss until the DB recount.
func (c *RedisCache) IncrLikeCount(ctx context.Context, userID string) error {
	key := c.KeyForLikeCount(userID)
	exists, err := c.Client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return err
	}
	if err := c.Client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return c.Client.Expire(ctx, key, likeCountTTL).Err()
}
