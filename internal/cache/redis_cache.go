package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andymccutcheon/return-to-print/internal/errs"
	"github.com/andymccutcheon/return-to-print/internal/model"
)

const recentKey = "messages:recent"

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]model.Message, error) {
	raw, err := c.rdb.Get(ctx, recentKey).Bytes()
	if err == redis.Nil {
		return nil, errs.ErrNoData
	}
	if err != nil {
		return nil, err
	}

	var msgs []model.Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *RedisCache) Set(ctx context.Context, messages []model.Message) error {
	b, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, recentKey, b, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, recentKey).Err()
}
