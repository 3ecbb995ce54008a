package services

import (
	"context"
	"errors"
	"time"

	"roomkeeper/services/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	CacheKeyClients = "clients:all"
	CacheKeyRooms   = "rooms:all"

	// cacheGenKey is bumped by every invalidation.
	cacheGenKey = "cache:gen"
)

var errStaleGeneration = errors.New("cache generation changed")

// Cache is a read-through JSON cache in Redis. A nil *Cache does nothing.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl, logger: log}
}

// Get loads key into target. It reports false on a miss.
func (c *Cache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	cached, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cached, target); err != nil {
		return false, err
	}
	return true, nil
}

// Set lưu dữ liệu vào Redis
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate xóa cache Redis and bumps the generation, so listings fetched
// before the call are never written back.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, cacheGenKey)
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}

func (c *Cache) generation(ctx context.Context) (string, error) {
	if c == nil {
		return "", nil
	}
	gen, err := c.rdb.Get(ctx, cacheGenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	return gen, err
}

// setIfCurrent stores value only while the generation still equals gen.
func (c *Cache) setIfCurrent(ctx context.Context, key, gen string, value interface{}) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, cacheGenKey).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if cur != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, cacheGenKey)
	if err == redis.TxFailedErr || errors.Is(err, errStaleGeneration) {
		c.logger.Debug("cache write skipped, list changed meanwhile", zap.String("key", key))
		return nil
	}
	return err
}

// load serves key from the cache or falls back to refresh.
// Redis failures are logged and never fail the call.
func (c *Cache) load(ctx context.Context, key string, target interface{}, fetch func() error) error {
	hit, err := c.Get(ctx, key, target)
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return nil
	}
	return c.refresh(ctx, key, target, fetch)
}

// refresh runs fetch and caches its result unless an invalidation happened
// while fetch was running.
func (c *Cache) refresh(ctx context.Context, key string, target interface{}, fetch func() error) error {
	gen, genErr := c.generation(ctx)
	if err := fetch(); err != nil {
		return err
	}
	if genErr != nil {
		c.logger.Warn("cache read failed", zap.String("key", cacheGenKey), zap.Error(genErr))
		return nil
	}
	if err := c.setIfCurrent(ctx, key, gen, target); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// dropLists is called after every committed write; rooms embed clients so both go.
func (c *Cache) dropLists(ctx context.Context) {
	if err := c.Invalidate(ctx, CacheKeyClients, CacheKeyRooms); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}
