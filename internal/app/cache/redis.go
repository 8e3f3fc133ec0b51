package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"yt2t/internal/app/model"
)

// RedisCache stores JSON-encoded metadata in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisOptions configures NewRedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// TTL is DefaultTTL when not positive.
	TTL time.Duration
}

// NewRedisCache creates a client for opts.Addr. The connection is verified
// lazily; an unreachable server only produces cache misses.
func NewRedisCache(opts RedisOptions, logger *zap.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	return &RedisCache{
		client: client,
		ttl:    effectiveTTL(opts.TTL),
		logger: logger.With(zap.String("component", "cache"), zap.String("backend", "redis")),
	}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (model.VideoMetadata, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return model.VideoMetadata{}, false
	}

	var meta model.VideoMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return model.VideoMetadata{}, false
	}
	return meta, true
}

func (c *RedisCache) Set(ctx context.Context, key string, meta model.VideoMetadata) {
	data, err := json.Marshal(meta)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
