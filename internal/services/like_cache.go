package services

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/openmelody/backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no entry exists for the key. Absence means
// "recompute from source"; entries have no TTL and live until invalidated.
var ErrCacheMiss = errors.New("cache miss")

// LikeCache is the counter cache for per-album like totals. It is never
// the system of record: mutations only invalidate, reads repopulate.
type LikeCache interface {
	Get(ctx context.Context, albumID string) (int64, error)
	Set(ctx context.Context, albumID string, count int64) error
	Invalidate(ctx context.Context, albumID string) error
}

// likeKey derives the cache key for an album's like counter.
func likeKey(albumID string) string {
	return "album:likes:" + albumID
}

// RedisLikeCache backs LikeCache with Redis.
type RedisLikeCache struct {
	client *redis.Client
}

func NewRedisLikeCache(cfg *config.RedisConfig) *RedisLikeCache {
	return &RedisLikeCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *RedisLikeCache) Get(ctx context.Context, albumID string) (int64, error) {
	val, err := c.client.Get(ctx, likeKey(albumID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, err
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// Garbage in the key; treat as a miss so the next read repairs it.
		return 0, ErrCacheMiss
	}
	return count, nil
}

func (c *RedisLikeCache) Set(ctx context.Context, albumID string, count int64) error {
	return c.client.Set(ctx, likeKey(albumID), strconv.FormatInt(count, 10), 0).Err()
}

func (c *RedisLikeCache) Invalidate(ctx context.Context, albumID string) error {
	return c.client.Del(ctx, likeKey(albumID)).Err()
}

func (c *RedisLikeCache) Close() error {
	return c.client.Close()
}

// MemoryLikeCache is an in-process LikeCache for Redis-disabled setups and
// tests.
type MemoryLikeCache struct {
	mu      sync.Mutex
	entries map[string]int64
}

func NewMemoryLikeCache() *MemoryLikeCache {
	return &MemoryLikeCache{entries: make(map[string]int64)}
}

func (c *MemoryLikeCache) Get(ctx context.Context, albumID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	count, ok := c.entries[likeKey(albumID)]
	if !ok {
		return 0, ErrCacheMiss
	}
	return count, nil
}

func (c *MemoryLikeCache) Set(ctx context.Context, albumID string, count int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[likeKey(albumID)] = count
	return nil
}

func (c *MemoryLikeCache) Invalidate(ctx context.Context, albumID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, likeKey(albumID))
	return nil
}
