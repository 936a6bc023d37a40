package roomquery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/romashorodok/salon-platform/pkg/service"
)

// CountCache holds recently resolved participant counts.
type CountCache interface {
	Get(ctx context.Context, room string) (int, bool)
	Set(ctx context.Context, counts map[string]int)
}

type cachedCount struct {
	count   int
	expires time.Time
}

type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cachedCount
}

func (c *MemoryCache) Get(_ context.Context, room string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[room]
	if !ok {
		return 0, false
	}
	if !c.now().Before(entry.expires) {
		delete(c.entries, room)
		return 0, false
	}
	return entry.count, true
}

func (c *MemoryCache) Set(_ context.Context, counts map[string]int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	for room, count := range counts {
		c.entries[room] = cachedCount{count: count, expires: expires}
	}
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedCount),
	}
}

const redisKeyPrefix = "salon:participants:"

// RedisCache shares counts between server replicas. Redis failures degrade to
// cache misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func (c *RedisCache) Get(ctx context.Context, room string) (int, bool) {
	count, err := c.client.Get(ctx, redisKeyPrefix+room).Int()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("redis get", slog.String("room", room), slog.String("err", err.Error()))
		}
		return 0, false
	}
	return count, true
}

func (c *RedisCache) Set(ctx context.Context, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	pipe := c.client.Pipeline()
	for room, count := range counts {
		pipe.Set(ctx, redisKeyPrefix+room, count, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("redis set", slog.String("err", err.Error()))
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// NewCache returns nil when caching is disabled.
func NewCache(cfg service.CacheConfig, logger *slog.Logger) (CountCache, error) {
	if cfg.TTL <= 0 {
		return nil, nil
	}
	if cfg.RedisURL == "" {
		return NewMemoryCache(cfg.TTL), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	logger.Info("redis count cache enabled", slog.String("addr", opts.Addr))
	return NewRedisCache(redis.NewClient(opts), cfg.TTL, logger), nil
}
