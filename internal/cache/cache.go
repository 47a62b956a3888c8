package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

type localEntry struct {
	Expires time.Time
	Data    []byte
}

// Cache keeps JSON encoded values in memory and, when a redis address is
// configured, in redis as well.
type Cache struct {
	mu       sync.Mutex
	client   *redis.Client
	memCache map[string]localEntry
}

// New returns a cache. An empty addr keeps everything in memory.
func New(addr, password string, db int) *Cache {
	c := &Cache{memCache: make(map[string]localEntry)}
	if addr != "" {
		c.client = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		})
	}
	return c
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	c.mu.Lock()
	local, found := c.memCache[key]
	if found && time.Now().After(local.Expires) {
		delete(c.memCache, key)
		found = false
	}
	c.mu.Unlock()
	if found {
		return sonic.ConfigStd.Unmarshal(local.Data, out)
	}
	if c.client == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	if err := sonic.ConfigStd.Unmarshal(data, out); err != nil {
		return err
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{Expires: time.Now().Add(time.Minute), Data: data}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := sonic.ConfigStd.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{Expires: time.Now().Add(expiration), Data: data}
	c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

// GetOrCompute fills out from the cache or from fn. A failing backend never
// hides the computed value.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, expiration time.Duration, fn func() T) (T, error) {
	var out T
	if err := c.Get(ctx, key, &out); err == nil {
		return out, nil
	}
	out = fn()
	return out, c.Set(ctx, key, out, expiration)
}

func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
