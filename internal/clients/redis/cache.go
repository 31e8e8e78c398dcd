package redis

import (
  "context"
  "fmt"
  "os"
  "strings"
  "sync"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/playmatter/playdate-backend/internal/logger"
)

// Cache is a small read-through cache used for entitlement lookups.
type Cache interface {
  GetBool(ctx context.Context, key string) (value bool, found bool, err error)
  SetBool(ctx context.Context, key string, value bool, ttl time.Duration) error
  Del(ctx context.Context, keys ...string) error
  Close() error
}

type cache struct {
  log *logger.Logger
  rdb *goredis.Client
}

var (
  sharedOnce  sync.Once
  sharedCache Cache
  sharedErr   error
)

// Shared returns the process-wide cache, constructing it on first call.
// Construction failure is sticky; callers must tolerate a nil cache.
func Shared(log *logger.Logger) (Cache, error) {
  sharedOnce.Do(func() {
    sharedCache, sharedErr = NewCache(log)
  })
  return sharedCache, sharedErr
}

func NewCache(log *logger.Logger) (Cache, error) {
  if log == nil {
    return nil, fmt.Errorf("logger required")
  }

  addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_ADDR")
  }

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping failed: %w", err)
  }

  return &cache{log: log.With("client", "RedisCache"), rdb: rdb}, nil
}

func (c *cache) GetBool(ctx context.Context, key string) (bool, bool, error) {
  val, err := c.rdb.Get(ctx, key).Result()
  if err == goredis.Nil {
    return false, false, nil
  }
  if err != nil {
    return false, false, err
  }
  return val == "1", true, nil
}

func (c *cache) SetBool(ctx context.Context, key string, value bool, ttl time.Duration) error {
  payload := "0"
  if value {
    payload = "1"
  }
  return c.rdb.Set(ctx, key, payload, ttl).Err()
}

func (c *cache) Del(ctx context.Context, keys ...string) error {
  if len(keys) == 0 {
    return nil
  }
  return c.rdb.Del(ctx, keys...).Err()
}

func (c *cache) Close() error {
  return c.rdb.Close()
}
