package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Addr     string
	Password string
	DB       int

	DialTimeout time.Duration
	Timeout     time.Duration
}

// Cache guarda valores como JSON en Redis.
type Cache struct {
	db     *redis.Client
	prefix string
}

// New conecta y hace ping. prefix se antepone a todas las keys.
func New(ctx context.Context, opts Options, prefix string) (*Cache, error) {
	const op = "rediscache.New"

	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 3 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second
	}

	db := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{db: db, prefix: prefix}, nil
}

// Get deserializa la key en dst. false sin error = miss.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	const op = "rediscache.Get"

	val, err := c.db.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	const op = "rediscache.Set"

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.db.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.prefix+k)
	}
	if err := c.db.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("rediscache.Invalidate: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
