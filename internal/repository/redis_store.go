package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// OpenRedis connects and verifies the server answers a ping.
func OpenRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	var ro *redis.Options
	if parsed, err := redis.ParseURL(opts.Addr); err == nil {
		ro = parsed
	} else {
		ro = &redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}
	}
	ro.DialTimeout = 5 * time.Second

	client := redis.NewClient(ro)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping: %w", err)
	}

	return client, nil
}

type redisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) port.KeyValueStore {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("key[%s]: %w", key, port.ErrKeyNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("client.Get: %w", err)
	}
	return data, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}
	return nil
}
