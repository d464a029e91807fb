package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the Redis-backed store
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// KeyPrefix namespaces this client's entries, e.g. per profile
	KeyPrefix string
}

// RedisStore keeps the credential entries in Redis so that several
// client processes (e.g. a fleet of headless agents) can share one
// session.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, cfg *RedisConfig) (*RedisStore, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "unibuy"
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) redisKey(key Key) string {
	return fmt.Sprintf("%s:credentials:%s", s.prefix, key)
}

// Get reads one credential entry
func (s *RedisStore) Get(ctx context.Context, key Key) (string, error) {
	val, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, nil
}

// Set writes one credential entry
func (s *RedisStore) Set(ctx context.Context, key Key, value string) error {
	if err := s.client.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Delete removes one credential entry
func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Clear removes all credential entries in one round trip
func (s *RedisStore) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(Keys))
	for _, key := range Keys {
		keys = append(keys, s.redisKey(key))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
