package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisClientImpl wraps a go-redis client bound to a context.
type RedisClientImpl struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

// NewRedisClientImpl wraps client. Values are written with the given ttl; zero
// means no expiry.
func NewRedisClientImpl(ctx context.Context, client *redis.Client, ttl time.Duration) *RedisClientImpl {
	return &RedisClientImpl{
		client: client,
		ctx:    ctx,
		ttl:    ttl,
	}
}

// Set sets a key-value pair in Redis
func (r *RedisClientImpl) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, r.ttl).Err()
}

// Get retrieves the value for a given key from Redis
func (r *RedisClientImpl) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return val, err
}

// Keys lists keys matching a glob pattern using SCAN.
func (r *RedisClientImpl) Keys(pattern string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(r.ctx, 0, pattern, 100).Iterator()
	for iter.Next(r.ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys %q: %w", pattern, err)
	}
	return keys, nil
}

// Del removes a key. Missing keys are not an error.
func (r *RedisClientImpl) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

func (r *RedisClientImpl) GetContext() context.Context {
	return r.ctx
}

func (r *RedisClientImpl) Ping() error {
	if _, err := r.client.Ping(r.ctx).Result(); err != nil {
		return err
	}
	log.Println("[RedisClient] Connected to Redis")
	return nil
}
