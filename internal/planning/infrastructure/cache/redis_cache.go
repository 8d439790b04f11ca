// Package cache stores rendered plan views between plan changes.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every plan view key.
const KeyPrefix = "studyplanner:plan:"

// KeyMaxLength bounds the caller-supplied part of a key.
const KeyMaxLength = 256

// ErrKeyTooLong is returned for keys longer than KeyMaxLength.
var ErrKeyTooLong = errors.New("cache key too long")

// RedisPlanCache keeps plan views in Redis with a TTL.
type RedisPlanCache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedisPlanCache creates a cache over client. Pass 0 for ttl to keep
// entries until the next invalidation.
func NewRedisPlanCache(client *redis.Client, namespace string, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{client: client, namespace: namespace, ttl: ttl}
}

// NewRedisClient parses url and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (c *RedisPlanCache) prefix() string {
	if c.namespace == "" {
		return KeyPrefix
	}
	return KeyPrefix + c.namespace + ":"
}

func (c *RedisPlanCache) namespaceKey(key string) (string, error) {
	if len(key) > KeyMaxLength {
		return "", ErrKeyTooLong
	}
	return c.prefix() + key, nil
}

// Get returns the cached value and whether it was present.
func (c *RedisPlanCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	fullKey, err := c.namespaceKey(key)
	if err != nil {
		return nil, false, err
	}

	val, err := c.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set stores value under key.
func (c *RedisPlanCache) Set(ctx context.Context, key string, value []byte) error {
	fullKey, err := c.namespaceKey(key)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fullKey, value, c.ttl).Err()
}

// Invalidate drops every plan view in the namespace.
func (c *RedisPlanCache) Invalidate(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.prefix()+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Keys lists the caller-facing keys currently cached.
func (c *RedisPlanCache) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.prefix()+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), c.prefix()))
	}
	return keys, iter.Err()
}

// Ping checks the Redis connection.
func (c *RedisPlanCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
