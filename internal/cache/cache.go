// Package cache keeps computed analytics and reports per user until that user's entries change.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "healthguide"

// Slot is the generation-scoped location of a cached value. Get returns the slot it
// looked at; a value computed after a miss must be written back to that same slot, so
// an invalidation in between leaves the write unreachable. The empty Slot is never stored.
type Slot string

// Cache stores JSON values in a per-user namespace
type Cache interface {
	Get(ctx context.Context, userID, key string, dest any) (Slot, bool, error)
	Set(ctx context.Context, slot Slot, value any) error
	InvalidateUser(ctx context.Context, userID string) error
}

// Key joins key parts with ':'
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// RedisCache is a Cache on Redis. Invalidation bumps a per-user generation number,
// so stale values are never read again and expire through their TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a new RedisCache
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get loads a cached value into dest, reporting whether it was present.
// The returned slot is empty when the user's generation could not be read.
func (c *RedisCache) Get(ctx context.Context, userID, key string, dest any) (Slot, bool, error) {
	slot, err := c.slot(ctx, userID, key)
	if err != nil {
		return "", false, err
	}

	data, err := c.client.Get(ctx, string(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return slot, false, nil
	}
	if err != nil {
		c.logger.Warn("Failed to read from cache", zap.Error(err), zap.String("key", string(slot)))
		return slot, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return slot, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	return slot, true, nil
}

// Set stores a value in a slot returned by Get, with the configured TTL
func (c *RedisCache) Set(ctx context.Context, slot Slot, value any) error {
	if slot == "" {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := c.client.Set(ctx, string(slot), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write to cache", zap.Error(err), zap.String("key", string(slot)))
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	return nil
}

// InvalidateUser makes every value cached for the user unreachable
func (c *RedisCache) InvalidateUser(ctx context.Context, userID string) error {
	if err := c.client.Incr(ctx, generationKey(userID)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate user cache", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

func (c *RedisCache) slot(ctx context.Context, userID, key string) (Slot, error) {
	gen, err := c.client.Get(ctx, generationKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("failed to read cache generation: %w", err)
	}
	return Slot(fmt.Sprintf("%s:%s:%d:%s", keyPrefix, userID, gen, key)), nil
}

func generationKey(userID string) string {
	return fmt.Sprintf("%s:%s:gen", keyPrefix, userID)
}

// NoopCache never stores anything
type NoopCache struct{}

// Get always misses
func (NoopCache) Get(context.Context, string, string, any) (Slot, bool, error) { return "", false, nil }

// Set discards the value
func (NoopCache) Set(context.Context, Slot, any) error { return nil }

// InvalidateUser does nothing
func (NoopCache) InvalidateUser(context.Context, string) error { return nil }
