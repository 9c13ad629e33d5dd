// Package cache keeps the orphanage list in Redis between writes.
//
// The cache is an optimization only: every Redis failure is logged and
// reported as a miss so reads fall through to the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/deppfellow/happy/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// ListKey prefixes the JSON encoded orphanage list. Entries live under
	// "<ListKey>:<generation>".
	ListKey = "orphanages:list"

	// GenerationKey counts writes to the orphanage table. Invalidate bumps
	// it, which orphans every entry stored under an older generation.
	GenerationKey = "orphanages:list:gen"

	// NoGeneration is returned when the generation could not be read. Set
	// ignores it.
	NoGeneration int64 = -1
)

// store is the subset of redis.Cmdable the cache needs.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

type ListCache struct {
	store  store
	ttl    time.Duration
	logger *zerolog.Logger
}

// NewListCache returns a cache that stores entries for ttl. A nil client
// yields a disabled cache that always misses.
func NewListCache(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *ListCache {
	c := &ListCache{ttl: ttl, logger: logger}
	if client != nil {
		c.store = client
	}
	return c
}

func entryKey(generation int64) string {
	return ListKey + ":" + strconv.FormatInt(generation, 10)
}

// Get returns the list cached for the current generation. The generation
// is returned on a miss too: callers load the list from the database and
// hand it back to Set, so a snapshot read before a concurrent write is
// stored under a generation nobody reads anymore.
func (c *ListCache) Get(ctx context.Context) ([]model.Orphanage, int64, bool) {
	if c.store == nil {
		return nil, NoGeneration, false
	}

	generation, err := c.store.Get(ctx, GenerationKey).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		generation = 0
	case err != nil:
		c.logger.Warn().Err(err).Str("key", GenerationKey).Msg("list cache generation read failed")
		return nil, NoGeneration, false
	}

	key := entryKey(generation)
	raw, err := c.store.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("list cache read failed")
		return nil, generation, false
	}

	var orphanages []model.Orphanage
	if err := json.Unmarshal(raw, &orphanages); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("list cache entry is corrupt")
		return nil, generation, false
	}
	return orphanages, generation, true
}

// Set stores orphanages as the list of generation.
func (c *ListCache) Set(ctx context.Context, generation int64, orphanages []model.Orphanage) {
	if c.store == nil || generation == NoGeneration {
		return
	}

	raw, err := json.Marshal(orphanages)
	if err != nil {
		c.logger.Warn().Err(err).Msg("list cache encode failed")
		return
	}

	key := entryKey(generation)
	if err := c.store.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("list cache write failed")
	}
}

// Invalidate starts a new generation after a write.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c.store == nil {
		return
	}

	if err := c.store.Incr(ctx, GenerationKey).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", GenerationKey).Msg("list cache invalidation failed")
	}
}
