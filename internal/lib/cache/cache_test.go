package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/deppfellow/happy/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore imitates the Redis commands the cache uses in memory.
type memoryStore struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *memoryStore) Get(_ context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryStore) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	m.data[key] = string(value.([]byte))
	m.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryStore) Incr(_ context.Context, key string) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func newTestCache(s store) *ListCache {
	log := zerolog.Nop()
	return &ListCache{store: s, ttl: 30 * time.Second, logger: &log}
}

func TestListCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore()
	c := newTestCache(s)

	_, gen, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Zero(t, gen)

	c.Set(ctx, gen, []model.Orphanage{{ID: 1, Name: "Lar", Images: []model.Image{{ID: 3, Path: "1-a.jpg", OrphanageID: 1}}}})
	assert.Equal(t, 30*time.Second, s.ttl[ListKey+":0"])

	got, gen, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Zero(t, gen)
	require.Len(t, got, 1)
	assert.Equal(t, "1-a.jpg", got[0].Images[0].Path)

	c.Invalidate(ctx)
	_, gen, ok = c.Get(ctx)
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
}

func TestListCache_SnapshotFromBeforeInvalidateIsNotServed(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(newMemoryStore())

	// A reader misses and loads the list, then a write lands before the
	// reader stores what it loaded.
	_, readerGen, ok := c.Get(ctx)
	require.False(t, ok)
	c.Invalidate(ctx)
	c.Set(ctx, readerGen, []model.Orphanage{})

	_, gen, ok := c.Get(ctx)
	assert.False(t, ok, "list loaded before the write must not be served")
	assert.Equal(t, readerGen+1, gen)

	c.Set(ctx, gen, []model.Orphanage{{ID: 1}})
	got, _, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Len(t, got, 1)
}

func TestListCache_EmptyListIsAHit(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(newMemoryStore())

	c.Set(ctx, 0, []model.Orphanage{})

	got, _, ok := c.Get(ctx)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestListCache_RedisFailureIsAMiss(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore()
	s.err = errors.New("connection refused")
	c := newTestCache(s)

	c.Set(ctx, 0, []model.Orphanage{{ID: 1}})
	c.Invalidate(ctx)
	_, gen, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Equal(t, NoGeneration, gen)
}

func TestListCache_SetIgnoresUnknownGeneration(t *testing.T) {
	s := newMemoryStore()

	newTestCache(s).Set(context.Background(), NoGeneration, []model.Orphanage{{ID: 1}})
	assert.Empty(t, s.data)
}

func TestListCache_CorruptEntryIsAMiss(t *testing.T) {
	s := newMemoryStore()
	s.data[GenerationKey] = "2"
	s.data[ListKey+":2"] = "not json"

	_, gen, ok := newTestCache(s).Get(context.Background())
	assert.False(t, ok)
	assert.Equal(t, int64(2), gen)
}

func TestListCache_Disabled(t *testing.T) {
	log := zerolog.Nop()
	c := NewListCache(nil, time.Second, &log)

	c.Set(context.Background(), 0, []model.Orphanage{{ID: 1}})
	c.Invalidate(context.Background())
	_, _, ok := c.Get(context.Background())
	assert.False(t, ok)
}
