package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager(t *testing.T, maxSize int) (*CacheManager, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(config.CacheConfig{
		Enabled: true,
		Driver:  config.CacheDriverMemory,
		MaxSize: maxSize,
		TTL:     time.Minute,
	})
	m.now = clock.Now
	t.Cleanup(func() { _ = m.Close() })
	return m, clock
}

func TestManager_SetGet(t *testing.T) {
	m, _ := newTestManager(t, 10)
	ctx := context.Background()

	_, err := m.Get(ctx, "https://example.com/a")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, m.Set(ctx, "https://example.com/a", `{"title":"A"}`))

	val, err := m.Get(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"A"}`, val)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}

func TestManager_Expiry(t *testing.T) {
	m, clock := newTestManager(t, 10)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", "v"))
	clock.t = clock.t.Add(2 * time.Minute)

	_, err := m.Get(ctx, "k")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))
	assert.Equal(t, int64(1), m.Stats()["evictions"])
}

func TestManager_EvictsLeastUsed(t *testing.T) {
	m, clock := newTestManager(t, 2)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1"))
	clock.t = clock.t.Add(time.Second)
	require.NoError(t, m.Set(ctx, "b", "2"))

	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	// b 從未被讀取，應該被淘汰
	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "b")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	val, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
}

func TestManager_OverwriteDoesNotEvict(t *testing.T) {
	m, _ := newTestManager(t, 1)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "a", "2"))

	val, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", val)
	assert.Equal(t, int64(0), m.Stats()["evictions"])
}

func TestNew_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Enabled = false

	store, err := New(cfg)
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNew_Memory(t *testing.T) {
	cfg := config.Default()

	store, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	assert.IsType(t, &CacheManager{}, store)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	store, err := NewRedisStore(config.CacheConfig{RedisAddr: addr, TTL: time.Minute})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	key := "test:" + common.GenerateUUID()

	_, err = store.Get(ctx, key)
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, store.Set(ctx, key, "value"))
	val, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "value", val)
}
