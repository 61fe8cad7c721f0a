package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return kv
}

func TestKVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	kv, err := OpenKV(path)
	require.NoError(t, err)

	require.NoError(t, kv.Put("auth0_abc123", "user-1"))

	var id string
	ok, err := kv.Get("auth0_abc123", &id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)

	// Values survive a reopen.
	reopened, err := OpenKV(path)
	require.NoError(t, err)
	ok, err = reopened.Get("auth0_abc123", &id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
}

func TestKVGetMissing(t *testing.T) {
	kv := newTestKV(t)
	var out string
	ok, err := kv.Get("nope", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVDeletePrefix(t *testing.T) {
	kv := newTestKV(t)
	require.NoError(t, kv.Put("app_cache_v1:a", 1))
	require.NoError(t, kv.Put("app_cache_v1:b", 2))
	require.NoError(t, kv.Put("auth0_sub", "user-1"))

	removed, err := kv.DeletePrefix("app_cache_v1:")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var id string
	ok, err := kv.Get("auth0_sub", &id)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	kv := newTestKV(t)
	cache := NewCache(kv, time.Minute)

	current := time.Now()
	cache.now = func() time.Time { return current }

	require.NoError(t, cache.Set("orders", []string{"a", "b"}))

	var out []string
	ok, err := cache.Get("orders", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, out)

	current = current.Add(2 * time.Minute)
	ok, err = cache.Get("orders", &out)
	require.NoError(t, err)
	assert.False(t, ok, "expired entry should not be returned")

	// The expired entry is gone from the underlying store too.
	var raw map[string]any
	ok, err = kv.Get("app_cache_v1:orders", &raw)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheClearLeavesOtherKeys(t *testing.T) {
	kv := newTestKV(t)
	cache := NewCache(kv, time.Minute)

	require.NoError(t, cache.Set("a", 1))
	require.NoError(t, kv.Put("auth0_sub", "user-1"))
	require.NoError(t, cache.Clear())

	var n int
	ok, _ := cache.Get("a", &n)
	assert.False(t, ok)

	var id string
	ok, _ = kv.Get("auth0_sub", &id)
	assert.True(t, ok)
}
