package store

import (
	"encoding/json"
	"time"
)

const cachePrefix = "app_cache_v1:"

type cacheEntry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Cache is a TTL map layered over the KV store under the app_cache_v1
// namespace. Expiry is lazy: entries are dropped when read past their
// deadline.
type Cache struct {
	kv  *KV
	ttl time.Duration
	now func() time.Time
}

func NewCache(kv *KV, ttl time.Duration) *Cache {
	return &Cache{kv: kv, ttl: ttl, now: time.Now}
}

func (c *Cache) Get(key string, out any) (bool, error) {
	var entry cacheEntry
	ok, err := c.kv.Get(cachePrefix+key, &entry)
	if err != nil || !ok {
		return false, err
	}
	if c.now().After(entry.ExpiresAt) {
		_ = c.kv.Delete(cachePrefix + key)
		return false, nil
	}
	if err := json.Unmarshal(entry.Value, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.kv.Put(cachePrefix+key, cacheEntry{
		Value:     raw,
		ExpiresAt: c.now().Add(c.ttl),
	})
}

func (c *Cache) Invalidate(key string) error {
	return c.kv.Delete(cachePrefix + key)
}

// Clear drops the whole cache namespace, leaving other KV entries alone.
func (c *Cache) Clear() error {
	_, err := c.kv.DeletePrefix(cachePrefix)
	return err
}
