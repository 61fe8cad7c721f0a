package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KV is a namespaced key-value file store. It backs the identity map
// (auth subject -> internal user id) and the TTL cache. The whole store is a
// single JSON file rewritten on every mutation; the data set is tiny.
type KV struct {
	path string
	mu   sync.Mutex
	data map[string]json.RawMessage
}

func OpenKV(path string) (*KV, error) {
	kv := &KV{path: path, data: make(map[string]json.RawMessage)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return kv, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &kv.data); err != nil {
			return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
		}
	}
	return kv, nil
}

// Get decodes the value for key into out. Returns false when key is absent.
func (kv *KV) Get(key string, out any) (bool, error) {
	kv.mu.Lock()
	raw, ok := kv.data[key]
	kv.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode value for %s: %w", key, err)
	}
	return true, nil
}

func (kv *KV) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = raw
	return kv.flushLocked()
}

func (kv *KV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if _, ok := kv.data[key]; !ok {
		return nil
	}
	delete(kv.data, key)
	return kv.flushLocked()
}

// DeletePrefix removes every key with the given prefix and returns how many
// were removed.
func (kv *KV) DeletePrefix(prefix string) (int, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	removed := 0
	for key := range kv.data {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(kv.data, key)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, kv.flushLocked()
}

func (kv *KV) flushLocked() error {
	raw, err := json.MarshalIndent(kv.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if dir := filepath.Dir(kv.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	tmp := kv.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, kv.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
