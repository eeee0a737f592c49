package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Cache is the durable key/value store backing a session: exactly two keys
// are used, the token and the serialized user record. Implementations must
// tolerate being cleared or corrupted at any time.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemCache is an in-process Cache, mainly for tests.
type MemCache struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemCache() *MemCache {
	return &MemCache{m: make(map[string]string)}
}

func (c *MemCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *MemCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return nil
}

func (c *MemCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
	return nil
}

// FileCache persists the session as a JSON object in a single file. Reads of
// a missing or unreadable file behave as an empty cache; the store treats
// that as logged-out.
type FileCache struct {
	path string
	mu   sync.Mutex
}

func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

func (c *FileCache) load() map[string]string {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return map[string]string{}
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return map[string]string{}
	}
	return m
}

func (c *FileCache) save(m map[string]string) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.path, b, 0o600)
}

func (c *FileCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.load()[key]
	return v, ok
}

func (c *FileCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.load()
	m[key] = value
	return c.save(m)
}

func (c *FileCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.load()
	delete(m, key)
	return c.save(m)
}
