// Package cache provides small key/value stores for client-side state such
// as the remembered identity.
package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Veraticus/voiq/internal/service"
	"gopkg.in/yaml.v3"
)

// ErrEmptyKey is returned for a blank key.
var ErrEmptyKey = errors.New("cache key cannot be empty")

// fileFormat is the on-disk document.
type fileFormat struct {
	Entries map[string]string `yaml:"entries"`
}

// FileCache persists entries to a YAML file. Every Set and Delete rewrites
// the file through a temporary file and an atomic rename.
type FileCache struct {
	entries map[string]string
	path    string
	mu      sync.Mutex
}

// Ensure we implement the interface.
var (
	_ service.Cache = (*FileCache)(nil)
	_ service.Cache = (*MapCache)(nil)
)

// OpenFileCache loads the cache at path. A missing file is an empty cache.
func OpenFileCache(path string) (*FileCache, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path: %w", ErrEmptyKey)
	}

	c := &FileCache{
		path:    path,
		entries: make(map[string]string),
	}

	// #nosec G304 - path comes from user configuration
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return c, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// A corrupt cache only loses remembered state; start over.
		slog.Warn("Ignoring unreadable cache file", "path", path, "error", err)
		return c, nil
	}
	for k, v := range doc.Entries {
		c.entries[k] = v
	}
	return c, nil
}

// Path returns the backing file.
func (c *FileCache) Path() string {
	return c.path
}

// Get returns the value for key.
func (c *FileCache) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	return v, ok, nil
}

// Set stores value under key and flushes to disk.
func (c *FileCache) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, had := c.entries[key]
	c.entries[key] = value
	if err := c.flush(); err != nil {
		if had {
			c.entries[key] = prev
		} else {
			delete(c.entries, key)
		}
		return err
	}
	return nil
}

// Delete removes key and flushes to disk. Deleting a missing key is not an error.
func (c *FileCache) Delete(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, had := c.entries[key]
	if !had {
		return nil
	}
	delete(c.entries, key)
	if err := c.flush(); err != nil {
		c.entries[key] = prev
		return err
	}
	return nil
}

// Keys returns every stored key in order.
func (c *FileCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *FileCache) flush() error {
	data, err := yaml.Marshal(fileFormat{Entries: c.entries})
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Write to temporary file first
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, c.path); err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			slog.Error("failed to remove temporary cache file", "error", rmErr)
		}
		return fmt.Errorf("failed to replace cache: %w", err)
	}
	return nil
}

// MapCache is a process-local cache used with the memory backend and in tests.
type MapCache struct {
	entries map[string]string
	setErr  error
	mu      sync.Mutex
}

// NewMapCache creates an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[string]string)}
}

// Get returns the value for key.
func (m *MapCache) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MapCache) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = value
	return nil
}

// Delete removes key.
func (m *MapCache) Delete(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// FailSets makes every subsequent Set return err. Pass nil to clear.
func (m *MapCache) FailSets(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}
