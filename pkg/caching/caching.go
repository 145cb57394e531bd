// Package caching stores recognized batch text on disk so re-running a
// document does not pay for recognition twice.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/llm-doc-processor/pkg/pages"
)

// Cache provides a simple file-based cache with a TTL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// Key identifies one recognition call. Any change to the engine, model,
// instruction or page bytes produces a different key.
func Key(engine, model, instruction string, batch []pages.Page) string {
	h := sha256.New()
	for _, s := range []string{engine, model, instruction} {
		fmt.Fprintf(h, "%d:%s|", len(s), s)
	}
	for _, p := range batch {
		fmt.Fprintf(h, "%d:", len(p.Data))
		h.Write(p.Data)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (c *Cache) file(key string) string {
	return filepath.Join(c.path, key+".md")
}

// Get retrieves an item from the cache.
// It returns the text and true if the item is found and not expired.
func (c *Cache) Get(key string) (string, bool) {
	filePath := c.file(key)

	info, err := os.Stat(filePath)
	if err != nil {
		return "", false // Cache miss
	}

	// A zero TTL never expires
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return "", false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", false
	}

	return string(data), true
}

// Set adds an item to the cache. The entry is written to a temporary file
// and renamed so concurrent readers never see a partial entry.
func (c *Cache) Set(key, text string) error {
	tmp, err := os.CreateTemp(c.path, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.file(key)); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
