package texture

import (
	"image"
	"sync"
)

// Resolver resolves a texture path to a decoded NRGBA image.
type Resolver interface {
	Resolve(path string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache keyed by file path.
// Failed loads are cached too, so a missing texture is probed once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
}

// NewCache creates an empty texture cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*image.NRGBA)}
}

// Resolve loads and caches the texture at path. Returns nil if the file
// is missing or undecodable; an empty path resolves to nil immediately.
func (c *Cache) Resolve(path string) *image.NRGBA {
	if path == "" {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if img, ok := c.items[path]; ok {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, _ := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	if cached, ok := c.items[path]; ok {
		c.mu.Unlock()
		return cached
	}
	c.items[path] = img
	c.mu.Unlock()

	return img
}
