package texture

import "sync"

// TexInfo identifies one distinct load request. Equal infos share a single
// cached MIPMap; every field participates in the key.
type TexInfo struct {
	Path          string
	Method        FilterMethod
	Wrap          WrapMode
	Scale         float64
	Gamma         bool
	MaxAnisotropy float64
}

// Cache maps load requests to lazily built, shared MIPMaps. A build runs at
// most once per key: concurrent first-requesters block on the winner's build
// instead of duplicating it. Entries live for the process lifetime; a failed
// build is reported to all waiters and leaves the key unpopulated.
type Cache[T Texel[T]] struct {
	load func(TexInfo) (*MIPMap[T], error)

	mu      sync.Mutex
	entries map[TexInfo]*cacheEntry[T]
}

type cacheEntry[T Texel[T]] struct {
	once sync.Once
	mip  *MIPMap[T]
	err  error
}

// NewCache creates a cache that builds missing entries with load.
func NewCache[T Texel[T]](load func(TexInfo) (*MIPMap[T], error)) *Cache[T] {
	return &Cache[T]{
		load:    load,
		entries: make(map[TexInfo]*cacheEntry[T]),
	}
}

// Get returns the shared MIPMap for info, building it on first use. Only the
// per-key entry serializes; unrelated keys build concurrently.
func (c *Cache[T]) Get(info TexInfo) (*MIPMap[T], error) {
	c.mu.Lock()
	e, ok := c.entries[info]
	if !ok {
		e = &cacheEntry[T]{}
		c.entries[info] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.mip, e.err = c.load(info)
		if e.err != nil {
			// Drop the failed entry so the key stays unpopulated.
			c.mu.Lock()
			if c.entries[info] == e {
				delete(c.entries, info)
			}
			c.mu.Unlock()
		}
	})
	return e.mip, e.err
}

// Len returns the number of populated or in-flight entries.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Process-wide caches shared by every ImageTexture.
var (
	// RGBMaps caches color pyramids.
	RGBMaps = NewCache(loadRGB)
	// ScalarMaps caches single-channel pyramids.
	ScalarMaps = NewCache(loadScalar)
)
