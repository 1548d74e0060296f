package walker

import (
	"sync"

	"github.com/dbsmedya/astcollect/internal/stats"
)

// Ref names a dependency reached through a lock file together with its expected
// directory under the dependency root.
type Ref struct {
	Name string // "name vX.Y.Z", for logging
	Path string
}

// Entry is what the cache keeps for one dependency: the Stats of its own source files
// and the dependencies its lock files name. Nested dependencies are not folded into
// Stats; every benchmark expands Deps against its own Visited set.
type Entry struct {
	Stats stats.Stats
	Deps  []Ref
}

func (e Entry) clone() Entry {
	return Entry{
		Stats: e.Stats.Clone(),
		Deps:  append([]Ref(nil), e.Deps...),
	}
}

// Cache maps canonical dependency paths to their Entry. It is shared by every
// benchmark of a run and never evicts. Entries are write-once: the first Store for a
// path wins and later stores are ignored.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
	hits    int64
	misses  int64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Get returns a copy of the entry cached for path and counts the lookup.
func (c *Cache) Get(path string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok {
		c.misses++
		return Entry{}, false
	}
	c.hits++
	return e.clone(), true
}

// load is Get without touching the counters.
func (c *Cache) load(path string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Store records a copy of e for path and reports whether it was stored.
func (c *Cache) Store(path string, e Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[path]; ok {
		return false
	}
	c.entries[path] = e.clone()
	return true
}

// Len returns the number of cached dependencies.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Hits returns how many lookups found an entry.
func (c *Cache) Hits() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Misses returns how many lookups found nothing.
func (c *Cache) Misses() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}
