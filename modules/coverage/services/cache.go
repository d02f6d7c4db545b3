package services

import (
	"sync"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

// Cache holds the most recently fetched list per kind. A list fetch first takes a
// Ticket; only the newest ticket for a kind may commit, so a slow response that was
// overtaken by a later fetch is dropped instead of overwriting fresher data.
type Cache struct {
	mu      sync.RWMutex
	entries map[types.Kind]*cacheEntry
}

type cacheEntry struct {
	issued    uint64
	committed bool
	records   any
}

type Ticket struct {
	Kind       types.Kind
	Generation uint64
}

func NewCache() *Cache {
	return &Cache{entries: make(map[types.Kind]*cacheEntry)}
}

func (c *Cache) entry(kind types.Kind) *cacheEntry {
	e := c.entries[kind]
	if e == nil {
		e = &cacheEntry{}
		c.entries[kind] = e
	}
	return e
}

func (c *Cache) Begin(kind types.Kind) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(kind)
	e.issued++
	return Ticket{Kind: kind, Generation: e.issued}
}

// Current reports whether t is still the newest ticket for its kind.
func (c *Cache) Current(t Ticket) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e := c.entries[t.Kind]
	return e != nil && e.issued == t.Generation
}

// Loaded reports whether any list was ever committed for kind.
func (c *Cache) Loaded(kind types.Kind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e := c.entries[kind]
	return e != nil && e.committed
}

// Commit replaces the list for t.Kind when t is the newest ticket and reports whether
// it did.
func Commit[T any](c *Cache, t Ticket, records []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(t.Kind)
	if e.issued != t.Generation {
		return false
	}
	e.records = append([]T(nil), records...)
	e.committed = true
	return true
}

// Put replaces the list unconditionally, superseding any fetch still in flight.
func Put[T any](c *Cache, kind types.Kind, records []T) {
	Commit(c, c.Begin(kind), records)
}

// Get returns a copy of the cached list; nil when nothing was committed or the stored
// list has a different element type.
func Get[T any](c *Cache, kind types.Kind) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e := c.entries[kind]
	if e == nil || !e.committed {
		return nil
	}
	records, ok := e.records.([]T)
	if !ok {
		return nil
	}
	return append([]T(nil), records...)
}
