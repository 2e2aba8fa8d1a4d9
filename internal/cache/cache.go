// Package cache is the in-process, per-entry TTL result cache shared by
// the market-data operations.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) valid(now time.Time) bool {
	return now.Sub(e.storedAt) < e.ttl
}

// Cache is a thread-safe in-memory cache with a TTL per entry. Expired
// entries are treated as absent on read and stay in the map until
// overwritten, cleared or swept.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds a cache key: Key("candle", "AAPL", "1W") → "candle:AAPL:1W".
func Key(op, symbol string, variant ...string) string {
	parts := append([]string{op, symbol}, variant...)
	return strings.Join(parts, ":")
}

// Get returns the payload stored under key if it has not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !e.valid(c.now()) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl. A non-positive ttl is a no-op.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// Clear removes every entry scoped to symbol and returns the removed keys
// sorted. A key is scoped to symbol when a segment after the operation
// equals it, with or without a domestic exchange suffix. An empty symbol
// clears nothing; use Flush.
func (c *Cache) Clear(symbol string) []string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return []string{}
	}
	base := utils.BaseSymbol(symbol)

	c.mu.Lock()
	removed := make([]string, 0)
	for k := range c.entries {
		if matches(k, symbol, base) {
			delete(c.entries, k)
			removed = append(removed, k)
		}
	}
	c.mu.Unlock()

	sort.Strings(removed)
	return removed
}

func matches(key, symbol, base string) bool {
	segs := strings.Split(key, ":")
	for _, s := range segs[1:] {
		s = strings.ToUpper(s)
		if s == symbol || s == base+utils.SuffixNSE || s == base+utils.SuffixBSE {
			return true
		}
		if base != symbol && s == base {
			return true
		}
	}
	return false
}

// Flush removes everything and returns how many entries were held.
func (c *Cache) Flush() int {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return n
}

// Sweep deletes expired entries and returns how many were removed.
func (c *Cache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if !e.valid(now) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats lists live entries sorted by key.
func (c *Cache) Stats() models.CacheStats {
	now := c.now()
	c.mu.RLock()
	keys := make([]models.CacheKeyInfo, 0, len(c.entries))
	for k, e := range c.entries {
		if !e.valid(now) {
			continue
		}
		keys = append(keys, models.CacheKeyInfo{
			Key:    k,
			AgeSec: utils.Round(now.Sub(e.storedAt).Seconds(), 1),
			TTL:    e.ttl.Seconds(),
		})
	}
	c.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })
	return models.CacheStats{Entries: len(keys), Keys: keys}
}
