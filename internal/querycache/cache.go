// Package querycache puts a freshness window between catalog reads and the
// network. Results are keyed by endpoint plus normalized parameters: a read
// inside the freshness window is served from memory, a read past it but
// before the eviction window returns the stale payload while a background
// refetch runs, and anything older blocks on a fresh fetch. Concurrent reads
// for the same cold key collapse into a single request.
package querycache

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultStaleAfter is the freshness window.
	DefaultStaleAfter = 5 * time.Minute
	// DefaultEvictAfter is the garbage-collection window.
	DefaultEvictAfter = 10 * time.Minute
)

type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	payload   any
	fetchedAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group

	staleAfter time.Duration
	evictAfter time.Duration
	now        func() time.Time
	logger     *log.Logger
}

type Option func(*Cache)

// WithWindows overrides the freshness and eviction windows.
func WithWindows(staleAfter, evictAfter time.Duration) Option {
	return func(c *Cache) {
		c.staleAfter = staleAfter
		c.evictAfter = evictAfter
	}
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		staleAfter: DefaultStaleAfter,
		evictAfter: DefaultEvictAfter,
		now:        time.Now,
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do returns the payload for key, consulting the cache first. fetch runs at
// most once per key at a time regardless of how many callers arrive
// together.
func (c *Cache) Do(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	now := c.now()

	c.mu.Lock()
	c.sweepLocked(now)
	if e, ok := c.entries[key]; ok {
		age := now.Sub(e.fetchedAt)
		if age < c.staleAfter {
			c.mu.Unlock()
			return e.payload, nil
		}
		// Stale but not evicted: serve it and refresh behind the caller's
		// back. The refresh is detached from ctx so an unmounting consumer
		// cannot cancel it, and a late result is simply stored.
		payload := e.payload
		c.mu.Unlock()
		go c.refresh(key, fetch)
		return payload, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		payload, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, payload)
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate drops every entry whose key starts with prefix; the next read
// for any matching key goes back to the network.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Size reports the number of live entries.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) refresh(key string, fetch FetchFunc) {
	_, err, _ := c.group.Do(key, func() (any, error) {
		payload, err := fetch(context.Background())
		if err != nil {
			return nil, err
		}
		c.put(key, payload)
		return payload, nil
	})
	if err != nil {
		// The stale entry stays; the next read past the eviction window
		// will block on a fresh fetch and surface the error.
		c.logger.Printf("querycache: background refresh key=%s error=%v", key, err)
	}
}

func (c *Cache) put(key string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{payload: payload, fetchedAt: c.now()}
}

func (c *Cache) sweepLocked(now time.Time) {
	for key, e := range c.entries {
		if now.Sub(e.fetchedAt) >= c.evictAfter {
			delete(c.entries, key)
		}
	}
}
