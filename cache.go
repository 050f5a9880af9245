package intrinsic

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultCacheTTL is how long fetched fundamentals are reused.
const DefaultCacheTTL = 24 * time.Hour

// Cache memoizes fundamentals by ticker.
type Cache interface {
	Get(ticker string) (Fundamentals, bool)
	Put(ticker string, f Fundamentals)
}

// MemoryCache is a Cache whose entries expire after a fixed time-to-live.
//
// It is safe for concurrent use.
type MemoryCache struct {
	TTL time.Duration
	Now func() time.Time // defaults to time.Now

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	f       Fundamentals
	expires time.Time
}

// NewMemoryCache returns an empty MemoryCache with the given time-to-live.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{TTL: ttl}
}

func (c *MemoryCache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *MemoryCache) Get(ticker string) (Fundamentals, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ticker]
	if !ok {
		return Fundamentals{}, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, ticker)
		return Fundamentals{}, false
	}
	return e.f, true
}

func (c *MemoryCache) Put(ticker string, f Fundamentals) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]cacheEntry)
	}
	c.entries[ticker] = cacheEntry{f: f, expires: c.now().Add(c.TTL)}
}

// Len returns the number of entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CachedProvider is a Provider that memoizes the successful fetches of another Provider.
type CachedProvider struct {
	Provider Provider
	Cache    Cache
}

func (p *CachedProvider) Fetch(ctx context.Context, ticker string) (Fundamentals, error) {
	if f, ok := p.Cache.Get(ticker); ok {
		log.Printf("cache hit %s", ticker)
		return f, nil
	}
	f, err := p.Provider.Fetch(ctx, ticker)
	if err != nil {
		// failures are never cached, the next call tries again.
		return Fundamentals{}, err
	}
	p.Cache.Put(ticker, f)
	return f, nil
}
