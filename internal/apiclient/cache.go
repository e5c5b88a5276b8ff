package apiclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"coworking-pos/internal/pkg/clock"

	"golang.org/x/sync/singleflight"
)

var ErrCacheClosed = errors.New("apiclient: cache closed")

// Entry is a cached response body.
type Entry struct {
	Body      []byte
	ETag      string
	FetchedAt time.Time
}

// FetchFunc performs the network call for one endpoint. cached is the current
// entry, fresh or not, so the fetch can revalidate it with its ETag.
type FetchFunc func(ctx context.Context, cached *Entry) (*Entry, error)

type CacheOptions struct {
	TTLs       TTLTable
	DefaultTTL time.Duration
	// FetchTimeout bounds every network fetch, foreground or background.
	FetchTimeout time.Duration
	// RefreshTimeout bounds how long a background refresh waits for its fetch.
	RefreshTimeout time.Duration
	Clock          clock.Clock
}

// Cache stores GET responses, coalesces identical in-flight requests and runs
// stale-while-revalidate refreshes. Close cancels in-flight fetches and waits
// for them to return.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*Entry
	refreshing map[string]struct{}
	// gens holds a generation per endpoint that has been fetched. Invalidating
	// an endpoint bumps its generation; a fetch that started under an older one
	// is not stored and is not joined by newer callers.
	gens   map[string]uint64
	closed bool

	group singleflight.Group
	wg    sync.WaitGroup

	ttls           TTLTable
	defaultTTL     time.Duration
	fetchTimeout   time.Duration
	refreshTimeout time.Duration
	clock          clock.Clock

	baseCtx context.Context
	cancel  context.CancelFunc
}

func NewCache(opts CacheOptions) *Cache {
	if opts.TTLs == nil {
		opts.TTLs = DefaultTTLs()
	}
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = DefaultTTL
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	if opts.RefreshTimeout <= 0 {
		opts.RefreshTimeout = 30 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		entries:        make(map[string]*Entry),
		refreshing:     make(map[string]struct{}),
		gens:           make(map[string]uint64),
		ttls:           opts.TTLs,
		defaultTTL:     opts.DefaultTTL,
		fetchTimeout:   opts.FetchTimeout,
		refreshTimeout: opts.RefreshTimeout,
		clock:          opts.Clock,
		baseCtx:        ctx,
		cancel:         cancel,
	}
}

func (c *Cache) TTL(endpoint string) time.Duration {
	return c.ttls.Lookup(endpoint, c.defaultTTL)
}

// Peek returns the stored entry regardless of its age.
func (c *Cache) Peek(endpoint string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[endpoint]
	return e, ok
}

// Get answers from a fresh entry or fetches once for all concurrent callers.
func (c *Cache) Get(ctx context.Context, endpoint string, fetch FetchFunc) ([]byte, error) {
	if e, ok := c.fresh(endpoint); ok {
		return e.Body, nil
	}
	e, err := c.load(ctx, endpoint, fetch)
	if err != nil {
		return nil, err
	}
	return e.Body, nil
}

// GetStaleWhileRevalidate returns any cached body at once and refreshes it in
// the background when it is older than half its TTL.
func (c *Cache) GetStaleWhileRevalidate(ctx context.Context, endpoint string, fetch FetchFunc) ([]byte, error) {
	e, ok := c.Peek(endpoint)
	if !ok {
		return c.Get(ctx, endpoint, fetch)
	}
	if c.clock.Now().Sub(e.FetchedAt) > c.TTL(endpoint)/2 {
		c.refreshAsync(endpoint, fetch)
	}
	return e.Body, nil
}

func (c *Cache) Invalidate(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, endpoint)
	if _, ok := c.gens[endpoint]; ok {
		c.gens[endpoint]++
	}
}

// InvalidatePrefix drops prefix itself and every endpoint below it, matching
// on path segment boundaries.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for endpoint := range c.entries {
		if hasPathPrefix(endpoint, prefix) {
			delete(c.entries, endpoint)
		}
	}
	for endpoint := range c.gens {
		if hasPathPrefix(endpoint, prefix) {
			c.gens[endpoint]++
		}
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	for endpoint := range c.gens {
		c.gens[endpoint]++
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close cancels in-flight fetches and background refreshes, waits for them
// and drops every entry.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	c.Clear()
}

func (c *Cache) fresh(endpoint string) (*Entry, bool) {
	e, ok := c.Peek(endpoint)
	if !ok || c.clock.Now().Sub(e.FetchedAt) >= c.TTL(endpoint) {
		return nil, false
	}
	return e, true
}

func (c *Cache) flightKey(endpoint string, gen uint64) string {
	return http.MethodGet + " " + endpoint + "#" + strconv.FormatUint(gen, 10)
}

// load runs fetch once per key. The fetch is bound to the cache lifetime, not
// to any caller; each caller stops waiting on its own ctx, so one caller
// giving up does not fail the others.
func (c *Cache) load(ctx context.Context, endpoint string, fetch FetchFunc) (*Entry, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCacheClosed
	}
	gen, ok := c.gens[endpoint]
	if !ok {
		c.gens[endpoint] = 0
	}
	cached := c.entries[endpoint]
	c.mu.Unlock()

	ch := c.group.DoChan(c.flightKey(endpoint, gen), func() (any, error) {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return nil, ErrCacheClosed
		}
		c.wg.Add(1)
		c.mu.Unlock()
		defer c.wg.Done()

		fetchCtx, cancel := context.WithTimeout(c.baseCtx, c.fetchTimeout)
		defer cancel()
		e, err := fetch(fetchCtx, cached)
		if err != nil {
			return nil, err
		}
		stored := &Entry{Body: e.Body, ETag: e.ETag, FetchedAt: c.clock.Now()}
		c.store(endpoint, stored, gen)
		return stored, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Entry), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) store(endpoint string, e *Entry, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.gens[endpoint] != gen {
		return
	}
	c.entries[endpoint] = e
}

func (c *Cache) refreshAsync(endpoint string, fetch FetchFunc) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if _, busy := c.refreshing[endpoint]; busy {
		c.mu.Unlock()
		return
	}
	c.refreshing[endpoint] = struct{}{}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			delete(c.refreshing, endpoint)
			c.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(c.baseCtx, c.refreshTimeout)
		defer cancel()
		// The previous entry stays in place when the refresh fails.
		if _, err := c.load(ctx, endpoint, fetch); err != nil {
			slog.Warn("background refresh failed", "endpoint", endpoint, "error", err)
		}
	}()
}
