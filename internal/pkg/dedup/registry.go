package dedup

import (
	"context"
	"errors"
	"sync"
	"time"

	"coworking-pos/internal/pkg/clock"
)

var ErrStillProcessing = errors.New("operation still processing")

// Call is the future shared by the leader and every waiter of one key.
type Call[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newCall[T any]() *Call[T] {
	return &Call[T]{done: make(chan struct{})}
}

// Wait blocks until the leader finishes, ctx is done, or timeout elapses.
// Giving up never affects the leader.
func (c *Call[T]) Wait(ctx context.Context, timeout time.Duration) (T, error) {
	var zero T
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-c.done:
		return c.val, c.err
	case <-timer.C:
		return zero, ErrStillProcessing
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (c *Call[T]) Done() <-chan struct{} {
	return c.done
}

type recentEntry[T any] struct {
	val       T
	expiresAt time.Time
}

type Options struct {
	RecentTTL     time.Duration
	InflightGrace time.Duration
}

// Registry tracks in-flight operations and recently completed results per key.
// It is process-local; durable uniqueness is the store's job.
type Registry[T any] struct {
	mu       sync.Mutex
	inflight map[string]*Call[T]
	recent   map[string]recentEntry[T]
	timers   map[string]*time.Timer
	opts     Options
	clock    clock.Clock
	closed   bool
}

func NewRegistry[T any](opts Options, clk clock.Clock) *Registry[T] {
	return &Registry[T]{
		inflight: make(map[string]*Call[T]),
		recent:   make(map[string]recentEntry[T]),
		timers:   make(map[string]*time.Timer),
		opts:     opts,
		clock:    clk,
	}
}

// Recent returns a result completed within the recent TTL.
func (r *Registry[T]) Recent(key string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	e, ok := r.recent[key]
	if !ok {
		return zero, false
	}
	if !r.clock.Now().Before(e.expiresAt) {
		delete(r.recent, key)
		return zero, false
	}
	return e.val, true
}

// Remember stores a result found elsewhere (e.g. the durable store) so the
// next lookup skips the round trip.
func (r *Registry[T]) Remember(key string, val T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rememberLocked(key, val)
}

func (r *Registry[T]) rememberLocked(key string, val T) {
	if r.closed || r.opts.RecentTTL <= 0 {
		return
	}
	r.recent[key] = recentEntry[T]{val: val, expiresAt: r.clock.Now().Add(r.opts.RecentTTL)}
}

// Join returns the call registered under key. leader is true when the caller
// created it and must eventually pass it to Finish.
func (r *Registry[T]) Join(key string) (call *Call[T], leader bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.inflight[key]; ok {
		return c, false
	}
	c := newCall[T]()
	if !r.closed {
		r.inflight[key] = c
	}
	return c, true
}

// Lookup returns the in-flight call for key without creating one.
func (r *Registry[T]) Lookup(key string) (*Call[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.inflight[key]
	return c, ok
}

// Finish resolves the call. Successes are remembered and the in-flight entry
// lingers for the grace period; failures are evicted at once so callers can retry.
func (r *Registry[T]) Finish(key string, c *Call[T], val T, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
	}
	c.val, c.err = val, err
	close(c.done)

	if r.closed {
		return
	}
	if err == nil {
		r.rememberLocked(key, val)
	}
	if err != nil || r.opts.InflightGrace <= 0 {
		r.evictLocked(key, c)
		return
	}

	if t, ok := r.timers[key]; ok {
		t.Stop()
	}
	r.timers[key] = time.AfterFunc(r.opts.InflightGrace, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.evictLocked(key, c)
	})
}

func (r *Registry[T]) evictLocked(key string, c *Call[T]) {
	if cur, ok := r.inflight[key]; ok && cur == c {
		delete(r.inflight, key)
		if t, ok := r.timers[key]; ok {
			t.Stop()
			delete(r.timers, key)
		}
	}
}

func (r *Registry[T]) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inflight)
}

// Close stops pending timers and clears both maps. Calls still running keep
// their futures, so their waiters are released normally.
func (r *Registry[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, t := range r.timers {
		t.Stop()
		delete(r.timers, k)
	}
	clear(r.inflight)
	clear(r.recent)
	r.closed = true
}
