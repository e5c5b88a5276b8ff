package apiclient

import (
	"strings"
	"time"
)

const DefaultTTL = 30 * time.Second

// TTLTable maps an endpoint prefix to how long its responses stay fresh.
type TTLTable map[string]time.Duration

// DefaultTTLs caches the catalog longest and live sales data shortest.
func DefaultTTLs() TTLTable {
	return TTLTable{
		"/api/products":           5 * time.Minute,
		"/api/expenses":           2 * time.Minute,
		"/api/coworking-sessions": 30 * time.Second,
		"/api/orders":             30 * time.Second,
		"/api/cash-cuts":          time.Minute,
	}
}

// Lookup returns the TTL of the longest matching prefix, or fallback.
func (t TTLTable) Lookup(endpoint string, fallback time.Duration) time.Duration {
	path := endpoint
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	best, ttl := -1, fallback
	for prefix, d := range t {
		if len(prefix) > best && hasPathPrefix(path, prefix) {
			best, ttl = len(prefix), d
		}
	}
	return ttl
}

// hasPathPrefix reports whether endpoint is prefix or lies below it, so
// /api/orders matches /api/orders/7 and /api/orders?from=x but not
// /api/orders-archive.
func hasPathPrefix(endpoint, prefix string) bool {
	if !strings.HasPrefix(endpoint, prefix) {
		return false
	}
	if len(endpoint) == len(prefix) || strings.HasSuffix(prefix, "/") {
		return true
	}
	switch endpoint[len(prefix)] {
	case '/', '?', '#':
		return true
	}
	return false
}

// With returns a copy with the given entries overriding the receiver's.
func (t TTLTable) With(overrides TTLTable) TTLTable {
	out := make(TTLTable, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// resourceFamily keeps the first two path segments: /api/orders/42 -> /api/orders.
func resourceFamily(endpoint string) string {
	path := endpoint
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 2 {
		segments = segments[:2]
	}
	return "/" + strings.Join(segments, "/")
}
