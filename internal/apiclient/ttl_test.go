package apiclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLTableLookup(t *testing.T) {
	table := DefaultTTLs().With(TTLTable{"/api/products/featured": 10 * time.Minute})

	tests := []struct {
		endpoint string
		want     time.Duration
	}{
		{"/api/products", 5 * time.Minute},
		{"/api/products/7d0f", 5 * time.Minute},
		{"/api/products/featured?limit=3", 10 * time.Minute},
		{"/api/expenses?from=a&to=b", 2 * time.Minute},
		{"/api/cash-cuts/1", time.Minute},
		{"/api/unknown", DefaultTTL},
		{"/api/orders-archive", DefaultTTL},
		{"/api/products-legacy/1", DefaultTTL},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Lookup(tt.endpoint, DefaultTTL))
		})
	}
}

func TestHasPathPrefix(t *testing.T) {
	assert.True(t, hasPathPrefix("/api/orders", "/api/orders"))
	assert.True(t, hasPathPrefix("/api/orders/42", "/api/orders"))
	assert.True(t, hasPathPrefix("/api/orders?from=a", "/api/orders"))
	assert.True(t, hasPathPrefix("/api/orders/42", "/api/orders/"))
	assert.False(t, hasPathPrefix("/api/orders-archive", "/api/orders"))
	assert.False(t, hasPathPrefix("/api/order", "/api/orders"))
}

func TestResourceFamily(t *testing.T) {
	assert.Equal(t, "/api/orders", resourceFamily("/api/orders"))
	assert.Equal(t, "/api/orders", resourceFamily("/api/orders/42"))
	assert.Equal(t, "/api/coworking-sessions", resourceFamily("/api/coworking-sessions/42/close"))
	assert.Equal(t, "/api/cash-cuts", resourceFamily("/api/cash-cuts?limit=5"))
}
