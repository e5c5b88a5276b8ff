package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"coworking-pos/internal/apiclient"
	resdto "coworking-pos/internal/handler/dto/response"
	"coworking-pos/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu       sync.Mutex
	hits     map[string]int
	notMod   int
	products []resdto.ProductResponse
	cut      resdto.CashCutResponse
	cutCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		hits: make(map[string]int),
		products: []resdto.ProductResponse{
			{ID: uuid.New(), Name: "Espresso", Price: decimal.RequireFromString("35"), Stock: 10, Active: true},
		},
		cut: resdto.CashCutResponse{ID: uuid.New(), Kind: "manual", TotalIncome: decimal.RequireFromString("100")},
	}
}

func (f *fakeAPI) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeAPI) notModified() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notMod
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.Method+" "+r.URL.Path]++
	f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer token-1" && r.URL.Path != "/api/auth/login" {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "Unauthorized"}})
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
		_ = json.NewEncoder(w).Encode(resdto.LoginResponse{AccessToken: "token-1", TokenType: "Bearer", ExpiresIn: 3600})
	case r.Method == http.MethodGet && r.URL.Path == "/api/products":
		const etag = `W/"products-v1"`
		if r.Header.Get("If-None-Match") == etag {
			f.mu.Lock()
			f.notMod++
			f.mu.Unlock()
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
		_ = json.NewEncoder(w).Encode(f.products)
	case r.Method == http.MethodPost && r.URL.Path == "/api/orders":
		if r.Header.Get(apiclient.HeaderIdempotencyKey) == "retry-1" {
			w.Header().Set(apiclient.HeaderIdempotentReplayed, "true")
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusCreated)
		}
		_ = json.NewEncoder(w).Encode(resdto.OrderResponse{ID: uuid.New(), PaymentMethod: "cash"})
	case r.Method == http.MethodGet && r.URL.Path == "/api/expenses":
		_ = json.NewEncoder(w).Encode([]resdto.ExpenseResponse{})
	case r.Method == http.MethodPost && r.URL.Path == "/api/cash-cuts":
		f.mu.Lock()
		f.cutCalls++
		n := f.cutCalls
		f.mu.Unlock()
		switch n {
		case 1:
			w.WriteHeader(http.StatusCreated)
		case 2:
			w.Header().Set(apiclient.HeaderIdempotentReplayed, "true")
		default:
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "Cash cut is still being processed"}})
			return
		}
		_ = json.NewEncoder(w).Encode(f.cut)
	case r.Method == http.MethodGet && r.URL.Path == "/api/cash-cuts":
		_ = json.NewEncoder(w).Encode([]resdto.CashCutResponse{f.cut})
	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "Not found"}})
	}
}

func newTestClient(t *testing.T, clk clock.Clock) (*apiclient.Client, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cache := apiclient.NewCache(apiclient.CacheOptions{Clock: clk})
	t.Cleanup(cache.Close)

	client := apiclient.NewClient(srv.URL, cache, apiclient.WithToken("token-1"))
	return client, api
}

func TestClientGet(t *testing.T) {
	t.Run("cached products skip the network", func(t *testing.T) {
		client, api := newTestClient(t, clock.NewMockClock(t0))

		for i := 0; i < 3; i++ {
			products, err := client.Products(context.Background(), false)
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, "Espresso", products[0].Name)
			assert.True(t, products[0].Price.Equal(decimal.RequireFromString("35")))
		}
		assert.Equal(t, 1, api.count("GET /api/products"))
	})

	t.Run("expired entry is revalidated with its etag", func(t *testing.T) {
		clk := clock.NewMockClock(t0)
		client, api := newTestClient(t, clk)

		var first []resdto.ProductResponse
		require.NoError(t, client.Get(context.Background(), "/api/products", &first))

		clk.Add(6 * time.Minute)
		var second []resdto.ProductResponse
		require.NoError(t, client.Get(context.Background(), "/api/products", &second))

		assert.Equal(t, first, second)
		assert.Equal(t, 2, api.count("GET /api/products"))
		assert.Equal(t, 1, api.notModified())

		e, ok := client.Cache().Peek("/api/products")
		require.True(t, ok)
		assert.Equal(t, t0.Add(6*time.Minute), e.FetchedAt)
	})

	t.Run("server errors come back as APIError", func(t *testing.T) {
		client, _ := newTestClient(t, clock.NewMockClock(t0))

		_, err := client.CashCut(context.Background(), uuid.New())
		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "Not found", apiErr.Message)
		assert.Equal(t, 0, client.Cache().Len())
	})

	t.Run("login stores the token", func(t *testing.T) {
		client, _ := newTestClient(t, clock.NewMockClock(t0))
		client.SetToken("")

		_, err := client.Expenses(context.Background(), t0.Add(-time.Hour), t0, 0)
		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

		_, err = client.Login(context.Background(), "cashier@example.com", "password123")
		require.NoError(t, err)
		_, err = client.Expenses(context.Background(), t0.Add(-time.Hour), t0, 0)
		assert.NoError(t, err)
	})
}

func TestClientMutations(t *testing.T) {
	t.Run("creating an order invalidates orders and products", func(t *testing.T) {
		client, api := newTestClient(t, clock.NewMockClock(t0))
		ctx := context.Background()

		_, err := client.Products(ctx, false)
		require.NoError(t, err)
		_, err = client.Expenses(ctx, t0.Add(-time.Hour), t0, 10)
		require.NoError(t, err)
		require.Equal(t, 2, client.Cache().Len())

		order, replayed, err := client.CreateOrder(ctx, reqOrder(), "")
		require.NoError(t, err)
		assert.False(t, replayed)
		assert.Equal(t, "cash", order.PaymentMethod)

		_, ok := client.Cache().Peek("/api/products")
		assert.False(t, ok)
		assert.Equal(t, 1, client.Cache().Len(), "expenses stay cached")

		_, err = client.Products(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 2, api.count("GET /api/products"))
	})

	t.Run("replayed order is reported", func(t *testing.T) {
		client, _ := newTestClient(t, clock.NewMockClock(t0))

		_, replayed, err := client.CreateOrder(context.Background(), reqOrder(), "retry-1")
		require.NoError(t, err)
		assert.True(t, replayed)
	})

	t.Run("cash cut create, replay and in-progress", func(t *testing.T) {
		client, api := newTestClient(t, clock.NewMockClock(t0))
		ctx := context.Background()

		cuts, err := client.CashCuts(ctx, 0)
		require.NoError(t, err)
		require.Len(t, cuts, 1)

		cut, replayed, err := client.CreateCashCut(ctx, "end of shift")
		require.NoError(t, err)
		assert.False(t, replayed)
		assert.Equal(t, api.cut.ID, cut.ID)
		assert.Equal(t, 0, client.Cache().Len())

		again, replayed, err := client.CreateCashCut(ctx, "end of shift")
		require.NoError(t, err)
		assert.True(t, replayed)
		assert.Equal(t, cut.ID, again.ID)

		_, _, err = client.CreateCashCut(ctx, "end of shift")
		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
		assert.Equal(t, 2*time.Second, apiErr.RetryAfter)
	})
}
