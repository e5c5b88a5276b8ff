package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Result describes a mutation response.
type Result struct {
	StatusCode int
	Header     http.Header
}

func (r *Result) Replayed() bool {
	return r.Header.Get(HeaderIdempotentReplayed) == "true"
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithDependents makes a successful mutation of family also invalidate the
// listed prefixes, e.g. orders change product stock.
func WithDependents(family string, prefixes ...string) Option {
	return func(c *Client) { c.dependents[family] = append(c.dependents[family], prefixes...) }
}

// Client talks to the POS REST API through a shared Cache.
type Client struct {
	baseURL    string
	http       *http.Client
	cache      *Cache
	dependents map[string][]string

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, cache *Cache, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		dependents: map[string][]string{
			"/api/orders": {"/api/products"},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Cache() *Cache {
	return c.cache
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Get decodes a cached or freshly fetched GET response into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	body, err := c.cache.Get(ctx, endpoint, c.fetcher(endpoint))
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) GetStaleWhileRevalidate(ctx context.Context, endpoint string, out any) error {
	body, err := c.cache.GetStaleWhileRevalidate(ctx, endpoint, c.fetcher(endpoint))
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Send performs an uncached request. A successful mutation invalidates the
// endpoint's resource family and its dependents.
func (c *Client) Send(ctx context.Context, method, endpoint string, body, out any, header http.Header) (*Result, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, endpoint, payload)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	if isMutation(method) {
		c.invalidateFamily(endpoint)
	}

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if err := decode(raw, out); err != nil {
			return nil, err
		}
	}
	return &Result{StatusCode: resp.StatusCode, Header: resp.Header}, nil
}

func (c *Client) invalidateFamily(endpoint string) {
	family := resourceFamily(endpoint)
	c.cache.InvalidatePrefix(family)
	for _, prefix := range c.dependents[family] {
		c.cache.InvalidatePrefix(prefix)
	}
}

func (c *Client) fetcher(endpoint string) FetchFunc {
	return func(ctx context.Context, cached *Entry) (*Entry, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		if cached != nil && cached.ETag != "" {
			req.Header.Set("If-None-Match", cached.ETag)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotModified && cached != nil:
			return &Entry{Body: cached.Body, ETag: cached.ETag}, nil
		case resp.StatusCode >= 200 && resp.StatusCode <= 299:
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("read response: %w", err)
			}
			return &Entry{Body: body, ETag: resp.Header.Get("ETag")}, nil
		default:
			return nil, decodeAPIError(resp)
		}
	}
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func decode(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil {
			apiErr.RetryAfter = time.Duration(secs) * time.Second
		}
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		apiErr.Message = payload.Error.Message
	}
	return apiErr
}
