package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	reqdto "coworking-pos/internal/handler/dto/request"
	resdto "coworking-pos/internal/handler/dto/response"

	"github.com/google/uuid"
)

func (c *Client) Login(ctx context.Context, email, password string) (*resdto.LoginResponse, error) {
	var out resdto.LoginResponse
	if _, err := c.Send(ctx, http.MethodPost, "/api/auth/login", reqdto.LoginRequest{Email: email, Password: password}, &out, nil); err != nil {
		return nil, err
	}
	c.SetToken(out.AccessToken)
	return &out, nil
}

func (c *Client) Products(ctx context.Context, activeOnly bool) ([]*resdto.ProductResponse, error) {
	endpoint := "/api/products"
	if activeOnly {
		endpoint += "?active_only=true"
	}
	var out []*resdto.ProductResponse
	if err := c.GetStaleWhileRevalidate(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id uuid.UUID) (*resdto.ProductResponse, error) {
	var out resdto.ProductResponse
	if err := c.Get(ctx, "/api/products/"+id.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context, from, to time.Time, limit int) ([]*resdto.OrderResponse, error) {
	var out []*resdto.OrderResponse
	if err := c.Get(ctx, periodEndpoint("/api/orders", from, to, limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder sends idempotencyKey when set so a retry cannot sell twice.
func (c *Client) CreateOrder(ctx context.Context, req reqdto.CreateOrderRequest, idempotencyKey string) (*resdto.OrderResponse, bool, error) {
	var header http.Header
	if idempotencyKey != "" {
		header = http.Header{HeaderIdempotencyKey: {idempotencyKey}}
	}
	var out resdto.OrderResponse
	res, err := c.Send(ctx, http.MethodPost, "/api/orders", req, &out, header)
	if err != nil {
		return nil, false, err
	}
	return &out, res.Replayed(), nil
}

func (c *Client) Expenses(ctx context.Context, from, to time.Time, limit int) ([]*resdto.ExpenseResponse, error) {
	var out []*resdto.ExpenseResponse
	if err := c.Get(ctx, periodEndpoint("/api/expenses", from, to, limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateExpense(ctx context.Context, req reqdto.CreateExpenseRequest) (*resdto.ExpenseResponse, error) {
	var out resdto.ExpenseResponse
	if _, err := c.Send(ctx, http.MethodPost, "/api/expenses", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// CoworkingSessions lists sessions; an empty status lists all of them.
func (c *Client) CoworkingSessions(ctx context.Context, status string) ([]*resdto.CoworkingSessionResponse, error) {
	endpoint := "/api/coworking-sessions"
	if status != "" {
		endpoint += "?" + url.Values{"status": {status}}.Encode()
	}
	var out []*resdto.CoworkingSessionResponse
	if err := c.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StartCoworkingSession(ctx context.Context, req reqdto.StartSessionRequest) (*resdto.CoworkingSessionResponse, error) {
	var out resdto.CoworkingSessionResponse
	if _, err := c.Send(ctx, http.MethodPost, "/api/coworking-sessions", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CloseCoworkingSession(ctx context.Context, id uuid.UUID, paymentMethod string) (*resdto.CoworkingSessionResponse, error) {
	var out resdto.CoworkingSessionResponse
	endpoint := "/api/coworking-sessions/" + id.String() + "/close"
	if _, err := c.Send(ctx, http.MethodPost, endpoint, reqdto.CloseSessionRequest{PaymentMethod: paymentMethod}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CashCuts(ctx context.Context, limit int) ([]*resdto.CashCutResponse, error) {
	endpoint := "/api/cash-cuts"
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}
	var out []*resdto.CashCutResponse
	if err := c.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CashCut(ctx context.Context, id uuid.UUID) (*resdto.CashCutResponse, error) {
	var out resdto.CashCutResponse
	if err := c.Get(ctx, "/api/cash-cuts/"+id.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCashCut triggers a manual cut. replayed reports that the server
// returned a cut it had already stored for the same request.
func (c *Client) CreateCashCut(ctx context.Context, notes string) (cut *resdto.CashCutResponse, replayed bool, err error) {
	var out resdto.CashCutResponse
	res, err := c.Send(ctx, http.MethodPost, "/api/cash-cuts", reqdto.CreateCashCutRequest{Notes: notes}, &out, nil)
	if err != nil {
		return nil, false, err
	}
	return &out, res.Replayed(), nil
}

func periodEndpoint(path string, from, to time.Time, limit int) string {
	q := url.Values{
		"from": {from.Format(time.RFC3339)},
		"to":   {to.Format(time.RFC3339)},
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return path + "?" + q.Encode()
}
