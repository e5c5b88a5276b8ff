package order_test

import (
	"testing"
	"time"

	"coworking-pos/internal/domain/order"
	"coworking-pos/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(qty int, price, cost string) order.Item {
	return order.Item{
		ProductID: uuid.New(),
		Name:      "Latte",
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
		UnitCost:  decimal.RequireFromString(cost),
	}
}

func TestNewOrder(t *testing.T) {
	now := time.Now()
	op := uuid.New()

	o, err := order.NewOrder([]order.Item{item(2, "3.50", "1.25"), item(1, "2.00", "0.50")}, payment.MethodCash, op, now)
	require.NoError(t, err)
	assert.Equal(t, "9.00", o.Total().StringFixed(2))
	assert.Equal(t, "3.00", o.CostTotal().StringFixed(2))
	assert.Equal(t, "6.00", o.Profit().StringFixed(2))

	testCases := []struct {
		name   string
		items  []order.Item
		method payment.Method
		op     uuid.UUID
		errIs  error
	}{
		{name: "no items", items: nil, method: payment.MethodCash, op: op, errIs: order.ErrNoItems},
		{name: "zero quantity", items: []order.Item{item(0, "1", "0")}, method: payment.MethodCash, op: op, errIs: order.ErrInvalidQuantity},
		{name: "negative price", items: []order.Item{item(1, "-1", "0")}, method: payment.MethodCash, op: op, errIs: order.ErrInvalidUnitPrice},
		{name: "bad method", items: []order.Item{item(1, "1", "0")}, method: "crypto", op: op, errIs: payment.ErrInvalidMethod},
		{name: "no operator", items: []order.Item{item(1, "1", "0")}, method: payment.MethodCard, op: uuid.Nil, errIs: order.ErrMissingOperator},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := order.NewOrder(tc.items, tc.method, tc.op, now)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}
