package coworking_test

import (
	"testing"
	"time"

	"coworking-pos/internal/domain/coworking"
	"coworking-pos/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeFor(t *testing.T) {
	rate := decimal.RequireFromString("60")
	testCases := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "zero", d: 0, want: "0"},
		{name: "partial minute rounds up", d: 10 * time.Second, want: "1"},
		{name: "exact hour", d: time.Hour, want: "60"},
		{name: "hour and a bit", d: time.Hour + time.Second, want: "61"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := coworking.ChargeFor(tc.d, rate)
			assert.True(t, decimal.RequireFromString(tc.want).Equal(got), got.String())
		})
	}

	t.Run("rounds to cents", func(t *testing.T) {
		got := coworking.ChargeFor(7*time.Minute, decimal.RequireFromString("25"))
		assert.Equal(t, "2.92", got.StringFixed(2))
	})
}

func TestSessionLifecycle(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	s, err := coworking.StartSession("  Ana  ", decimal.RequireFromString("40"), uuid.New(), start)
	require.NoError(t, err)
	assert.Equal(t, "Ana", s.CustomerName())
	assert.Equal(t, coworking.StatusOpen, s.Status())

	require.NoError(t, s.Close(start.Add(90*time.Minute), payment.MethodCard))
	assert.Equal(t, coworking.StatusClosed, s.Status())
	assert.Equal(t, "60.00", s.Total().StringFixed(2))
	require.NotNil(t, s.Method())
	assert.Equal(t, payment.MethodCard, *s.Method())

	assert.ErrorIs(t, s.Close(start.Add(2*time.Hour), payment.MethodCash), coworking.ErrAlreadyClosed)

	_, err = coworking.StartSession("", decimal.RequireFromString("40"), uuid.New(), start)
	assert.ErrorIs(t, err, coworking.ErrInvalidCustomer)
	_, err = coworking.StartSession("Ana", decimal.Zero, uuid.New(), start)
	assert.ErrorIs(t, err, coworking.ErrInvalidRate)
}
