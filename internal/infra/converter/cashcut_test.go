package converter_test

import (
	"testing"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/domain/payment"
	"coworking-pos/internal/infra/converter"
	"coworking-pos/internal/infra/sqlc"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashCutRowRoundTrip(t *testing.T) {
	end := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	want := &cashcut.CashCut{
		ID:          uuid.New(),
		Kind:        cashcut.KindScheduled,
		PeriodStart: end.Add(-4 * time.Hour),
		PeriodEnd:   end,
		Summary: cashcut.Summary{
			TotalIncome:      decimal.RequireFromString("310.75"),
			TotalCost:        decimal.RequireFromString("90.25"),
			TotalProfit:      decimal.RequireFromString("220.50"),
			ExpenseTotal:     decimal.RequireFromString("20"),
			NetProfit:        decimal.RequireFromString("200.50"),
			TransactionCount: 4,
			PaymentMethods: []cashcut.MethodTotal{
				{Method: payment.MethodCard, Amount: decimal.RequireFromString("200"), Count: 2},
				{Method: payment.MethodCash, Amount: decimal.RequireFromString("110.75"), Count: 2},
			},
			ServiceTypes: []cashcut.ServiceTotal{
				{ServiceType: cashcut.ServiceProductSale, Amount: decimal.RequireFromString("310.75"), Count: 4},
			},
			TopProducts: []cashcut.ProductTotal{
				{ProductID: uuid.New(), Name: "Latte", Quantity: 5, Revenue: decimal.RequireFromString("225")},
			},
			Hourly: []cashcut.HourTotal{{Hour: 17, Amount: decimal.RequireFromString("310.75"), Count: 4}},
		},
		IdempotencyKey: "cc_roundtrip",
		Notes:          "scheduled",
		CreatedBy:      uuid.New(),
		CreatedAt:      end,
	}

	params, err := converter.CashCutToInsertParams(want)
	require.NoError(t, err)

	got, err := converter.CashCutFromRow(sqlc.CashCuts(params))
	require.NoError(t, err)

	opts := cmp.Options{
		cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCashCutFromRow_EmptyBreakdowns(t *testing.T) {
	got, err := converter.CashCutFromRow(sqlc.CashCuts{ID: uuid.New(), Kind: "manual"})
	require.NoError(t, err)

	assert.NotNil(t, got.PaymentMethods)
	assert.Empty(t, got.PaymentMethods)
	assert.Empty(t, got.Hourly)
	assert.True(t, got.TotalIncome.IsZero())
}

func TestCashCutFromRow_BadBreakdown(t *testing.T) {
	_, err := converter.CashCutFromRow(sqlc.CashCuts{PaymentMethodBreakdown: []byte("{")})
	assert.Error(t, err)
}
