package export_test

import (
	"bytes"
	"testing"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/domain/payment"
	"coworking-pos/internal/infra/export"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCashCutWorkbook_Render(t *testing.T) {
	end := time.Date(2025, 3, 14, 21, 30, 0, 0, time.UTC)
	cut := &cashcut.CashCut{
		ID:          uuid.New(),
		Kind:        cashcut.KindManual,
		PeriodStart: end.Add(-12 * time.Hour),
		PeriodEnd:   end,
		Summary: cashcut.Summary{
			TotalIncome:      decimal.RequireFromString("150.50"),
			TotalCost:        decimal.RequireFromString("40"),
			TotalProfit:      decimal.RequireFromString("110.50"),
			ExpenseTotal:     decimal.RequireFromString("10"),
			NetProfit:        decimal.RequireFromString("100.50"),
			TransactionCount: 3,
			PaymentMethods: []cashcut.MethodTotal{
				{Method: payment.MethodCash, Amount: decimal.RequireFromString("100.50"), Count: 2},
				{Method: payment.MethodCard, Amount: decimal.RequireFromString("50"), Count: 1},
			},
			Hourly: []cashcut.HourTotal{{Hour: 9, Amount: decimal.RequireFromString("150.50"), Count: 3}},
		},
		IdempotencyKey: "cc_test",
		Notes:          "closing shift",
		CreatedBy:      uuid.New(),
		CreatedAt:      end,
	}

	data, err := export.NewCashCutWorkbook(time.UTC).Render(cut)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Summary", "Payment methods", "Service types", "Top products", "Hourly"}, f.GetSheetList())

	notes, err := f.GetCellValue("Summary", "B12")
	require.NoError(t, err)
	assert.Equal(t, "closing shift", notes)

	rows, err := f.GetRows("Payment methods")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"cash", "100.5", "2"}, rows[1])

	hour, err := f.GetCellValue("Hourly", "A2")
	require.NoError(t, err)
	assert.Equal(t, "09:00", hour)
}

func TestFileName(t *testing.T) {
	cut := &cashcut.CashCut{PeriodEnd: time.Date(2025, 3, 14, 21, 30, 5, 0, time.UTC)}
	assert.Equal(t, "cash-cut-20250314-213005.xlsx", export.FileName(cut))
}
