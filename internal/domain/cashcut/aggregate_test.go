package cashcut_test

import (
	"testing"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/domain/payment"
	"coworking-pos/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAggregate(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	coffee := uuid.New()
	bagel := uuid.New()

	t.Run("totals and breakdowns", func(t *testing.T) {
		ledger := builder.NewLedgerBuilder(base).
			Sale(payment.MethodCash, 5*time.Minute,
				builder.SaleLine{ProductID: coffee, Name: "Coffee", Quantity: 2, UnitPrice: "3.50", UnitCost: "1.00"}).
			Sale(payment.MethodCard, 70*time.Minute,
				builder.SaleLine{ProductID: bagel, Name: "Bagel", Quantity: 1, UnitPrice: "4.00", UnitCost: "1.50"},
				builder.SaleLine{ProductID: coffee, Name: "Coffee", Quantity: 1, UnitPrice: "3.50", UnitCost: "1.00"}).
			Coworking(payment.MethodCard, 80*time.Minute, "12.00").
			Expense("5.25").
			Build()

		s, err := cashcut.Aggregate(ledger, time.UTC, 5)
		require.NoError(t, err)

		assert.True(t, dec("26.50").Equal(s.TotalIncome), s.TotalIncome.String())
		assert.True(t, dec("4.50").Equal(s.TotalCost), s.TotalCost.String())
		assert.True(t, dec("22.00").Equal(s.TotalProfit), s.TotalProfit.String())
		assert.True(t, dec("5.25").Equal(s.ExpenseTotal))
		assert.True(t, dec("16.75").Equal(s.NetProfit), s.NetProfit.String())
		assert.Equal(t, 3, s.TransactionCount)

		require.Len(t, s.PaymentMethods, 2)
		assert.Equal(t, payment.MethodCard, s.PaymentMethods[0].Method)
		assert.True(t, dec("19.50").Equal(s.PaymentMethods[0].Amount))
		assert.Equal(t, 2, s.PaymentMethods[0].Count)
		assert.Equal(t, payment.MethodCash, s.PaymentMethods[1].Method)

		require.Len(t, s.ServiceTypes, 2)
		assert.Equal(t, cashcut.ServiceCoworking, s.ServiceTypes[0].ServiceType)
		assert.Equal(t, cashcut.ServiceProductSale, s.ServiceTypes[1].ServiceType)
		assert.Equal(t, 2, s.ServiceTypes[1].Count)

		require.Len(t, s.Hourly, 2)
		assert.Equal(t, 9, s.Hourly[0].Hour)
		assert.Equal(t, 1, s.Hourly[0].Count)
		assert.Equal(t, 10, s.Hourly[1].Hour)
		assert.Equal(t, 2, s.Hourly[1].Count)

		require.Len(t, s.TopProducts, 2)
		assert.Equal(t, coffee, s.TopProducts[0].ProductID)
		assert.Equal(t, 3, s.TopProducts[0].Quantity)
		assert.True(t, dec("10.50").Equal(s.TopProducts[0].Revenue))
		assert.Equal(t, bagel, s.TopProducts[1].ProductID)
	})

	t.Run("empty ledger yields zero summary", func(t *testing.T) {
		s, err := cashcut.Aggregate(cashcut.Ledger{}, time.UTC, 5)
		require.NoError(t, err)
		assert.True(t, s.TotalIncome.IsZero())
		assert.True(t, s.NetProfit.IsZero())
		assert.Equal(t, 0, s.TransactionCount)
		assert.Empty(t, s.PaymentMethods)
		assert.Empty(t, s.TopProducts)
	})

	t.Run("top products are capped", func(t *testing.T) {
		b := builder.NewLedgerBuilder(base)
		for i := 0; i < 8; i++ {
			b.Sale(payment.MethodCash, time.Duration(i)*time.Minute,
				builder.SaleLine{ProductID: uuid.New(), Name: "P", Quantity: i + 1, UnitPrice: "1.00", UnitCost: "0.10"})
		}
		s, err := cashcut.Aggregate(b.Build(), time.UTC, 5)
		require.NoError(t, err)
		require.Len(t, s.TopProducts, 5)
		assert.Equal(t, 8, s.TopProducts[0].Quantity)
		assert.Equal(t, 4, s.TopProducts[4].Quantity)
	})

	t.Run("hours follow the business time zone", func(t *testing.T) {
		loc := time.FixedZone("CST", -6*60*60)
		ledger := builder.NewLedgerBuilder(base).Coworking(payment.MethodCash, 0, "10.00").Build()

		s, err := cashcut.Aggregate(ledger, loc, 5)
		require.NoError(t, err)
		require.Len(t, s.Hourly, 1)
		assert.Equal(t, 3, s.Hourly[0].Hour)
	})

	t.Run("invalid transaction is rejected", func(t *testing.T) {
		ledger := cashcut.Ledger{Transactions: []cashcut.Transaction{{
			ID:          uuid.New(),
			ServiceType: "rental",
			Method:      payment.MethodCash,
			OccurredAt:  base,
			Total:       dec("1"),
			Cost:        decimal.Zero,
		}}}
		_, err := cashcut.Aggregate(ledger, time.UTC, 5)
		assert.ErrorIs(t, err, cashcut.ErrInvalidTransaction)
	})

	t.Run("same ledger renders identically", func(t *testing.T) {
		ledger := builder.NewLedgerBuilder(base).
			Sale(payment.MethodCash, 0, builder.SaleLine{ProductID: coffee, Name: "Coffee", Quantity: 1, UnitPrice: "2", UnitCost: "1"}).
			Sale(payment.MethodTransfer, 0, builder.SaleLine{ProductID: bagel, Name: "Bagel", Quantity: 1, UnitPrice: "2", UnitCost: "1"}).
			Build()
		first, err := cashcut.Aggregate(ledger, time.UTC, 5)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := cashcut.Aggregate(ledger, time.UTC, 5)
			require.NoError(t, err)
			assert.Equal(t, first.PaymentMethods, again.PaymentMethods)
			assert.Equal(t, first.TopProducts, again.TopProducts)
		}
	})
}
