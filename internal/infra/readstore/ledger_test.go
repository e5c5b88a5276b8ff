package readstore

import (
	"context"
	"testing"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/domain/payment"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedgerQueries struct {
	mock.Mock
}

func (m *MockLedgerQueries) ListSaleLinesInPeriod(ctx context.Context, db sqlc.DBTX, arg sqlc.PeriodParams) ([]sqlc.ListSaleLinesInPeriodRow, error) {
	args := m.Called(ctx, db, arg)
	rows, _ := args.Get(0).([]sqlc.ListSaleLinesInPeriodRow)
	return rows, args.Error(1)
}

func (m *MockLedgerQueries) ListClosedSessionsInPeriod(ctx context.Context, db sqlc.DBTX, arg sqlc.PeriodParams) ([]sqlc.ListClosedSessionsInPeriodRow, error) {
	args := m.Called(ctx, db, arg)
	rows, _ := args.Get(0).([]sqlc.ListClosedSessionsInPeriodRow)
	return rows, args.Error(1)
}

func (m *MockLedgerQueries) ListExpenseAmountsInPeriod(ctx context.Context, db sqlc.DBTX, arg sqlc.PeriodParams) ([]pgtype.Numeric, error) {
	args := m.Called(ctx, db, arg)
	rows, _ := args.Get(0).([]pgtype.Numeric)
	return rows, args.Error(1)
}

// readOnlyUoW runs the callback directly with a nil connection.
type readOnlyUoW struct {
	calls int
}

func (u *readOnlyUoW) Within(context.Context, func(context.Context, shared.Tx) error) error {
	panic("not used")
}

func (u *readOnlyUoW) WithinReadOnly(ctx context.Context, fn func(context.Context, sqlc.DBTX) error) error {
	u.calls++
	return fn(ctx, nil)
}

func (u *readOnlyUoW) WithDB(ctx context.Context, fn func(context.Context, sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func num(s string) pgtype.Numeric {
	return pgconv.DecimalToNumeric(decimal.RequireFromString(s))
}

func TestLedgerReader_Ledger(t *testing.T) {
	start := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	period := cashcut.Period{Start: start, End: start.Add(12 * time.Hour)}
	arg := sqlc.PeriodParams{Start: pgconv.TimeToPgtype(period.Start), End: pgconv.TimeToPgtype(period.End)}

	orderID := uuid.New()
	coffee, bagel := uuid.New(), uuid.New()
	sessionID := uuid.New()

	t.Run("folds order lines and sessions into transactions", func(t *testing.T) {
		q := new(MockLedgerQueries)
		q.On("ListSaleLinesInPeriod", mock.Anything, mock.Anything, arg).Return([]sqlc.ListSaleLinesInPeriodRow{
			{OrderID: orderID, PaymentMethod: "cash", CreatedAt: pgconv.TimeToPgtype(start.Add(time.Hour)),
				Total: num("85"), CostTotal: num("30"), ProductID: coffee, Name: "Coffee", Quantity: 2, UnitPrice: num("25")},
			{OrderID: orderID, PaymentMethod: "cash", CreatedAt: pgconv.TimeToPgtype(start.Add(time.Hour)),
				Total: num("85"), CostTotal: num("30"), ProductID: bagel, Name: "Bagel", Quantity: 1, UnitPrice: num("35")},
		}, nil)
		q.On("ListClosedSessionsInPeriod", mock.Anything, mock.Anything, arg).Return([]sqlc.ListClosedSessionsInPeriodRow{
			{ID: sessionID, PaymentMethod: pgconv.StringToPgtype("card"), EndedAt: pgconv.TimeToPgtype(start.Add(3 * time.Hour)), Total: num("120")},
		}, nil)
		q.On("ListExpenseAmountsInPeriod", mock.Anything, mock.Anything, arg).Return([]pgtype.Numeric{num("15.5")}, nil)

		uow := &readOnlyUoW{}
		ledger, err := NewLedgerReader(q, uow).Ledger(context.Background(), period)
		require.NoError(t, err)

		assert.Equal(t, 1, uow.calls)
		require.Len(t, ledger.Transactions, 2)

		sale := ledger.Transactions[0]
		assert.Equal(t, orderID, sale.ID)
		assert.Equal(t, cashcut.ServiceProductSale, sale.ServiceType)
		assert.Equal(t, payment.MethodCash, sale.Method)
		assert.True(t, sale.Total.Equal(decimal.NewFromInt(85)))
		require.Len(t, sale.Items, 2)
		assert.True(t, sale.Items[0].Revenue.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "Bagel", sale.Items[1].Name)

		session := ledger.Transactions[1]
		assert.Equal(t, cashcut.ServiceCoworking, session.ServiceType)
		assert.Equal(t, payment.MethodCard, session.Method)
		assert.True(t, session.Cost.IsZero())

		require.Len(t, ledger.Expenses, 1)
		assert.True(t, ledger.Expenses[0].Equal(decimal.RequireFromString("15.5")))
		q.AssertExpectations(t)
	})

	t.Run("query failure is a repository error", func(t *testing.T) {
		q := new(MockLedgerQueries)
		q.On("ListSaleLinesInPeriod", mock.Anything, mock.Anything, arg).Return(nil, assert.AnError)

		_, err := NewLedgerReader(q, &readOnlyUoW{}).Ledger(context.Background(), period)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
