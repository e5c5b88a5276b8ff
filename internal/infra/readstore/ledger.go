package readstore

import (
	"context"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/domain/payment"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/pkg/pgconv"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type LedgerQueries interface {
	ListSaleLinesInPeriod(ctx context.Context, db sqlc.DBTX, arg sqlc.PeriodParams) ([]sqlc.ListSaleLinesInPeriodRow, error)
	ListClosedSessionsInPeriod(ctx context.Context, db sqlc.DBTX, arg sqlc.PeriodParams) ([]sqlc.ListClosedSessionsInPeriodRow, error)
	ListExpenseAmountsInPeriod(ctx context.Context, db sqlc.DBTX, arg sqlc.PeriodParams) ([]pgtype.Numeric, error)
}

// LedgerReader loads sales, closed sessions and expenses of a period from one
// read-only snapshot so the three lists agree with each other.
type LedgerReader struct {
	queries LedgerQueries
	uow     shared.UnitOfWork
}

func NewLedgerReader(queries LedgerQueries, uow shared.UnitOfWork) *LedgerReader {
	return &LedgerReader{
		queries: queries,
		uow:     uow,
	}
}

func (r *LedgerReader) Ledger(ctx context.Context, period cashcut.Period) (cashcut.Ledger, error) {
	arg := sqlc.PeriodParams{
		Start: pgconv.TimeToPgtype(period.Start),
		End:   pgconv.TimeToPgtype(period.End),
	}

	var ledger cashcut.Ledger
	err := r.uow.WithinReadOnly(ctx, func(ctx context.Context, db sqlc.DBTX) error {
		lines, err := r.queries.ListSaleLinesInPeriod(ctx, db, arg)
		if err != nil {
			return infra.WrapRepoErr("failed to list sale lines", err)
		}
		sessions, err := r.queries.ListClosedSessionsInPeriod(ctx, db, arg)
		if err != nil {
			return infra.WrapRepoErr("failed to list closed sessions", err)
		}
		amounts, err := r.queries.ListExpenseAmountsInPeriod(ctx, db, arg)
		if err != nil {
			return infra.WrapRepoErr("failed to list expenses", err)
		}

		sales, err := salesFromLines(lines)
		if err != nil {
			return err
		}
		closed, err := sessionsToTransactions(sessions)
		if err != nil {
			return err
		}
		expenses, err := expenseAmounts(amounts)
		if err != nil {
			return err
		}

		ledger = cashcut.Ledger{
			Transactions: append(sales, closed...),
			Expenses:     expenses,
		}
		return nil
	})
	if err != nil {
		return cashcut.Ledger{}, err
	}
	return ledger, nil
}

// salesFromLines folds joined order/item rows into one transaction per order.
// Rows arrive grouped by order.
func salesFromLines(lines []sqlc.ListSaleLinesInPeriodRow) ([]cashcut.Transaction, error) {
	var txs []cashcut.Transaction
	index := map[uuid.UUID]int{}

	for _, line := range lines {
		i, ok := index[line.OrderID]
		if !ok {
			total, err := pgconv.DecimalFromNumeric(line.Total)
			if err != nil {
				return nil, errs.Wrap(err, "invalid order total")
			}
			cost, err := pgconv.DecimalFromNumeric(line.CostTotal)
			if err != nil {
				return nil, errs.Wrap(err, "invalid order cost")
			}
			txs = append(txs, cashcut.Transaction{
				ID:          line.OrderID,
				ServiceType: cashcut.ServiceProductSale,
				Method:      payment.Method(line.PaymentMethod),
				OccurredAt:  pgconv.TimeFromPgtype(line.CreatedAt),
				Total:       total,
				Cost:        cost,
			})
			i = len(txs) - 1
			index[line.OrderID] = i
		}

		price, err := pgconv.DecimalFromNumeric(line.UnitPrice)
		if err != nil {
			return nil, errs.Wrap(err, "invalid unit price")
		}
		txs[i].Items = append(txs[i].Items, cashcut.TransactionItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  int(line.Quantity),
			Revenue:   price.Mul(decimal.NewFromInt32(line.Quantity)),
		})
	}
	return txs, nil
}

func sessionsToTransactions(rows []sqlc.ListClosedSessionsInPeriodRow) ([]cashcut.Transaction, error) {
	txs := make([]cashcut.Transaction, 0, len(rows))
	for _, row := range rows {
		total, err := pgconv.DecimalFromNumeric(row.Total)
		if err != nil {
			return nil, errs.Wrap(err, "invalid session total")
		}
		var method payment.Method
		if m := pgconv.StringPtrFromPgtype(row.PaymentMethod); m != nil {
			method = payment.Method(*m)
		}
		txs = append(txs, cashcut.Transaction{
			ID:          row.ID,
			ServiceType: cashcut.ServiceCoworking,
			Method:      method,
			OccurredAt:  pgconv.TimeFromPgtype(row.EndedAt),
			Total:       total,
			Cost:        decimal.Zero,
		})
	}
	return txs, nil
}

func expenseAmounts(rows []pgtype.Numeric) ([]decimal.Decimal, error) {
	amounts := make([]decimal.Decimal, 0, len(rows))
	for _, n := range rows {
		d, err := pgconv.DecimalFromNumeric(n)
		if err != nil {
			return nil, errs.Wrap(err, "invalid expense amount")
		}
		amounts = append(amounts, d)
	}
	return amounts, nil
}
