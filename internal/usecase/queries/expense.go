package queries

import (
	"context"

	"coworking-pos/internal/pkg/errs"
)

type ExpenseQueries interface {
	ListByPeriod(ctx context.Context, period Period, limit int) ([]*ExpenseView, error)
}

type ExpenseReadStore interface {
	ListByPeriod(ctx context.Context, period Period, limit int) ([]*ExpenseView, error)
}

type expenseQueriesImpl struct {
	readStore ExpenseReadStore
}

func NewExpenseQueries(readStore ExpenseReadStore) ExpenseQueries {
	return &expenseQueriesImpl{readStore: readStore}
}

func (q *expenseQueriesImpl) ListByPeriod(ctx context.Context, period Period, limit int) ([]*ExpenseView, error) {
	if period.To.Before(period.From) {
		return nil, errs.Mark(errs.New("period end precedes its start"), errs.ErrDomainValidation)
	}
	expenses, err := q.readStore.ListByPeriod(ctx, period, ClampLimit(limit))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return expenses, nil
}
