package queries

import (
	"context"

	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

type OrderQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByPeriod(ctx context.Context, period Period, limit int) ([]*OrderView, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByPeriod(ctx context.Context, period Period, limit int) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	o, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrOrderNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return o, nil
}

func (q *orderQueriesImpl) ListByPeriod(ctx context.Context, period Period, limit int) ([]*OrderView, error) {
	if period.To.Before(period.From) {
		return nil, errs.Mark(errs.New("period end precedes its start"), errs.ErrDomainValidation)
	}
	orders, err := q.readStore.ListByPeriod(ctx, period, ClampLimit(limit))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return orders, nil
}
