package queries

import (
	"context"

	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

type ProductQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, activeOnly bool) ([]*ProductView, error)
}

type ProductReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, activeOnly bool) ([]*ProductView, error)
}

type productQueriesImpl struct {
	readStore ProductReadStore
}

func NewProductQueries(readStore ProductReadStore) ProductQueries {
	return &productQueriesImpl{readStore: readStore}
}

func (q *productQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	p, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrProductNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return p, nil
}

func (q *productQueriesImpl) List(ctx context.Context, activeOnly bool) ([]*ProductView, error) {
	products, err := q.readStore.List(ctx, activeOnly)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return products, nil
}
