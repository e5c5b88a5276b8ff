package readstore

import (
	"context"

	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
	"coworking-pos/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductReadQueries interface {
	FindProductByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Products, error)
	ListProducts(ctx context.Context, db sqlc.DBTX, activeOnly bool) ([]sqlc.Products, error)
}

type ProductReadStore struct {
	queries ProductReadQueries
	db      sqlc.DBTX
}

func NewProductReadStore(queries ProductReadQueries, db sqlc.DBTX) *ProductReadStore {
	return &ProductReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	row, err := r.queries.FindProductByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return toProductView(row)
}

func (r *ProductReadStore) List(ctx context.Context, activeOnly bool) ([]*queries.ProductView, error) {
	rows, err := r.queries.ListProducts(ctx, r.db, activeOnly)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	views := make([]*queries.ProductView, 0, len(rows))
	for _, row := range rows {
		v, err := toProductView(row)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func toProductView(row sqlc.Products) (*queries.ProductView, error) {
	price, err := pgconv.DecimalFromNumeric(row.Price)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid product price", err, infra.KindDBFailure)
	}
	cost, err := pgconv.DecimalFromNumeric(row.Cost)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid product cost", err, infra.KindDBFailure)
	}
	return &queries.ProductView{
		ID:        row.ID,
		Name:      row.Name,
		Category:  row.Category,
		Price:     price,
		Cost:      cost,
		Stock:     int(row.Stock),
		Active:    row.Active,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
