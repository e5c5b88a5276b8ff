package repository

import (
	"context"

	"coworking-pos/internal/domain/product"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/converter"
	"coworking-pos/internal/infra/sqlc"

	"github.com/google/uuid"
)

type ProductWriteQueries interface {
	CreateProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateProductParams) error
	UpdateProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateProductParams) (int64, error)
	FindProductByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Products, error)
	DecrementProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.DecrementProductStockParams) (int64, error)
}

type ProductRepository struct {
	queries ProductWriteQueries
	db      sqlc.DBTX
}

func NewProductRepository(queries ProductWriteQueries, db sqlc.DBTX) *ProductRepository {
	return &ProductRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if err := r.queries.CreateProduct(ctx, r.db, converter.ProductToCreateParams(p)); err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	n, err := r.queries.UpdateProduct(ctx, r.db, converter.ProductToUpdateParams(p))
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	row, err := r.queries.FindProductByIDForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock product", err)
	}
	p, err := converter.ProductFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode product", err, infra.KindDBFailure)
	}
	return p, nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	n, err := r.queries.DecrementProductStock(ctx, r.db, sqlc.DecrementProductStockParams{
		ID:       id,
		Quantity: int32(qty), // #nosec G115 -- validated by the order aggregate
	})
	if err != nil {
		return infra.WrapRepoErr("failed to decrement product stock", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("insufficient stock or inactive product", nil, infra.KindConflict)
	}
	return nil
}
