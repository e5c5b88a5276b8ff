package repository

import (
	"context"

	"coworking-pos/internal/domain/order"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/converter"
	"coworking-pos/internal/infra/sqlc"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	CreateOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderItemParams) error
}

type OrderRepository struct {
	queries OrderWriteQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderWriteQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

// Create must run inside a transaction; header and lines are written separately.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	params, items := converter.OrderToCreateParams(o)
	if err := r.queries.CreateOrder(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	for _, item := range items {
		if err := r.queries.CreateOrderItem(ctx, r.db, item); err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}
	return nil
}
