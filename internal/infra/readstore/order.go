package readstore

import (
	"context"

	"coworking-pos/internal/infra"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
	"coworking-pos/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderReadQueries interface {
	FindOrderByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	ListOrdersByPeriod(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByPeriodParams) ([]sqlc.Orders, error)
	ListOrderItemsByOrderIDs(ctx context.Context, db sqlc.DBTX, orderIDs []uuid.UUID) ([]sqlc.OrderItems, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row, err := r.queries.FindOrderByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	views, err := r.withItems(ctx, []sqlc.Orders{row})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListByPeriod covers [From, To), newest first.
func (r *OrderReadStore) ListByPeriod(ctx context.Context, period queries.Period, limit int) ([]*queries.OrderView, error) {
	rows, err := r.queries.ListOrdersByPeriod(ctx, r.db, sqlc.ListOrdersByPeriodParams{
		From:  pgconv.TimeToPgtype(period.From),
		To:    pgconv.TimeToPgtype(period.To),
		Limit: int32(limit), // #nosec G115 -- clamped by queries.ClampLimit
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	return r.withItems(ctx, rows)
}

func (r *OrderReadStore) withItems(ctx context.Context, rows []sqlc.Orders) ([]*queries.OrderView, error) {
	if len(rows) == 0 {
		return []*queries.OrderView{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	itemRows, err := r.queries.ListOrderItemsByOrderIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}

	items := make(map[uuid.UUID][]queries.OrderItemView, len(rows))
	for _, it := range itemRows {
		price, err := pgconv.DecimalFromNumeric(it.UnitPrice)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid order item price", err, infra.KindDBFailure)
		}
		cost, err := pgconv.DecimalFromNumeric(it.UnitCost)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid order item cost", err, infra.KindDBFailure)
		}
		items[it.OrderID] = append(items[it.OrderID], queries.OrderItemView{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  int(it.Quantity),
			UnitPrice: price,
			UnitCost:  cost,
			Total:     price.Mul(decimal.NewFromInt32(it.Quantity)),
		})
	}

	views := make([]*queries.OrderView, 0, len(rows))
	for _, row := range rows {
		total, err := pgconv.DecimalFromNumeric(row.Total)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid order total", err, infra.KindDBFailure)
		}
		costTotal, err := pgconv.DecimalFromNumeric(row.CostTotal)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid order cost total", err, infra.KindDBFailure)
		}
		orderItems := items[row.ID]
		if orderItems == nil {
			orderItems = []queries.OrderItemView{}
		}
		views = append(views, &queries.OrderView{
			ID:            row.ID,
			PaymentMethod: row.PaymentMethod,
			Total:         total,
			CostTotal:     costTotal,
			Items:         orderItems,
			CreatedBy:     row.CreatedBy,
			CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return views, nil
}
