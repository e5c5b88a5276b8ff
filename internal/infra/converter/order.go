package converter

import (
	"coworking-pos/internal/domain/order"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"
)

func OrderToCreateParams(o *order.Order) (sqlc.CreateOrderParams, []sqlc.CreateOrderItemParams) {
	params := sqlc.CreateOrderParams{
		ID:            o.ID(),
		PaymentMethod: o.Method().String(),
		Total:         pgconv.DecimalToNumeric(o.Total()),
		CostTotal:     pgconv.DecimalToNumeric(o.CostTotal()),
		CreatedBy:     o.CreatedBy(),
		CreatedAt:     pgconv.TimeToPgtype(o.CreatedAt()),
	}

	items := make([]sqlc.CreateOrderItemParams, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, sqlc.CreateOrderItemParams{
			OrderID:   o.ID(),
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  int32(it.Quantity), // #nosec G115 -- bounded by product stock
			UnitPrice: pgconv.DecimalToNumeric(it.UnitPrice),
			UnitCost:  pgconv.DecimalToNumeric(it.UnitCost),
		})
	}
	return params, items
}
