package response

import (
	"time"

	"coworking-pos/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" swaggertype:"string"`
	UnitCost  decimal.Decimal `json:"unitCost" swaggertype:"string"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
}

type OrderResponse struct {
	ID            uuid.UUID            `json:"id"`
	PaymentMethod string               `json:"paymentMethod"`
	Total         decimal.Decimal      `json:"total" swaggertype:"string"`
	CostTotal     decimal.Decimal      `json:"costTotal" swaggertype:"string"`
	Items         []*OrderItemResponse `json:"items" copier:"-"`
	CreatedBy     uuid.UUID            `json:"createdBy"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	res, err := copyOne[queries.OrderView, OrderResponse](v)
	if err != nil {
		return nil, err
	}
	items := make([]*queries.OrderItemView, 0, len(v.Items))
	for i := range v.Items {
		items = append(items, &v.Items[i])
	}
	res.Items, err = copyAll[queries.OrderItemView, OrderItemResponse](items)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func FromOrderViews(vs []*queries.OrderView) ([]*OrderResponse, error) {
	out := make([]*OrderResponse, 0, len(vs))
	for _, v := range vs {
		res, err := FromOrderView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
