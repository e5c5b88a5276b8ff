package request

import (
	"coworking-pos/internal/domain/payment"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,max=100,dive"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=cash card transfer"`
}

func (r *CreateOrderRequest) Method() (payment.Method, error) {
	return payment.NewMethod(r.PaymentMethod)
}

// Quantities merges repeated lines for the same product, keeping first-seen order.
func (r *CreateOrderRequest) Quantities() ([]uuid.UUID, map[uuid.UUID]int) {
	order := make([]uuid.UUID, 0, len(r.Items))
	qty := make(map[uuid.UUID]int, len(r.Items))
	for _, it := range r.Items {
		if _, seen := qty[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		qty[it.ProductID] += it.Quantity
	}
	return order, qty
}
