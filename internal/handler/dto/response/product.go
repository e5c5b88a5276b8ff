package response

import (
	"time"

	"coworking-pos/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price" swaggertype:"string"`
	Cost      decimal.Decimal `json:"cost" swaggertype:"string"`
	Stock     int             `json:"stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func FromProductView(v *queries.ProductView) (*ProductResponse, error) {
	return copyOne[queries.ProductView, ProductResponse](v)
}

func FromProductViews(vs []*queries.ProductView) ([]*ProductResponse, error) {
	return copyAll[queries.ProductView, ProductResponse](vs)
}
