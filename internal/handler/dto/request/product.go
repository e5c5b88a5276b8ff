package request

import (
	"time"

	"coworking-pos/internal/domain/product"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required,max=120"`
	Category string          `json:"category" binding:"max=60"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"35.50"`
	Cost     decimal.Decimal `json:"cost" swaggertype:"string" example:"12.00"`
	Stock    int             `json:"stock" binding:"gte=0"`
}

func (r *CreateProductRequest) ToDomain(now time.Time) (*product.Product, error) {
	return product.NewProduct(r.Name, r.Category, r.Price, r.Cost, r.Stock, now)
}

// UpdateProductRequest is a partial update: nil fields are left unchanged.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty" binding:"omitempty,max=120"`
	Category *string          `json:"category,omitempty" binding:"omitempty,max=60"`
	Price    *decimal.Decimal `json:"price,omitempty" swaggertype:"string"`
	Cost     *decimal.Decimal `json:"cost,omitempty" swaggertype:"string"`
	Stock    *int             `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Active   *bool            `json:"active,omitempty"`
}

func (r *UpdateProductRequest) ToPatch() product.Patch {
	return product.Patch{
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Cost:     r.Cost,
		Stock:    r.Stock,
		Active:   r.Active,
	}
}

type ListProductsQuery struct {
	ActiveOnly bool `form:"active_only"`
}
