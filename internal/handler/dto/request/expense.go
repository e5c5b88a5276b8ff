package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,max=60"`
	Description string          `json:"description" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"150.00"`
	// SpentAt defaults to the time of the request.
	SpentAt *time.Time `json:"spent_at,omitempty"`
}
