package response

import (
	"time"

	"coworking-pos/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	SpentAt     time.Time       `json:"spentAt"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func FromExpenseView(v *queries.ExpenseView) (*ExpenseResponse, error) {
	return copyOne[queries.ExpenseView, ExpenseResponse](v)
}

func FromExpenseViews(vs []*queries.ExpenseView) ([]*ExpenseResponse, error) {
	return copyAll[queries.ExpenseView, ExpenseResponse](vs)
}
