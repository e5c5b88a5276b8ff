package response

import (
	"time"

	"coworking-pos/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CoworkingSessionResponse struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customerName"`
	StartedAt     time.Time       `json:"startedAt"`
	EndedAt       *time.Time      `json:"endedAt,omitempty"`
	HourlyRate    decimal.Decimal `json:"hourlyRate" swaggertype:"string"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	Status        string          `json:"status"`
	CreatedBy     uuid.UUID       `json:"createdBy"`
}

func FromCoworkingSessionView(v *queries.CoworkingSessionView) (*CoworkingSessionResponse, error) {
	return copyOne[queries.CoworkingSessionView, CoworkingSessionResponse](v)
}

func FromCoworkingSessionViews(vs []*queries.CoworkingSessionView) ([]*CoworkingSessionResponse, error) {
	return copyAll[queries.CoworkingSessionView, CoworkingSessionResponse](vs)
}
