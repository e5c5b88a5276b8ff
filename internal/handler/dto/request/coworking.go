package request

import (
	"github.com/shopspring/decimal"
)

type StartSessionRequest struct {
	CustomerName string          `json:"customer_name" binding:"required,max=120"`
	HourlyRate   decimal.Decimal `json:"hourly_rate" swaggertype:"string" example:"60.00"`
}

type CloseSessionRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=cash card transfer"`
}

type ListSessionsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=open closed"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
}
