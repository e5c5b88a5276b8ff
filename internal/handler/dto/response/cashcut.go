package response

import (
	"time"

	"coworking-pos/internal/domain/cashcut"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CashCutResponse struct {
	ID               uuid.UUID              `json:"id"`
	Kind             string                 `json:"kind"`
	PeriodStart      time.Time              `json:"periodStart"`
	PeriodEnd        time.Time              `json:"periodEnd"`
	TotalIncome      decimal.Decimal        `json:"totalIncome" swaggertype:"string"`
	TotalCost        decimal.Decimal        `json:"totalCost" swaggertype:"string"`
	TotalProfit      decimal.Decimal        `json:"totalProfit" swaggertype:"string"`
	ExpenseTotal     decimal.Decimal        `json:"expenseTotal" swaggertype:"string"`
	NetProfit        decimal.Decimal        `json:"netProfit" swaggertype:"string"`
	TransactionCount int                    `json:"transactionCount"`
	PaymentMethods   []cashcut.MethodTotal  `json:"paymentMethodBreakdown"`
	ServiceTypes     []cashcut.ServiceTotal `json:"serviceTypeBreakdown"`
	TopProducts      []cashcut.ProductTotal `json:"topProducts"`
	Hourly           []cashcut.HourTotal    `json:"hourlyBreakdown"`
	IdempotencyKey   string                 `json:"idempotencyKey"`
	Notes            string                 `json:"notes"`
	CreatedBy        uuid.UUID              `json:"createdBy"`
	CreatedAt        time.Time              `json:"createdAt"`
}

func FromCashCut(c *cashcut.CashCut) (*CashCutResponse, error) {
	return copyOne[cashcut.CashCut, CashCutResponse](c)
}

func FromCashCuts(cs []*cashcut.CashCut) ([]*CashCutResponse, error) {
	return copyAll[cashcut.CashCut, CashCutResponse](cs)
}
