package cashcut

import (
	"errors"
	"strings"
	"time"

	"coworking-pos/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxNotesLength = 500

var (
	ErrInvalidKind        = errors.New("invalid cash cut kind")
	ErrMissingOperator    = errors.New("cash cut requires an operator")
	ErrMissingKey         = errors.New("cash cut requires an idempotency key")
	ErrNotesTooLong       = errors.New("cash cut notes are too long")
	ErrInvalidPeriod      = errors.New("cash cut period end precedes its start")
	ErrInvalidTransaction = errors.New("invalid transaction in cash cut period")
)

type Kind string

const (
	KindManual    Kind = "manual"
	KindScheduled Kind = "scheduled"
)

func (k Kind) IsValid() bool {
	return k == KindManual || k == KindScheduled
}

type ServiceType string

const (
	ServiceProductSale ServiceType = "product_sale"
	ServiceCoworking   ServiceType = "coworking"
)

func (s ServiceType) IsValid() bool {
	return s == ServiceProductSale || s == ServiceCoworking
}

type MethodTotal struct {
	Method payment.Method  `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

type ServiceTotal struct {
	ServiceType ServiceType     `json:"service_type"`
	Amount      decimal.Decimal `json:"amount"`
	Count       int             `json:"count"`
}

type ProductTotal struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type HourTotal struct {
	Hour   int             `json:"hour"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// Summary holds the totals and breakdowns of one period.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	ExpenseTotal     decimal.Decimal `json:"expense_total"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	TransactionCount int             `json:"transaction_count"`
	PaymentMethods   []MethodTotal   `json:"payment_method_breakdown"`
	ServiceTypes     []ServiceTotal  `json:"service_type_breakdown"`
	TopProducts      []ProductTotal  `json:"top_products"`
	Hourly           []HourTotal     `json:"hourly_breakdown"`
}

// CashCut is immutable once persisted. Fields are exported so stores can
// serialize the record as-is.
type CashCut struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Summary
	IdempotencyKey string    `json:"idempotency_key"`
	Notes          string    `json:"notes"`
	CreatedBy      uuid.UUID `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

func New(kind Kind, period Period, summary Summary, key, notes string, createdBy uuid.UUID, now time.Time) (*CashCut, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if createdBy == uuid.Nil {
		return nil, ErrMissingOperator
	}
	if key == "" {
		return nil, ErrMissingKey
	}
	notes = NormalizeNotes(notes)
	if len(notes) > MaxNotesLength {
		return nil, ErrNotesTooLong
	}
	if period.End.Before(period.Start) {
		return nil, ErrInvalidPeriod
	}

	return &CashCut{
		ID:             uuid.New(),
		Kind:           kind,
		PeriodStart:    period.Start,
		PeriodEnd:      period.End,
		Summary:        summary,
		IdempotencyKey: key,
		Notes:          notes,
		CreatedBy:      createdBy,
		CreatedAt:      now,
	}, nil
}

func NormalizeNotes(notes string) string {
	return strings.TrimSpace(notes)
}
