package expense

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCategory = errors.New("expense category is required")
	ErrInvalidAmount   = errors.New("expense amount must be positive")
)

type Expense struct {
	id          uuid.UUID
	category    string
	description string
	amount      decimal.Decimal
	spentAt     time.Time
	createdBy   uuid.UUID
	createdAt   time.Time
}

func NewExpense(category, description string, amount decimal.Decimal, spentAt time.Time, createdBy uuid.UUID, now time.Time) (*Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrInvalidCategory
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if spentAt.IsZero() {
		spentAt = now
	}
	return &Expense{
		id:          uuid.New(),
		category:    category,
		description: strings.TrimSpace(description),
		amount:      amount,
		spentAt:     spentAt,
		createdBy:   createdBy,
		createdAt:   now,
	}, nil
}

func (e *Expense) ID() uuid.UUID           { return e.id }
func (e *Expense) Category() string        { return e.category }
func (e *Expense) Description() string     { return e.description }
func (e *Expense) Amount() decimal.Decimal { return e.amount }
func (e *Expense) SpentAt() time.Time      { return e.spentAt }
func (e *Expense) CreatedBy() uuid.UUID    { return e.createdBy }
func (e *Expense) CreatedAt() time.Time    { return e.createdAt }
