package order

import (
	"errors"
	"time"

	"coworking-pos/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxItems = 100

var (
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrTooManyItems     = errors.New("order has too many items")
	ErrInvalidQuantity  = errors.New("item quantity must be positive")
	ErrInvalidUnitPrice = errors.New("item unit price cannot be negative")
	ErrMissingOperator  = errors.New("order requires an operator")
)

// Item is a line with name and prices captured at sale time.
type Item struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
}

func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i Item) CostTotal() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	id        uuid.UUID
	items     []Item
	method    payment.Method
	total     decimal.Decimal
	costTotal decimal.Decimal
	createdBy uuid.UUID
	createdAt time.Time
}

func NewOrder(items []Item, method payment.Method, createdBy uuid.UUID, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if len(items) > MaxItems {
		return nil, ErrTooManyItems
	}
	if !method.IsValid() {
		return nil, payment.ErrInvalidMethod
	}
	if createdBy == uuid.Nil {
		return nil, ErrMissingOperator
	}

	total, cost := decimal.Zero, decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if it.UnitPrice.IsNegative() || it.UnitCost.IsNegative() {
			return nil, ErrInvalidUnitPrice
		}
		total = total.Add(it.Total())
		cost = cost.Add(it.CostTotal())
	}

	return &Order{
		id:        uuid.New(),
		items:     append([]Item(nil), items...),
		method:    method,
		total:     total,
		costTotal: cost,
		createdBy: createdBy,
		createdAt: now,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	items []Item,
	method payment.Method,
	total, costTotal decimal.Decimal,
	createdBy uuid.UUID,
	createdAt time.Time,
) *Order {
	return &Order{
		id:        id,
		items:     items,
		method:    method,
		total:     total,
		costTotal: costTotal,
		createdBy: createdBy,
		createdAt: createdAt,
	}
}

func (o *Order) ID() uuid.UUID              { return o.id }
func (o *Order) Items() []Item              { return o.items }
func (o *Order) Method() payment.Method     { return o.method }
func (o *Order) Total() decimal.Decimal     { return o.total }
func (o *Order) CostTotal() decimal.Decimal { return o.costTotal }
func (o *Order) Profit() decimal.Decimal    { return o.total.Sub(o.costTotal) }
func (o *Order) CreatedBy() uuid.UUID       { return o.createdBy }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
