package product

import (
	"errors"
	"strings"
	"time"

	"coworking-pos/internal/pkg/patch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxNameLength = 120

var (
	ErrInvalidName       = errors.New("product name is required and must be at most 120 characters")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrNegativeCost      = errors.New("cost cannot be negative")
	ErrNegativeStock     = errors.New("stock cannot be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInactive          = errors.New("product is inactive")
)

type Product struct {
	id        uuid.UUID
	name      string
	category  string
	price     decimal.Decimal
	cost      decimal.Decimal
	stock     int
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

// Patch carries the optional fields of a product update.
type Patch struct {
	Name     *string
	Category *string
	Price    *decimal.Decimal
	Cost     *decimal.Decimal
	Stock    *int
	Active   *bool
}

func NewProduct(name, category string, price, cost decimal.Decimal, stock int, now time.Time) (*Product, error) {
	p := &Product{
		id:        uuid.New(),
		name:      strings.TrimSpace(name),
		category:  strings.TrimSpace(category),
		price:     price,
		cost:      cost,
		stock:     stock,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func ReconstructProduct(
	id uuid.UUID,
	name, category string,
	price, cost decimal.Decimal,
	stock int,
	active bool,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:        id,
		name:      name,
		category:  category,
		price:     price,
		cost:      cost,
		stock:     stock,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Apply returns a validated copy with the patch applied; p is left untouched.
func (p *Product) Apply(ch Patch, now time.Time) (*Product, error) {
	next := *p
	next.name = strings.TrimSpace(patch.Coalesce(ch.Name, p.name))
	next.category = strings.TrimSpace(patch.Coalesce(ch.Category, p.category))
	next.price = patch.Coalesce(ch.Price, p.price)
	next.cost = patch.Coalesce(ch.Cost, p.cost)
	next.stock = patch.Coalesce(ch.Stock, p.stock)
	next.active = patch.Coalesce(ch.Active, p.active)
	next.updatedAt = now
	if err := next.validate(); err != nil {
		return nil, err
	}
	return &next, nil
}

// CanSell checks availability for qty units.
func (p *Product) CanSell(qty int) error {
	if !p.active {
		return ErrInactive
	}
	if qty > p.stock {
		return ErrInsufficientStock
	}
	return nil
}

func (p *Product) validate() error {
	if p.name == "" || len(p.name) > MaxNameLength {
		return ErrInvalidName
	}
	if p.price.IsNegative() {
		return ErrNegativePrice
	}
	if p.cost.IsNegative() {
		return ErrNegativeCost
	}
	if p.stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Category() string       { return p.category }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Cost() decimal.Decimal  { return p.cost }
func (p *Product) Stock() int             { return p.stock }
func (p *Product) Active() bool           { return p.active }
func (p *Product) CreatedAt() time.Time   { return p.createdAt }
func (p *Product) UpdatedAt() time.Time   { return p.updatedAt }
