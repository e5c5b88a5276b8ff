package shared

import (
	"context"

	"coworking-pos/internal/domain/coworking"
	"coworking-pos/internal/domain/expense"
	"coworking-pos/internal/domain/order"
	"coworking-pos/internal/domain/product"
	"coworking-pos/internal/infra/sqlc"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Products() ProductRepository
	Orders() OrderRepository
	CoworkingSessions() CoworkingSessionRepository
	Expenses() ExpenseRepository
	Users() UserRepository
	DB() sqlc.DBTX
}

type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	Update(ctx context.Context, p *product.Product) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*product.Product, error)
	// DecrementStock fails with a CONFLICT repository error when stock is short.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
}

type CoworkingSessionRepository interface {
	Create(ctx context.Context, s *coworking.Session) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*coworking.Session, error)
	Close(ctx context.Context, s *coworking.Session) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *expense.Expense) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}
