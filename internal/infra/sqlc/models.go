package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Users struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"password_hash"`
	Role         string             `json:"role"`
	IsActive     bool               `json:"is_active"`
	LastLoginAt  pgtype.Timestamptz `json:"last_login_at"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type Products struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Category  string             `json:"category"`
	Price     pgtype.Numeric     `json:"price"`
	Cost      pgtype.Numeric     `json:"cost"`
	Stock     int32              `json:"stock"`
	Active    bool               `json:"active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Orders struct {
	ID            uuid.UUID          `json:"id"`
	PaymentMethod string             `json:"payment_method"`
	Total         pgtype.Numeric     `json:"total"`
	CostTotal     pgtype.Numeric     `json:"cost_total"`
	CreatedBy     uuid.UUID          `json:"created_by"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type OrderItems struct {
	ID        int64          `json:"id"`
	OrderID   uuid.UUID      `json:"order_id"`
	ProductID uuid.UUID      `json:"product_id"`
	Name      string         `json:"name"`
	Quantity  int32          `json:"quantity"`
	UnitPrice pgtype.Numeric `json:"unit_price"`
	UnitCost  pgtype.Numeric `json:"unit_cost"`
}

type CoworkingSessions struct {
	ID            uuid.UUID          `json:"id"`
	CustomerName  string             `json:"customer_name"`
	StartedAt     pgtype.Timestamptz `json:"started_at"`
	EndedAt       pgtype.Timestamptz `json:"ended_at"`
	HourlyRate    pgtype.Numeric     `json:"hourly_rate"`
	Total         pgtype.Numeric     `json:"total"`
	PaymentMethod pgtype.Text        `json:"payment_method"`
	Status        string             `json:"status"`
	CreatedBy     uuid.UUID          `json:"created_by"`
}

type Expenses struct {
	ID          uuid.UUID          `json:"id"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Amount      pgtype.Numeric     `json:"amount"`
	SpentAt     pgtype.Timestamptz `json:"spent_at"`
	CreatedBy   uuid.UUID          `json:"created_by"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type CashCuts struct {
	ID                     uuid.UUID          `json:"id"`
	Kind                   string             `json:"kind"`
	PeriodStart            pgtype.Timestamptz `json:"period_start"`
	PeriodEnd              pgtype.Timestamptz `json:"period_end"`
	TotalIncome            pgtype.Numeric     `json:"total_income"`
	TotalCost              pgtype.Numeric     `json:"total_cost"`
	TotalProfit            pgtype.Numeric     `json:"total_profit"`
	ExpenseTotal           pgtype.Numeric     `json:"expense_total"`
	NetProfit              pgtype.Numeric     `json:"net_profit"`
	TransactionCount       int32              `json:"transaction_count"`
	PaymentMethodBreakdown []byte             `json:"payment_method_breakdown"`
	ServiceTypeBreakdown   []byte             `json:"service_type_breakdown"`
	TopProducts            []byte             `json:"top_products"`
	HourlyBreakdown        []byte             `json:"hourly_breakdown"`
	IdempotencyKey         string             `json:"idempotency_key"`
	Notes                  string             `json:"notes"`
	CreatedBy              uuid.UUID          `json:"created_by"`
	CreatedAt              pgtype.Timestamptz `json:"created_at"`
}

type IdempotencyKeys struct {
	Key          string             `json:"key"`
	ResourceID   pgtype.UUID        `json:"resource_id"`
	ResourceType string             `json:"resource_type"`
	Fingerprint  string             `json:"fingerprint"`
	Status       string             `json:"status"`
	Response     []byte             `json:"response"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	ExpiresAt    pgtype.Timestamptz `json:"expires_at"`
}
