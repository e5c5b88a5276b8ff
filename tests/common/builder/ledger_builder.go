package builder

import (
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerBuilder assembles a cash-cut ledger relative to a base instant.
type LedgerBuilder struct {
	Base     time.Time
	txs      []cashcut.Transaction
	expenses []decimal.Decimal
}

type SaleLine struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice string
	UnitCost  string
}

func NewLedgerBuilder(base time.Time) *LedgerBuilder {
	return &LedgerBuilder{Base: base}
}

func (b *LedgerBuilder) Sale(method payment.Method, offset time.Duration, lines ...SaleLine) *LedgerBuilder {
	tx := cashcut.Transaction{
		ID:          uuid.New(),
		ServiceType: cashcut.ServiceProductSale,
		Method:      method,
		OccurredAt:  b.Base.Add(offset),
		Total:       decimal.Zero,
		Cost:        decimal.Zero,
	}
	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		revenue := decimal.RequireFromString(l.UnitPrice).Mul(qty)
		cost := decimal.RequireFromString(l.UnitCost).Mul(qty)
		tx.Total = tx.Total.Add(revenue)
		tx.Cost = tx.Cost.Add(cost)
		tx.Items = append(tx.Items, cashcut.TransactionItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Revenue:   revenue,
		})
	}
	b.txs = append(b.txs, tx)
	return b
}

func (b *LedgerBuilder) Coworking(method payment.Method, offset time.Duration, total string) *LedgerBuilder {
	b.txs = append(b.txs, cashcut.Transaction{
		ID:          uuid.New(),
		ServiceType: cashcut.ServiceCoworking,
		Method:      method,
		OccurredAt:  b.Base.Add(offset),
		Total:       decimal.RequireFromString(total),
		Cost:        decimal.Zero,
	})
	return b
}

func (b *LedgerBuilder) Expense(amount string) *LedgerBuilder {
	b.expenses = append(b.expenses, decimal.RequireFromString(amount))
	return b
}

func (b *LedgerBuilder) Build() cashcut.Ledger {
	return cashcut.Ledger{
		Transactions: append([]cashcut.Transaction(nil), b.txs...),
		Expenses:     append([]decimal.Decimal(nil), b.expenses...),
	}
}
