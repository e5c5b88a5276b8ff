package cashcut

import (
	"sort"
	"time"

	"coworking-pos/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultTopProducts = 5

type TransactionItem struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	Revenue   decimal.Decimal
}

// Transaction is one paid sale or closed coworking session.
type Transaction struct {
	ID          uuid.UUID
	ServiceType ServiceType
	Method      payment.Method
	OccurredAt  time.Time
	Total       decimal.Decimal
	Cost        decimal.Decimal
	Items       []TransactionItem
}

// Ledger is everything that happened inside a period.
type Ledger struct {
	Transactions []Transaction
	Expenses     []decimal.Decimal
}

// Aggregate folds a ledger into a Summary. Breakdown ordering is deterministic
// so the same ledger always renders the same record.
func Aggregate(l Ledger, loc *time.Location, topN int) (Summary, error) {
	if loc == nil {
		loc = time.UTC
	}
	if topN <= 0 {
		topN = DefaultTopProducts
	}

	s := Summary{
		TotalIncome:  decimal.Zero,
		TotalCost:    decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}

	methods := map[payment.Method]*MethodTotal{}
	services := map[ServiceType]*ServiceTotal{}
	products := map[uuid.UUID]*ProductTotal{}
	hours := map[int]*HourTotal{}

	for _, tx := range l.Transactions {
		if !tx.ServiceType.IsValid() || !tx.Method.IsValid() ||
			tx.Total.IsNegative() || tx.Cost.IsNegative() {
			return Summary{}, ErrInvalidTransaction
		}

		s.TotalIncome = s.TotalIncome.Add(tx.Total)
		s.TotalCost = s.TotalCost.Add(tx.Cost)
		s.TransactionCount++

		m, ok := methods[tx.Method]
		if !ok {
			m = &MethodTotal{Method: tx.Method, Amount: decimal.Zero}
			methods[tx.Method] = m
		}
		m.Amount = m.Amount.Add(tx.Total)
		m.Count++

		st, ok := services[tx.ServiceType]
		if !ok {
			st = &ServiceTotal{ServiceType: tx.ServiceType, Amount: decimal.Zero}
			services[tx.ServiceType] = st
		}
		st.Amount = st.Amount.Add(tx.Total)
		st.Count++

		hour := tx.OccurredAt.In(loc).Hour()
		h, ok := hours[hour]
		if !ok {
			h = &HourTotal{Hour: hour, Amount: decimal.Zero}
			hours[hour] = h
		}
		h.Amount = h.Amount.Add(tx.Total)
		h.Count++

		for _, it := range tx.Items {
			if it.Quantity <= 0 || it.Revenue.IsNegative() {
				return Summary{}, ErrInvalidTransaction
			}
			p, ok := products[it.ProductID]
			if !ok {
				p = &ProductTotal{ProductID: it.ProductID, Name: it.Name, Revenue: decimal.Zero}
				products[it.ProductID] = p
			}
			p.Quantity += it.Quantity
			p.Revenue = p.Revenue.Add(it.Revenue)
		}
	}

	for _, amount := range l.Expenses {
		if amount.IsNegative() {
			return Summary{}, ErrInvalidTransaction
		}
		s.ExpenseTotal = s.ExpenseTotal.Add(amount)
	}

	s.TotalProfit = s.TotalIncome.Sub(s.TotalCost)
	s.NetProfit = s.TotalProfit.Sub(s.ExpenseTotal)

	s.PaymentMethods = make([]MethodTotal, 0, len(methods))
	for _, m := range methods {
		s.PaymentMethods = append(s.PaymentMethods, *m)
	}
	sort.Slice(s.PaymentMethods, func(i, j int) bool {
		a, b := s.PaymentMethods[i], s.PaymentMethods[j]
		if c := a.Amount.Cmp(b.Amount); c != 0 {
			return c > 0
		}
		return a.Method < b.Method
	})

	s.ServiceTypes = make([]ServiceTotal, 0, len(services))
	for _, st := range services {
		s.ServiceTypes = append(s.ServiceTypes, *st)
	}
	sort.Slice(s.ServiceTypes, func(i, j int) bool {
		return s.ServiceTypes[i].ServiceType < s.ServiceTypes[j].ServiceType
	})

	s.Hourly = make([]HourTotal, 0, len(hours))
	for _, h := range hours {
		s.Hourly = append(s.Hourly, *h)
	}
	sort.Slice(s.Hourly, func(i, j int) bool { return s.Hourly[i].Hour < s.Hourly[j].Hour })

	ranked := make([]ProductTotal, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, *p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ProductID.String() < b.ProductID.String()
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	s.TopProducts = ranked

	return s, nil
}
