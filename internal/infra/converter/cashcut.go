package converter

import (
	"encoding/json"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func CashCutToInsertParams(cut *cashcut.CashCut) (sqlc.InsertCashCutParams, error) {
	methods, err := marshalBreakdown(cut.PaymentMethods)
	if err != nil {
		return sqlc.InsertCashCutParams{}, err
	}
	services, err := marshalBreakdown(cut.ServiceTypes)
	if err != nil {
		return sqlc.InsertCashCutParams{}, err
	}
	top, err := marshalBreakdown(cut.TopProducts)
	if err != nil {
		return sqlc.InsertCashCutParams{}, err
	}
	hourly, err := marshalBreakdown(cut.Hourly)
	if err != nil {
		return sqlc.InsertCashCutParams{}, err
	}

	return sqlc.InsertCashCutParams{
		ID:                     cut.ID,
		Kind:                   string(cut.Kind),
		PeriodStart:            pgconv.TimeToPgtype(cut.PeriodStart),
		PeriodEnd:              pgconv.TimeToPgtype(cut.PeriodEnd),
		TotalIncome:            pgconv.DecimalToNumeric(cut.TotalIncome),
		TotalCost:              pgconv.DecimalToNumeric(cut.TotalCost),
		TotalProfit:            pgconv.DecimalToNumeric(cut.TotalProfit),
		ExpenseTotal:           pgconv.DecimalToNumeric(cut.ExpenseTotal),
		NetProfit:              pgconv.DecimalToNumeric(cut.NetProfit),
		TransactionCount:       int32(cut.TransactionCount), // #nosec G115
		PaymentMethodBreakdown: methods,
		ServiceTypeBreakdown:   services,
		TopProducts:            top,
		HourlyBreakdown:        hourly,
		IdempotencyKey:         cut.IdempotencyKey,
		Notes:                  cut.Notes,
		CreatedBy:              cut.CreatedBy,
		CreatedAt:              pgconv.TimeToPgtype(cut.CreatedAt),
	}, nil
}

func CashCutFromRow(row sqlc.CashCuts) (*cashcut.CashCut, error) {
	cut := &cashcut.CashCut{
		ID:             row.ID,
		Kind:           cashcut.Kind(row.Kind),
		PeriodStart:    pgconv.TimeFromPgtype(row.PeriodStart),
		PeriodEnd:      pgconv.TimeFromPgtype(row.PeriodEnd),
		IdempotencyKey: row.IdempotencyKey,
		Notes:          row.Notes,
		CreatedBy:      row.CreatedBy,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
	}
	cut.TransactionCount = int(row.TransactionCount)

	var err error
	for _, f := range []struct {
		dst *decimal.Decimal
		src pgtype.Numeric
	}{
		{&cut.TotalIncome, row.TotalIncome},
		{&cut.TotalCost, row.TotalCost},
		{&cut.TotalProfit, row.TotalProfit},
		{&cut.ExpenseTotal, row.ExpenseTotal},
		{&cut.NetProfit, row.NetProfit},
	} {
		if *f.dst, err = pgconv.DecimalFromNumeric(f.src); err != nil {
			return nil, err
		}
	}

	if err := unmarshalBreakdown(row.PaymentMethodBreakdown, &cut.PaymentMethods); err != nil {
		return nil, err
	}
	if err := unmarshalBreakdown(row.ServiceTypeBreakdown, &cut.ServiceTypes); err != nil {
		return nil, err
	}
	if err := unmarshalBreakdown(row.TopProducts, &cut.TopProducts); err != nil {
		return nil, err
	}
	if err := unmarshalBreakdown(row.HourlyBreakdown, &cut.Hourly); err != nil {
		return nil, err
	}
	return cut, nil
}

func marshalBreakdown[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, errs.Wrap(err, "marshal cash cut breakdown")
	}
	return b, nil
}

func unmarshalBreakdown[T any](raw []byte, dst *[]T) error {
	*dst = []T{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.Wrap(err, "unmarshal cash cut breakdown")
	}
	return nil
}
