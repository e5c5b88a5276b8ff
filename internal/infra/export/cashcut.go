package export

import (
	"fmt"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/pkg/errs"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	methodsSheet  = "Payment methods"
	servicesSheet = "Service types"
	productsSheet = "Top products"
	hourlySheet   = "Hourly"
	timeLayout    = "2006-01-02 15:04:05"
)

// CashCutWorkbook renders a cash cut as an XLSX workbook, one sheet per breakdown.
type CashCutWorkbook struct {
	loc *time.Location
}

func NewCashCutWorkbook(loc *time.Location) *CashCutWorkbook {
	if loc == nil {
		loc = time.UTC
	}
	return &CashCutWorkbook{loc: loc}
}

func (w *CashCutWorkbook) Render(cut *cashcut.CashCut) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errs.Wrap(err, "failed to create header style")
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, errs.Wrap(err, "failed to rename summary sheet")
	}
	summary := [][]any{
		{"Field", "Value"},
		{"ID", cut.ID.String()},
		{"Kind", string(cut.Kind)},
		{"Period start", cut.PeriodStart.In(w.loc).Format(timeLayout)},
		{"Period end", cut.PeriodEnd.In(w.loc).Format(timeLayout)},
		{"Total income", cut.TotalIncome.InexactFloat64()},
		{"Total cost", cut.TotalCost.InexactFloat64()},
		{"Total profit", cut.TotalProfit.InexactFloat64()},
		{"Expenses", cut.ExpenseTotal.InexactFloat64()},
		{"Net profit", cut.NetProfit.InexactFloat64()},
		{"Transactions", cut.TransactionCount},
		{"Notes", cut.Notes},
		{"Created by", cut.CreatedBy.String()},
		{"Created at", cut.CreatedAt.In(w.loc).Format(timeLayout)},
	}
	if err := writeRows(f, summarySheet, header, summary); err != nil {
		return nil, err
	}

	methods := [][]any{{"Method", "Amount", "Count"}}
	for _, m := range cut.PaymentMethods {
		methods = append(methods, []any{m.Method.String(), m.Amount.InexactFloat64(), m.Count})
	}
	services := [][]any{{"Service type", "Amount", "Count"}}
	for _, s := range cut.ServiceTypes {
		services = append(services, []any{string(s.ServiceType), s.Amount.InexactFloat64(), s.Count})
	}
	products := [][]any{{"Product ID", "Name", "Quantity", "Revenue"}}
	for _, p := range cut.TopProducts {
		products = append(products, []any{p.ProductID.String(), p.Name, p.Quantity, p.Revenue.InexactFloat64()})
	}
	hourly := [][]any{{"Hour", "Amount", "Count"}}
	for _, h := range cut.Hourly {
		hourly = append(hourly, []any{fmt.Sprintf("%02d:00", h.Hour), h.Amount.InexactFloat64(), h.Count})
	}

	for _, sheet := range []struct {
		name string
		rows [][]any
	}{
		{methodsSheet, methods},
		{servicesSheet, services},
		{productsSheet, products},
		{hourlySheet, hourly},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, errs.Wrapf(err, "failed to create sheet %q", sheet.name)
		}
		if err := writeRows(f, sheet.name, header, sheet.rows); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errs.Wrap(err, "failed to write workbook")
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, headerStyle int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errs.Wrap(err, "failed to resolve cell")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errs.Wrapf(err, "failed to write row %d of %q", i+1, sheet)
		}
	}
	if len(rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return errs.Wrap(err, "failed to resolve header range")
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return errs.Wrapf(err, "failed to style header of %q", sheet)
		}
	}
	return nil
}

// FileName is the download name for a cut's workbook.
func FileName(cut *cashcut.CashCut) string {
	return fmt.Sprintf("cash-cut-%s.xlsx", cut.PeriodEnd.UTC().Format("20060102-150405"))
}
