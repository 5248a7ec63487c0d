package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/shopfleet/payouts/internal/domain"
	"github.com/shopfleet/payouts/internal/money"
)

const (
	sheetSummary   = "Summary"
	sheetOrders    = "Orders"
	sheetReversals = "Reversals"
)

// BuildPayoutWorkbook assembles a downloadable XLSX report for one
// payout run: a Summary sheet, the per-order audit rows, and any
// reversal adjustments.
func BuildPayoutWorkbook(run *domain.PayoutRun, rows []domain.PayoutRow, adjs []domain.Adjustment) (*excelize.File, error) {
	f := excelize.NewFile()

	// The default sheet becomes Summary.
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetOrders); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetReversals); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}

	writeSummarySheet(f, run)
	writeOrdersSheet(f, rows)
	writeReversalsSheet(f, adjs)

	return f, nil
}

func writeSummarySheet(f *excelize.File, run *domain.PayoutRun) {
	s := run.Summary
	lines := []struct {
		label string
		value any
	}{
		{"Payout run", run.ID},
		{"Order date range", run.OrderFrom + " to " + run.OrderTo},
		{"Delivered date range", run.DeliveredFrom + " to " + run.DeliveredTo},
		{"", nil},
		{"Shipping total", money.Format(s.ShippingTotal)},
		{"COD total", money.Format(s.CODTotal)},
		{"Product cost total", money.Format(s.ProductCostTotal)},
		{"Reversal total", money.Format(s.ReversalTotal)},
		{"Gross payable", money.Format(s.GrossPayable)},
		{"Final payable", money.Format(s.FinalPayable)},
		{"", nil},
		{"Orders charged shipping", s.ShippingOrders},
		{"COD orders", s.CODOrders},
		{"Product cost orders", s.ProductCostOrders},
		{"Report rows", s.RowCount},
	}

	for i, line := range lines {
		f.SetCellValue(sheetSummary, "A"+fmt.Sprint(i+1), line.label)
		if line.value != nil {
			f.SetCellValue(sheetSummary, "B"+fmt.Sprint(i+1), line.value)
		}
	}
}

func writeOrdersSheet(f *excelize.File, rows []domain.PayoutRow) {
	f.SetSheetRow(sheetOrders, "A1", &PayoutColumns)
	for i := range rows {
		r := &rows[i]
		values := []any{
			r.OrderID, r.Waybill, r.DropshipperEmail, r.ProductID, r.ProductName,
			r.SKU, r.Carrier, r.Status, r.PaymentMode, r.Quantity,
			r.ShippingRate, r.UnitCost, r.UnitValue, r.ShippingCost,
			r.CODReceived, r.ProductCost, r.Adjustment, r.Payable,
		}
		f.SetSheetRow(sheetOrders, "A"+fmt.Sprint(i+2), &values)
	}
}

func writeReversalsSheet(f *excelize.File, adjs []domain.Adjustment) {
	header := []any{"order_id", "reason", "amount", "reference"}
	f.SetSheetRow(sheetReversals, "A1", &header)
	for i := range adjs {
		a := &adjs[i]
		values := []any{a.OrderID, a.Reason, a.Amount, a.Reference}
		f.SetSheetRow(sheetReversals, "A"+fmt.Sprint(i+2), &values)
	}
}

// BuildPriceTemplate returns a blank product price import template.
func BuildPriceTemplate() *excelize.File {
	f := excelize.NewFile()
	header := []any{"dropshipper_email", "product_id", "unit_cost"}
	f.SetSheetRow("Sheet1", "A1", &header)
	return f
}

// BuildRateTemplate returns a blank shipping rate import template.
func BuildRateTemplate() *excelize.File {
	f := excelize.NewFile()
	header := []any{"carrier", "rate"}
	f.SetSheetRow("Sheet1", "A1", &header)
	return f
}
