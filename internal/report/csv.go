// Package report renders payout results and settings for download. It
// consumes PayoutRow/PayoutSummary as produced by the engine and never
// recomputes any amounts.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopfleet/payouts/internal/domain"
	"github.com/shopfleet/payouts/internal/settings"
)

// PayoutColumns is the fixed column ordering of the payout report.
// Downstream consumers key on positions, so the order is part of the
// contract.
var PayoutColumns = []string{
	"order_id", "waybill", "dropshipper_email", "product_id", "product_name",
	"sku", "carrier", "status", "payment_mode", "quantity", "shipping_rate",
	"unit_cost", "unit_value", "shipping_cost", "cod_received", "product_cost",
	"adjustment", "payable",
}

// WritePayoutCSV writes the per-order audit rows followed by a summary
// block.
func WritePayoutCSV(w io.Writer, summary domain.PayoutSummary, rows []domain.PayoutRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(PayoutColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		if err := cw.Write(rowValues(&rows[i])); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	// Summary block, separated by a blank record.
	summaryLines := [][]string{
		{},
		{"shipping_total", formatAmount(summary.ShippingTotal)},
		{"cod_total", formatAmount(summary.CODTotal)},
		{"product_cost_total", formatAmount(summary.ProductCostTotal)},
		{"reversal_total", formatAmount(summary.ReversalTotal)},
		{"gross_payable", formatAmount(summary.GrossPayable)},
		{"final_payable", formatAmount(summary.FinalPayable)},
	}
	for _, line := range summaryLines {
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSettingsCSV writes the all-settings export: every configured
// product price followed by every configured carrier rate.
func WriteSettingsCSV(w io.Writer, exp settings.Export) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"dropshipper_email", "product_id", "unit_cost"}); err != nil {
		return fmt.Errorf("write price header: %w", err)
	}
	for _, p := range exp.Prices {
		if err := cw.Write([]string{p.DropshipperEmail, p.ProductID, formatAmount(p.UnitCost)}); err != nil {
			return fmt.Errorf("write price: %w", err)
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write([]string{"carrier", "rate"}); err != nil {
		return fmt.Errorf("write rate header: %w", err)
	}
	for _, r := range exp.Rates {
		if err := cw.Write([]string{r.Carrier, formatAmount(r.Rate)}); err != nil {
			return fmt.Errorf("write rate: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func rowValues(r *domain.PayoutRow) []string {
	return []string{
		r.OrderID, r.Waybill, r.DropshipperEmail, r.ProductID, r.ProductName,
		r.SKU, r.Carrier, r.Status, r.PaymentMode,
		fmt.Sprintf("%d", r.Quantity),
		formatAmount(r.ShippingRate), formatAmount(r.UnitCost),
		formatAmount(r.UnitValue), formatAmount(r.ShippingCost),
		formatAmount(r.CODReceived), formatAmount(r.ProductCost),
		formatAmount(r.Adjustment), formatAmount(r.Payable),
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
