package payout

import (
	"strings"

	"github.com/shopfleet/payouts/internal/domain"
	"github.com/shopfleet/payouts/internal/money"
)

// ReversalReason tags every RTS/RTO reversal adjustment.
const ReversalReason = "Delivered->RTS/RTO (reversal)"

// Result is the full output of one payout computation.
type Result struct {
	Summary     domain.PayoutSummary `json:"summary"`
	Rows        []domain.PayoutRow   `json:"rows"`
	Adjustments []domain.Adjustment  `json:"adjustments"`
}

// Calculate reconciles a batch of order records against configured
// product costs and carrier rates for the given payout windows, and
// reverses prior payouts for orders that have since gone RTS/RTO.
//
// It is a pure function: no I/O, no clock, no shared state. Identical
// inputs yield identical output, with rows in input order (minus orders
// that produced no activity). Input order and duplicates are tolerated;
// effects are additive.
//
// Three rules are evaluated independently per order:
//
//  1. shipping: order date in the order window and status not
//     "cancelled" charges quantity x carrier rate (0 for an unknown
//     carrier).
//  2. COD + product cost: status "delivered" with a delivered date in
//     the delivered window collects quantity x unit value when the
//     payment mode contains "COD", and always charges quantity x
//     configured unit cost (0 for an unmapped product).
//  3. RTS/RTO reversal: a status containing "rts"/"rto" (or a present
//     return date) with the order date in the order window reverses the
//     matching prior payout, if one exists with a positive paid amount.
//
// The substring status matching is inherited from upstream exports and
// is preserved as-is for compatibility; "rts-initiated" and
// "completed-rts-flow" both classify as RTS. An explicit status
// enumeration would be the principled fix.
//
// Missing price or rate entries are not errors; they default to zero
// and are surfaced separately by the settings gap reporter. Totals are
// rounded to whole currency units once, in the summary; row payables
// stay unrounded.
func Calculate(
	orders []domain.OrderRecord,
	prices domain.PriceIndex,
	rates domain.RateIndex,
	orderWindow, deliveredWindow Window,
	history []domain.PayoutHistoryEntry,
) *Result {
	res := &Result{}

	var shippingTotal, codTotal, productCostTotal, reversalTotal float64

	for i := range orders {
		o := &orders[i]
		qty := float64(o.Quantity)

		var shippingCost, codReceived, productCost, adjustment float64
		rate := rates.Rate(o.Carrier)
		unitCost := prices.UnitCost(o.DropshipperEmail, o.ProductID)

		inOrderWindow := orderWindow.Contains(o.OrderDate)

		// Rule 1: shipping cost.
		if inOrderWindow && !strings.EqualFold(o.Status, domain.StatusCancelled) {
			shippingCost = qty * rate
			shippingTotal += shippingCost
			res.Summary.ShippingOrders++
		}

		// Rule 2: COD collection + product cost, for delivered orders.
		if strings.EqualFold(o.Status, domain.StatusDelivered) &&
			deliveredWindow.ContainsPtr(o.DeliveredDate) {
			if strings.Contains(strings.ToUpper(o.PaymentMode), domain.PaymentModeCOD) {
				codReceived = qty * o.ProductValue
				codTotal += codReceived
				res.Summary.CODOrders++
			}
			// Product cost applies to every delivered order, COD or prepaid.
			productCost = qty * unitCost
			productCostTotal += productCost
			res.Summary.ProductCostOrders++
		}

		// Rule 3: RTS/RTO reversal of a prior payout.
		if isRTSRTO(o) && inOrderWindow {
			if prior := findPriorPayout(history, o); prior != nil && prior.PaidAmount > 0 {
				adjustment = -prior.PaidAmount
				reversalTotal += adjustment
				res.Adjustments = append(res.Adjustments, domain.Adjustment{
					OrderID:   o.OrderID,
					Reason:    ReversalReason,
					Amount:    adjustment,
					Reference: priorReference(prior),
				})
			}
		}

		if shippingCost == 0 && codReceived == 0 && productCost == 0 && adjustment == 0 {
			continue
		}

		res.Rows = append(res.Rows, domain.PayoutRow{
			OrderID:          o.OrderID,
			Waybill:          o.Waybill,
			DropshipperEmail: o.DropshipperEmail,
			ProductID:        o.ProductID,
			ProductName:      o.ProductName,
			SKU:              o.SKU,
			Carrier:          o.Carrier,
			Status:           o.Status,
			PaymentMode:      o.PaymentMode,
			Quantity:         o.Quantity,
			ShippingRate:     rate,
			UnitCost:         unitCost,
			UnitValue:        o.ProductValue,
			ShippingCost:     shippingCost,
			CODReceived:      codReceived,
			ProductCost:      productCost,
			Adjustment:       adjustment,
			Payable:          codReceived - shippingCost - productCost + adjustment,
		})
	}

	res.Summary.ShippingTotal = money.Round(shippingTotal, 0)
	res.Summary.CODTotal = money.Round(codTotal, 0)
	res.Summary.ProductCostTotal = money.Round(productCostTotal, 0)
	res.Summary.ReversalTotal = money.Round(reversalTotal, 0)
	res.Summary.GrossPayable = money.Round(codTotal-shippingTotal-productCostTotal, 0)
	res.Summary.FinalPayable = money.Round(codTotal-shippingTotal-productCostTotal+reversalTotal, 0)
	res.Summary.RowCount = len(res.Rows)

	return res
}

// isRTSRTO classifies return-to-seller / return-to-origin orders: a
// status containing "rts" or "rto", or a present return date.
func isRTSRTO(o *domain.OrderRecord) bool {
	s := strings.ToLower(o.Status)
	return strings.Contains(s, domain.StatusRTS) ||
		strings.Contains(s, domain.StatusRTO) ||
		o.RTSDate != nil
}

// findPriorPayout scans history for the first entry matching on order
// id, dropshipper email, product id and waybill. An empty waybill on
// both sides matches; present-versus-absent does not. Linear scan is
// the accepted hot spot at current history sizes; index by the same
// composite key if history grows large.
func findPriorPayout(history []domain.PayoutHistoryEntry, o *domain.OrderRecord) *domain.PayoutHistoryEntry {
	for i := range history {
		h := &history[i]
		if h.OrderID == o.OrderID &&
			h.DropshipperEmail == o.DropshipperEmail &&
			h.ProductID == o.ProductID &&
			h.Waybill == o.Waybill {
			return h
		}
	}
	return nil
}

func priorReference(h *domain.PayoutHistoryEntry) string {
	ref := "paid " + h.PaidAt.Format(dayLayout)
	if h.RunID != "" {
		ref += " in run " + h.RunID
	}
	return ref
}
