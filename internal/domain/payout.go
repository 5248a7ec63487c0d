package domain

import "time"

// PayoutHistoryEntry records an amount paid for a specific order line in
// a prior payout run. It exists solely so that a later RTS/RTO
// transition can be reversed.
type PayoutHistoryEntry struct {
	OrderID          string    `json:"order_id"`
	DropshipperEmail string    `json:"dropshipper_email"`
	ProductID        string    `json:"product_id"`
	Waybill          string    `json:"waybill,omitempty"`
	PaidAmount       float64   `json:"paid_amount"`
	PaidAt           time.Time `json:"paid_at"`
	RunID            string    `json:"run_id"`
}

// PayoutRow is the per-order audit trail for one payout run. A row is
// emitted only when at least one rule produced non-zero activity for
// the order; it is never mutated after creation.
type PayoutRow struct {
	OrderID          string  `json:"order_id"`
	Waybill          string  `json:"waybill,omitempty"`
	DropshipperEmail string  `json:"dropshipper_email"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	SKU              string  `json:"sku,omitempty"`
	Carrier          string  `json:"carrier"`
	Status           string  `json:"status"`
	PaymentMode      string  `json:"payment_mode"`
	Quantity         int     `json:"quantity"`
	ShippingRate     float64 `json:"shipping_rate"` // raw per-order rate used
	UnitCost         float64 `json:"unit_cost"`     // raw per-unit cost used
	UnitValue        float64 `json:"unit_value"`    // per-unit COD value used
	ShippingCost     float64 `json:"shipping_cost"`
	CODReceived      float64 `json:"cod_received"`
	ProductCost      float64 `json:"product_cost"`
	Adjustment       float64 `json:"adjustment"`
	Payable          float64 `json:"payable"` // unrounded at row level
}

// Adjustment is a reversal entry for an order that was paid out in a
// prior run and later transitioned to RTS/RTO. Amount is negative.
type Adjustment struct {
	OrderID   string  `json:"order_id"`
	Reason    string  `json:"reason"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

// PayoutSummary carries the rounded aggregates for one run. Rounding is
// applied once here, never at row level.
type PayoutSummary struct {
	ShippingTotal     float64 `json:"shipping_total"`
	CODTotal          float64 `json:"cod_total"`
	ProductCostTotal  float64 `json:"product_cost_total"`
	ReversalTotal     float64 `json:"reversal_total"`
	GrossPayable      float64 `json:"gross_payable"`
	FinalPayable      float64 `json:"final_payable"`
	ShippingOrders    int     `json:"shipping_orders"`
	CODOrders         int     `json:"cod_orders"`
	ProductCostOrders int     `json:"product_cost_orders"`
	RowCount          int     `json:"row_count"`
}

// PayoutRun is a persisted payout computation: the identifier, the two
// windows it was scoped to, and the resulting summary.
type PayoutRun struct {
	ID            string        `json:"id"`
	OrderFrom     string        `json:"order_from"`
	OrderTo       string        `json:"order_to"`
	DeliveredFrom string        `json:"delivered_from"`
	DeliveredTo   string        `json:"delivered_to"`
	Summary       PayoutSummary `json:"summary"`
	CreatedAt     time.Time     `json:"created_at"`
}
