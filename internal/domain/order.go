package domain

import "time"

// Well-known order statuses. Upstream shipment exports are not strictly
// enumerated: RTS/RTO shows up both as a bare status and embedded in
// longer strings ("rts-initiated"), so classification is substring based.
const (
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
	StatusShipped   = "shipped"
	StatusRTS       = "rts"
	StatusRTO       = "rto"
)

// PaymentModeCOD is matched as a case-insensitive substring of the
// payment mode ("COD", "cod-standard", ...). Anything else is prepaid.
const PaymentModeCOD = "COD"

// OrderRecord is one line item of one shipment, as imported from a
// fulfillment export. It is immutable for the duration of a payout run.
type OrderRecord struct {
	OrderID          string     `json:"order_id"`
	Waybill          string     `json:"waybill,omitempty"`
	DropshipperEmail string     `json:"dropshipper_email"`
	ProductID        string     `json:"product_id"`
	ProductName      string     `json:"product_name"`
	SKU              string     `json:"sku,omitempty"`
	Carrier          string     `json:"carrier"`
	Quantity         int        `json:"quantity"`
	OrderDate        time.Time  `json:"order_date"`
	DeliveredDate    *time.Time `json:"delivered_date,omitempty"`
	RTSDate          *time.Time `json:"rts_date,omitempty"`
	Status           string     `json:"status"`
	PaymentMode      string     `json:"payment_mode"`
	ProductValue     float64    `json:"product_value"` // per-unit COD collection amount
}
