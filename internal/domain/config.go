package domain

// ProductPrice is a configured per-unit product cost for one
// dropshipper's product.
type ProductPrice struct {
	DropshipperEmail string  `json:"dropshipper_email"`
	ProductID        string  `json:"product_id"`
	UnitCost         float64 `json:"unit_cost"`
}

// ShippingRate is a configured flat per-order rate for one carrier.
type ShippingRate struct {
	Carrier string  `json:"carrier"`
	Rate    float64 `json:"rate"`
}

// PriceKey is the composite lookup key for product costs.
type PriceKey struct {
	DropshipperEmail string
	ProductID        string
}

// PriceIndex maps (dropshipper email, product id) to a per-unit product
// cost. Built once per payout run and treated as a frozen snapshot.
type PriceIndex map[PriceKey]float64

// NewPriceIndex builds a PriceIndex from configured prices. Later
// duplicates overwrite earlier ones.
func NewPriceIndex(prices []ProductPrice) PriceIndex {
	idx := make(PriceIndex, len(prices))
	for _, p := range prices {
		idx[PriceKey{p.DropshipperEmail, p.ProductID}] = p.UnitCost
	}
	return idx
}

// UnitCost returns the configured per-unit cost, or 0 when the product
// is unmapped. Missing configuration is a reporting concern, not an
// error.
func (idx PriceIndex) UnitCost(dropshipperEmail, productID string) float64 {
	return idx[PriceKey{dropshipperEmail, productID}]
}

// Has reports whether a price is configured for the given key.
func (idx PriceIndex) Has(dropshipperEmail, productID string) bool {
	_, ok := idx[PriceKey{dropshipperEmail, productID}]
	return ok
}

// RateIndex maps a carrier name to its flat per-order shipping rate.
type RateIndex map[string]float64

// NewRateIndex builds a RateIndex from configured rates.
func NewRateIndex(rates []ShippingRate) RateIndex {
	idx := make(RateIndex, len(rates))
	for _, r := range rates {
		idx[r.Carrier] = r.Rate
	}
	return idx
}

// Rate returns the per-order rate for a carrier, or 0 when the carrier
// is unknown.
func (idx RateIndex) Rate(carrier string) float64 {
	return idx[carrier]
}

// Has reports whether a rate is configured for the given carrier.
func (idx RateIndex) Has(carrier string) bool {
	_, ok := idx[carrier]
	return ok
}
