// Package settings reports on payout configuration without touching the
// payout rules themselves: which products and carriers appearing in the
// order book have no price or rate entry, and a flat export of
// everything that is configured. It is a read-only consumer of the same
// indexes the engine uses; if a gap exists the engine silently computes
// with zero, and this package is how that gap gets surfaced.
package settings

import (
	"sort"

	"github.com/shopfleet/payouts/internal/domain"
)

// MissingPrice is a (dropshipper, product) pair seen in orders with no
// configured unit cost.
type MissingPrice struct {
	DropshipperEmail string `json:"dropshipper_email"`
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	Orders           int    `json:"orders"`
}

// MissingRate is a carrier seen in orders with no configured rate.
type MissingRate struct {
	Carrier string `json:"carrier"`
	Orders  int    `json:"orders"`
}

// Export is the all-settings snapshot used by the settings exporter.
type Export struct {
	Prices []domain.ProductPrice `json:"prices"`
	Rates  []domain.ShippingRate `json:"rates"`
}

// MissingPrices returns every distinct (dropshipper, product) pair in
// the order collection without a price entry, in first-seen order, with
// the number of order lines affected.
func MissingPrices(orders []domain.OrderRecord, prices domain.PriceIndex) []MissingPrice {
	var result []MissingPrice
	seen := make(map[domain.PriceKey]int)

	for _, o := range orders {
		if prices.Has(o.DropshipperEmail, o.ProductID) {
			continue
		}
		key := domain.PriceKey{DropshipperEmail: o.DropshipperEmail, ProductID: o.ProductID}
		if i, ok := seen[key]; ok {
			result[i].Orders++
			continue
		}
		seen[key] = len(result)
		result = append(result, MissingPrice{
			DropshipperEmail: o.DropshipperEmail,
			ProductID:        o.ProductID,
			ProductName:      o.ProductName,
			Orders:           1,
		})
	}
	return result
}

// MissingRates returns every distinct carrier in the order collection
// without a rate entry, in first-seen order, with the number of order
// lines affected.
func MissingRates(orders []domain.OrderRecord, rates domain.RateIndex) []MissingRate {
	var result []MissingRate
	seen := make(map[string]int)

	for _, o := range orders {
		if o.Carrier == "" || rates.Has(o.Carrier) {
			continue
		}
		if i, ok := seen[o.Carrier]; ok {
			result[i].Orders++
			continue
		}
		seen[o.Carrier] = len(result)
		result = append(result, MissingRate{Carrier: o.Carrier, Orders: 1})
	}
	return result
}

// ExportAll flattens both indexes into a deterministic, sorted snapshot.
func ExportAll(prices domain.PriceIndex, rates domain.RateIndex) Export {
	exp := Export{
		Prices: make([]domain.ProductPrice, 0, len(prices)),
		Rates:  make([]domain.ShippingRate, 0, len(rates)),
	}
	for key, cost := range prices {
		exp.Prices = append(exp.Prices, domain.ProductPrice{
			DropshipperEmail: key.DropshipperEmail,
			ProductID:        key.ProductID,
			UnitCost:         cost,
		})
	}
	for carrier, rate := range rates {
		exp.Rates = append(exp.Rates, domain.ShippingRate{Carrier: carrier, Rate: rate})
	}

	sort.Slice(exp.Prices, func(i, j int) bool {
		if exp.Prices[i].DropshipperEmail != exp.Prices[j].DropshipperEmail {
			return exp.Prices[i].DropshipperEmail < exp.Prices[j].DropshipperEmail
		}
		return exp.Prices[i].ProductID < exp.Prices[j].ProductID
	})
	sort.Slice(exp.Rates, func(i, j int) bool {
		return exp.Rates[i].Carrier < exp.Rates[j].Carrier
	})
	return exp
}
