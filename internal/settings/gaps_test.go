package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfleet/payouts/internal/domain"
	"github.com/shopfleet/payouts/internal/settings"
)

func testOrders() []domain.OrderRecord {
	return []domain.OrderRecord{
		{OrderID: "O1", DropshipperEmail: "ana@x.ph", ProductID: "P1", ProductName: "Lamp", Carrier: "J&T Express"},
		{OrderID: "O2", DropshipperEmail: "ana@x.ph", ProductID: "P2", ProductName: "Mug", Carrier: "LBC"},
		{OrderID: "O3", DropshipperEmail: "ana@x.ph", ProductID: "P2", ProductName: "Mug", Carrier: "LBC"},
		{OrderID: "O4", DropshipperEmail: "ben@x.ph", ProductID: "P1", ProductName: "Lamp", Carrier: "J&T Express"},
	}
}

func TestMissingPrices(t *testing.T) {
	prices := domain.NewPriceIndex([]domain.ProductPrice{
		{DropshipperEmail: "ana@x.ph", ProductID: "P1", UnitCost: 100},
	})

	missing := settings.MissingPrices(testOrders(), prices)
	require.Len(t, missing, 2)

	// First-seen order, with affected-order counts.
	assert.Equal(t, "ana@x.ph", missing[0].DropshipperEmail)
	assert.Equal(t, "P2", missing[0].ProductID)
	assert.Equal(t, 2, missing[0].Orders)
	assert.Equal(t, "ben@x.ph", missing[1].DropshipperEmail)
	assert.Equal(t, "P1", missing[1].ProductID)
	assert.Equal(t, 1, missing[1].Orders)
}

func TestMissingPricesKeyIsPerDropshipper(t *testing.T) {
	// ben has no price for P1 even though ana does.
	prices := domain.NewPriceIndex([]domain.ProductPrice{
		{DropshipperEmail: "ana@x.ph", ProductID: "P1", UnitCost: 100},
		{DropshipperEmail: "ana@x.ph", ProductID: "P2", UnitCost: 50},
	})

	missing := settings.MissingPrices(testOrders(), prices)
	require.Len(t, missing, 1)
	assert.Equal(t, "ben@x.ph", missing[0].DropshipperEmail)
}

func TestMissingRates(t *testing.T) {
	rates := domain.NewRateIndex([]domain.ShippingRate{
		{Carrier: "J&T Express", Rate: 45},
	})

	missing := settings.MissingRates(testOrders(), rates)
	require.Len(t, missing, 1)
	assert.Equal(t, "LBC", missing[0].Carrier)
	assert.Equal(t, 2, missing[0].Orders)
}

func TestNoGapsWhenFullyConfigured(t *testing.T) {
	prices := domain.NewPriceIndex([]domain.ProductPrice{
		{DropshipperEmail: "ana@x.ph", ProductID: "P1", UnitCost: 100},
		{DropshipperEmail: "ana@x.ph", ProductID: "P2", UnitCost: 50},
		{DropshipperEmail: "ben@x.ph", ProductID: "P1", UnitCost: 90},
	})
	rates := domain.NewRateIndex([]domain.ShippingRate{
		{Carrier: "J&T Express", Rate: 45},
		{Carrier: "LBC", Rate: 60},
	})

	assert.Empty(t, settings.MissingPrices(testOrders(), prices))
	assert.Empty(t, settings.MissingRates(testOrders(), rates))
}

func TestExportAllIsSorted(t *testing.T) {
	prices := domain.NewPriceIndex([]domain.ProductPrice{
		{DropshipperEmail: "zoe@x.ph", ProductID: "P1", UnitCost: 10},
		{DropshipperEmail: "ana@x.ph", ProductID: "P2", UnitCost: 20},
		{DropshipperEmail: "ana@x.ph", ProductID: "P1", UnitCost: 30},
	})
	rates := domain.NewRateIndex([]domain.ShippingRate{
		{Carrier: "Ninja Van", Rate: 50},
		{Carrier: "Flash Express", Rate: 42},
	})

	exp := settings.ExportAll(prices, rates)
	require.Len(t, exp.Prices, 3)
	assert.Equal(t, "ana@x.ph", exp.Prices[0].DropshipperEmail)
	assert.Equal(t, "P1", exp.Prices[0].ProductID)
	assert.Equal(t, "P2", exp.Prices[1].ProductID)
	assert.Equal(t, "zoe@x.ph", exp.Prices[2].DropshipperEmail)

	require.Len(t, exp.Rates, 2)
	assert.Equal(t, "Flash Express", exp.Rates[0].Carrier)
	assert.Equal(t, "Ninja Van", exp.Rates[1].Carrier)
}
