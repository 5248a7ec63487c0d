package ingestion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfleet/payouts/internal/ingestion"
)

const ordersHeader = "order_id,waybill,dropshipper_email,product_id,product_name,sku,carrier,quantity,order_date,delivered_date,rts_date,status,payment_mode,product_value\n"

func TestParseOrdersCSV(t *testing.T) {
	data := []byte(ordersHeader +
		"ORD-001,WB100,ana@x.ph,P1,Lamp,P1-STD,J&T Express,2,2024-01-10,2024-01-14,,delivered,COD,250.00\n" +
		"ORD-002,,ana@x.ph,P2,Mug,,LBC,1,2024-01-12,,2024-01-20,rts,prepaid,120.00\n")

	orders, err := ingestion.ParseOrdersCSV(data)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	o := orders[0]
	assert.Equal(t, "ORD-001", o.OrderID)
	assert.Equal(t, "WB100", o.Waybill)
	assert.Equal(t, 2, o.Quantity)
	assert.Equal(t, 250.0, o.ProductValue)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), o.OrderDate)
	require.NotNil(t, o.DeliveredDate)
	assert.Nil(t, o.RTSDate)

	o = orders[1]
	assert.Empty(t, o.Waybill)
	assert.Nil(t, o.DeliveredDate)
	require.NotNil(t, o.RTSDate)
	assert.Equal(t, "rts", o.Status)
}

func TestParseOrdersCSVBadDateIsFailSoft(t *testing.T) {
	data := []byte(ordersHeader +
		"ORD-001,WB100,ana@x.ph,P1,Lamp,,LBC,1,13/01/2024,not-a-date,,shipped,COD,250.00\n")

	orders, err := ingestion.ParseOrdersCSV(data)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	// Dates degrade to missing; the order is kept and simply falls
	// outside every payout window.
	assert.True(t, orders[0].OrderDate.IsZero())
	assert.Nil(t, orders[0].DeliveredDate)
}

func TestParseOrdersCSVBadQuantityFailsFile(t *testing.T) {
	data := []byte(ordersHeader +
		"ORD-001,WB100,ana@x.ph,P1,Lamp,,LBC,two,2024-01-10,,,shipped,COD,250.00\n")

	_, err := ingestion.ParseOrdersCSV(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseOrdersCSVRejectsShortHeader(t *testing.T) {
	_, err := ingestion.ParseOrdersCSV([]byte("order_id,waybill\n"))
	require.Error(t, err)
}

func TestParsePricesCSV(t *testing.T) {
	data := []byte("dropshipper_email,product_id,unit_cost\n" +
		"ana@x.ph,P1,100.00\n" +
		"ben@x.ph,P2,85.50\n")

	prices, err := ingestion.ParsePricesCSV(data)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, 100.0, prices[0].UnitCost)
	assert.Equal(t, 85.5, prices[1].UnitCost)
}

func TestParsePricesCSVBadCostFailsFile(t *testing.T) {
	data := []byte("dropshipper_email,product_id,unit_cost\nana@x.ph,P1,free\n")
	_, err := ingestion.ParsePricesCSV(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit_cost")
}

func TestParseRatesCSV(t *testing.T) {
	data := []byte("carrier,rate\nJ&T Express,45.00\nLBC,60.00\n")

	rates, err := ingestion.ParseRatesCSV(data)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "J&T Express", rates[0].Carrier)
	assert.Equal(t, 45.0, rates[0].Rate)
}
