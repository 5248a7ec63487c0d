// Command generate writes deterministic sample data into testdata/:
// an order export, a product price list and a carrier rate card, each
// as JSON (used by the server's seed path) and CSV (used to exercise
// the import endpoints).
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopfleet/payouts/internal/domain"
)

var carriers = []string{"J&T Express", "Flash Express", "Ninja Van", "LBC"}

var dropshippers = []string{
	"ana@stylishfinds.ph",
	"marco@gadgetbay.ph",
	"lea@homeplus.ph",
}

var statuses = []string{"delivered", "shipped", "cancelled", "rts", "in-transit"}

func main() {
	rng := rand.New(rand.NewSource(42))
	baseDir := findTestdataDir()

	// Date range: 2024-01-01 to 2024-01-28.
	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dayRange := 28

	// Products per dropshipper, with unit costs and COD values.
	type product struct {
		id    string
		name  string
		cost  float64
		value float64
	}
	catalog := map[string][]product{}
	for di, email := range dropshippers {
		var ps []product
		for pi := 1; pi <= 5; pi++ {
			ps = append(ps, product{
				id:    fmt.Sprintf("P%d%02d", di+1, pi),
				name:  fmt.Sprintf("Product %d-%d", di+1, pi),
				cost:  float64(50 + rng.Intn(20)*10),
				value: float64(150 + rng.Intn(40)*10),
			})
		}
		catalog[email] = ps
	}

	var orders []domain.OrderRecord
	n := 0
	for _, email := range dropshippers {
		for i := 0; i < 60; i++ {
			n++
			p := catalog[email][rng.Intn(len(catalog[email]))]
			status := statuses[rng.Intn(len(statuses))]
			orderDate := startDate.AddDate(0, 0, rng.Intn(dayRange))

			o := domain.OrderRecord{
				OrderID:          fmt.Sprintf("ORD-%05d", n),
				Waybill:          fmt.Sprintf("WB%08d", 10000000+n),
				DropshipperEmail: email,
				ProductID:        p.id,
				ProductName:      p.name,
				SKU:              p.id + "-STD",
				Carrier:          carriers[rng.Intn(len(carriers))],
				Quantity:         1 + rng.Intn(3),
				OrderDate:        orderDate,
				Status:           status,
				PaymentMode:      pickPaymentMode(rng),
				ProductValue:     p.value,
			}
			if status == "delivered" {
				d := orderDate.AddDate(0, 0, 2+rng.Intn(5))
				o.DeliveredDate = &d
			}
			if status == "rts" {
				d := orderDate.AddDate(0, 0, 5+rng.Intn(7))
				o.RTSDate = &d
			}
			orders = append(orders, o)
		}
	}

	var prices []domain.ProductPrice
	for _, email := range dropshippers {
		for pi, p := range catalog[email] {
			// Leave the last product of each dropshipper unmapped so the
			// gap reporter has something to find.
			if pi == len(catalog[email])-1 {
				continue
			}
			prices = append(prices, domain.ProductPrice{
				DropshipperEmail: email,
				ProductID:        p.id,
				UnitCost:         p.cost,
			})
		}
	}

	rates := []domain.ShippingRate{
		{Carrier: "J&T Express", Rate: 45},
		{Carrier: "Flash Express", Rate: 42},
		{Carrier: "Ninja Van", Rate: 50},
		// LBC intentionally unconfigured, again for the gap reporter.
	}

	writeJSON(filepath.Join(baseDir, "orders.json"), orders)
	writeJSON(filepath.Join(baseDir, "prices.json"), prices)
	writeJSON(filepath.Join(baseDir, "rates.json"), rates)

	writeOrdersCSV(filepath.Join(baseDir, "orders.csv"), orders)
	writePricesCSV(filepath.Join(baseDir, "prices.csv"), prices)
	writeRatesCSV(filepath.Join(baseDir, "rates.csv"), rates)

	fmt.Printf("Generated %d orders, %d prices, %d rates in %s\n",
		len(orders), len(prices), len(rates), baseDir)
}

func pickPaymentMode(rng *rand.Rand) string {
	if rng.Intn(100) < 70 {
		return "COD"
	}
	return "prepaid-card"
}

func findTestdataDir() string {
	candidates := []string{"testdata", filepath.Join("..", ".."), "."}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && fi.IsDir() {
			if filepath.Base(c) == "testdata" {
				return c
			}
			if fi, err := os.Stat(filepath.Join(c, "testdata")); err == nil && fi.IsDir() {
				return filepath.Join(c, "testdata")
			}
		}
	}
	return "."
}

func writeJSON(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		panic(err)
	}
}

func writeOrdersCSV(path string, orders []domain.OrderRecord) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{
		"order_id", "waybill", "dropshipper_email", "product_id", "product_name",
		"sku", "carrier", "quantity", "order_date", "delivered_date", "rts_date",
		"status", "payment_mode", "product_value",
	})
	for _, o := range orders {
		w.Write([]string{
			o.OrderID, o.Waybill, o.DropshipperEmail, o.ProductID, o.ProductName,
			o.SKU, o.Carrier, strconv.Itoa(o.Quantity),
			o.OrderDate.Format("2006-01-02"),
			formatOptionalDay(o.DeliveredDate), formatOptionalDay(o.RTSDate),
			o.Status, o.PaymentMode,
			strconv.FormatFloat(o.ProductValue, 'f', 2, 64),
		})
	}
}

func writePricesCSV(path string, prices []domain.ProductPrice) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"dropshipper_email", "product_id", "unit_cost"})
	for _, p := range prices {
		w.Write([]string{p.DropshipperEmail, p.ProductID,
			strconv.FormatFloat(p.UnitCost, 'f', 2, 64)})
	}
}

func writeRatesCSV(path string, rates []domain.ShippingRate) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"carrier", "rate"})
	for _, r := range rates {
		w.Write([]string{r.Carrier, strconv.FormatFloat(r.Rate, 'f', 2, 64)})
	}
}

func formatOptionalDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
