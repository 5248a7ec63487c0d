package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopfleet/payouts/internal/domain"
)

// ParsePricesCSV parses a product price list.
//
// Expected header:
//
//	dropshipper_email,product_id,unit_cost
func ParsePricesCSV(data []byte) ([]domain.ProductPrice, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("expected 3 columns, got %d", len(header))
	}

	var prices []domain.ProductPrice
	lineNum := 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(row) < 3 {
			continue
		}

		cost, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d unit_cost: %w", lineNum, err)
		}

		prices = append(prices, domain.ProductPrice{
			DropshipperEmail: strings.TrimSpace(row[0]),
			ProductID:        strings.TrimSpace(row[1]),
			UnitCost:         cost,
		})
	}

	return prices, nil
}

// ParseRatesCSV parses a carrier rate card.
//
// Expected header:
//
//	carrier,rate
func ParseRatesCSV(data []byte) ([]domain.ShippingRate, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("expected 2 columns, got %d", len(header))
	}

	var rates []domain.ShippingRate
	lineNum := 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(row) < 2 {
			continue
		}

		rate, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d rate: %w", lineNum, err)
		}

		rates = append(rates, domain.ShippingRate{
			Carrier: strings.TrimSpace(row[0]),
			Rate:    rate,
		})
	}

	return rates, nil
}
