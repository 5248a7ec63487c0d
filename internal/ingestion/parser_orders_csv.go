package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopfleet/payouts/internal/domain"
)

// ParseOrdersCSV parses a fulfillment order export.
//
// Expected header:
//
//	order_id,waybill,dropshipper_email,product_id,product_name,sku,carrier,quantity,order_date,delivered_date,rts_date,status,payment_mode,product_value
//
// Quantity and product_value must parse; a bad value fails the file
// with a line number. Dates are fail-soft: an unparsable date is stored
// as missing, which excludes the order from date-gated payout rules
// without failing the batch.
func ParseOrdersCSV(data []byte) ([]domain.OrderRecord, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 14 {
		return nil, fmt.Errorf("expected 14 columns, got %d", len(header))
	}

	var orders []domain.OrderRecord
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
		if len(row) < 14 {
			continue
		}

		qty, err := strconv.Atoi(strings.TrimSpace(row[7]))
		if err != nil {
			return nil, fmt.Errorf("line %d quantity: %w", lineNum, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[13]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d product_value: %w", lineNum, err)
		}

		orders = append(orders, domain.OrderRecord{
			OrderID:          strings.TrimSpace(row[0]),
			Waybill:          strings.TrimSpace(row[1]),
			DropshipperEmail: strings.TrimSpace(row[2]),
			ProductID:        strings.TrimSpace(row[3]),
			ProductName:      strings.TrimSpace(row[4]),
			SKU:              strings.TrimSpace(row[5]),
			Carrier:          strings.TrimSpace(row[6]),
			Quantity:         qty,
			OrderDate:        parseDateSoft(row[8]),
			DeliveredDate:    parseDateSoftPtr(row[9]),
			RTSDate:          parseDateSoftPtr(row[10]),
			Status:           strings.TrimSpace(row[11]),
			PaymentMode:      strings.TrimSpace(row[12]),
			ProductValue:     value,
		})
	}

	return orders, nil
}

// parseDateSoft returns the zero time for empty or unparsable input.
func parseDateSoft(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

func parseDateSoftPtr(s string) *time.Time {
	t := parseDateSoft(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
