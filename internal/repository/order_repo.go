package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopfleet/payouts/internal/domain"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

const orderColumns = `order_id, waybill, dropshipper_email, product_id, product_name,
	 sku, carrier, quantity, order_date, delivered_date, rts_date,
	 status, payment_mode, product_value`

// BulkInsert inserts order records, skipping lines already present
// (same order, dropshipper, product and waybill). Re-importing the same
// export is therefore idempotent.
func (r *OrderRepo) BulkInsert(orders []domain.OrderRecord) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO orders (` + orderColumns + `)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i := range orders {
		o := &orders[i]
		res, err := stmt.Exec(
			o.OrderID, o.Waybill, o.DropshipperEmail, o.ProductID, o.ProductName,
			o.SKU, o.Carrier, o.Quantity, formatZeroableTime(o.OrderDate),
			formatNullableTime(o.DeliveredDate), formatNullableTime(o.RTSDate),
			o.Status, o.PaymentMode, o.ProductValue,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d: %w", i, err)
		}
		ra, _ := res.RowsAffected()
		inserted += int(ra)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *OrderRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

// All returns every order record, in stable import order.
func (r *OrderRepo) All() ([]domain.OrderRecord, error) {
	rows, err := r.db.Query(
		"SELECT " + orderColumns + " FROM orders ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

type OrderFilter struct {
	Dropshipper string
	Status      string
	Carrier     string
	From        *time.Time
	To          *time.Time
	Page        int
	Limit       int
}

func (r *OrderRepo) List(f OrderFilter) ([]domain.OrderRecord, int, error) {
	where, args := buildOrderWhere(f)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	offset := (f.Page - 1) * f.Limit

	q := "SELECT " + orderColumns + " FROM orders" + where +
		" ORDER BY order_date DESC, rowid LIMIT ? OFFSET ?"
	args = append(args, f.Limit, offset)

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	return orders, total, err
}

// StatusCount is an order tally for one status value, for the dashboard.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

func (r *OrderRepo) CountByStatus() ([]StatusCount, error) {
	rows, err := r.db.Query(
		"SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

// CarrierVolume is the order and unit volume shipped with one carrier.
type CarrierVolume struct {
	Carrier string `json:"carrier"`
	Orders  int    `json:"orders"`
	Units   int    `json:"units"`
}

func (r *OrderRepo) VolumeByCarrier() ([]CarrierVolume, error) {
	rows, err := r.db.Query(`
		SELECT carrier, COUNT(*), COALESCE(SUM(quantity), 0)
		FROM orders GROUP BY carrier ORDER BY carrier
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CarrierVolume
	for rows.Next() {
		var cv CarrierVolume
		if err := rows.Scan(&cv.Carrier, &cv.Orders, &cv.Units); err != nil {
			return nil, err
		}
		result = append(result, cv)
	}
	return result, rows.Err()
}

// --- helpers ---

func buildOrderWhere(f OrderFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.Dropshipper != "" {
		clauses = append(clauses, "dropshipper_email = ?")
		args = append(args, f.Dropshipper)
	}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if f.Carrier != "" {
		clauses = append(clauses, "carrier = ?")
		args = append(args, f.Carrier)
	}
	if f.From != nil {
		clauses = append(clauses, "order_date >= ?")
		args = append(args, f.From.Format(time.RFC3339))
	}
	if f.To != nil {
		clauses = append(clauses, "order_date <= ?")
		args = append(args, f.To.Format(time.RFC3339))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func collectOrders(rows *sql.Rows) ([]domain.OrderRecord, error) {
	var orders []domain.OrderRecord
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func scanOrder(rows *sql.Rows) (*domain.OrderRecord, error) {
	var o domain.OrderRecord
	var orderDate, deliveredDate, rtsDate sql.NullString

	err := rows.Scan(
		&o.OrderID, &o.Waybill, &o.DropshipperEmail, &o.ProductID, &o.ProductName,
		&o.SKU, &o.Carrier, &o.Quantity, &orderDate, &deliveredDate, &rtsDate,
		&o.Status, &o.PaymentMode, &o.ProductValue,
	)
	if err != nil {
		return nil, err
	}

	if orderDate.Valid {
		o.OrderDate, _ = time.Parse(time.RFC3339, orderDate.String)
	}
	if deliveredDate.Valid {
		t, _ := time.Parse(time.RFC3339, deliveredDate.String)
		o.DeliveredDate = &t
	}
	if rtsDate.Valid {
		t, _ := time.Parse(time.RFC3339, rtsDate.String)
		o.RTSDate = &t
	}
	return &o, nil
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

// formatZeroableTime stores the zero time as NULL so that an order with
// an unparsable date round-trips as "no date" rather than year 1.
func formatZeroableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}
