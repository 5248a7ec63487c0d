package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopfleet/payouts/internal/domain"
)

// PayoutRepo persists payout runs with their audit rows and reversal
// adjustments, and derives the payout history consumed by the reversal
// rule on later runs.
type PayoutRepo struct {
	db *sql.DB
}

func NewPayoutRepo(db *sql.DB) *PayoutRepo {
	return &PayoutRepo{db: db}
}

// SaveRun stores a run, its rows and its adjustments atomically.
func (r *PayoutRepo) SaveRun(run *domain.PayoutRun, rows []domain.PayoutRow, adjs []domain.Adjustment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	s := run.Summary
	_, err = tx.Exec(
		`INSERT INTO payout_runs
		(id, order_from, order_to, delivered_from, delivered_to,
		 shipping_total, cod_total, product_cost_total, reversal_total,
		 gross_payable, final_payable, shipping_orders, cod_orders,
		 product_cost_orders, row_count, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.OrderFrom, run.OrderTo, run.DeliveredFrom, run.DeliveredTo,
		s.ShippingTotal, s.CODTotal, s.ProductCostTotal, s.ReversalTotal,
		s.GrossPayable, s.FinalPayable, s.ShippingOrders, s.CODOrders,
		s.ProductCostOrders, s.RowCount, run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	rowStmt, err := tx.Prepare(
		`INSERT INTO payout_rows
		(run_id, order_id, waybill, dropshipper_email, product_id, product_name,
		 sku, carrier, status, payment_mode, quantity, shipping_rate, unit_cost,
		 unit_value, shipping_cost, cod_received, product_cost, adjustment, payable)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare rows: %w", err)
	}
	defer rowStmt.Close()

	for i := range rows {
		row := &rows[i]
		_, err := rowStmt.Exec(
			run.ID, row.OrderID, row.Waybill, row.DropshipperEmail, row.ProductID,
			row.ProductName, row.SKU, row.Carrier, row.Status, row.PaymentMode,
			row.Quantity, row.ShippingRate, row.UnitCost, row.UnitValue,
			row.ShippingCost, row.CODReceived, row.ProductCost, row.Adjustment,
			row.Payable,
		)
		if err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	adjStmt, err := tx.Prepare(
		`INSERT INTO payout_adjustments (run_id, order_id, reason, amount, reference)
		VALUES (?,?,?,?,?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare adjustments: %w", err)
	}
	defer adjStmt.Close()

	for i := range adjs {
		a := &adjs[i]
		if _, err := adjStmt.Exec(run.ID, a.OrderID, a.Reason, a.Amount, a.Reference); err != nil {
			return fmt.Errorf("insert adjustment %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListRuns returns all persisted runs, most recent first.
func (r *PayoutRepo) ListRuns() ([]domain.PayoutRun, error) {
	rows, err := r.db.Query(runSelect + " ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.PayoutRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns one run with its rows and adjustments, or nil if the
// run does not exist.
func (r *PayoutRepo) GetRun(id string) (*domain.PayoutRun, []domain.PayoutRow, []domain.Adjustment, error) {
	rows, err := r.db.Query(runSelect+" WHERE id = ?", id)
	if err != nil {
		return nil, nil, nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil, nil, rows.Err()
	}
	run, err := scanRun(rows)
	if err != nil {
		return nil, nil, nil, err
	}
	rows.Close()

	payoutRows, err := r.rowsForRun(id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("rows: %w", err)
	}
	adjs, err := r.adjustmentsForRun(id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("adjustments: %w", err)
	}
	return run, payoutRows, adjs, nil
}

// HistoryEntries derives the payout history for the reversal rule: one
// entry per persisted row with a positive payable, most recent run
// first so a reversal cites the latest prior payment.
func (r *PayoutRepo) HistoryEntries() ([]domain.PayoutHistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT pr.order_id, pr.dropshipper_email, pr.product_id, pr.waybill,
		       pr.payable, runs.created_at, runs.id
		FROM payout_rows pr
		JOIN payout_runs runs ON runs.id = pr.run_id
		WHERE pr.payable > 0
		ORDER BY runs.created_at DESC, runs.id, pr.rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PayoutHistoryEntry
	for rows.Next() {
		var e domain.PayoutHistoryEntry
		var paidAt string
		if err := rows.Scan(&e.OrderID, &e.DropshipperEmail, &e.ProductID,
			&e.Waybill, &e.PaidAmount, &paidAt, &e.RunID); err != nil {
			return nil, err
		}
		e.PaidAt, _ = time.Parse(time.RFC3339, paidAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// --- helpers ---

const runSelect = `SELECT id, order_from, order_to, delivered_from, delivered_to,
	shipping_total, cod_total, product_cost_total, reversal_total,
	gross_payable, final_payable, shipping_orders, cod_orders,
	product_cost_orders, row_count, created_at
	FROM payout_runs`

func scanRun(rows *sql.Rows) (*domain.PayoutRun, error) {
	var run domain.PayoutRun
	var createdAt string
	s := &run.Summary

	err := rows.Scan(
		&run.ID, &run.OrderFrom, &run.OrderTo, &run.DeliveredFrom, &run.DeliveredTo,
		&s.ShippingTotal, &s.CODTotal, &s.ProductCostTotal, &s.ReversalTotal,
		&s.GrossPayable, &s.FinalPayable, &s.ShippingOrders, &s.CODOrders,
		&s.ProductCostOrders, &s.RowCount, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &run, nil
}

func (r *PayoutRepo) rowsForRun(runID string) ([]domain.PayoutRow, error) {
	rows, err := r.db.Query(`
		SELECT order_id, waybill, dropshipper_email, product_id, product_name,
		       sku, carrier, status, payment_mode, quantity, shipping_rate,
		       unit_cost, unit_value, shipping_cost, cod_received, product_cost,
		       adjustment, payable
		FROM payout_rows WHERE run_id = ? ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PayoutRow
	for rows.Next() {
		var row domain.PayoutRow
		err := rows.Scan(
			&row.OrderID, &row.Waybill, &row.DropshipperEmail, &row.ProductID,
			&row.ProductName, &row.SKU, &row.Carrier, &row.Status, &row.PaymentMode,
			&row.Quantity, &row.ShippingRate, &row.UnitCost, &row.UnitValue,
			&row.ShippingCost, &row.CODReceived, &row.ProductCost, &row.Adjustment,
			&row.Payable,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PayoutRepo) adjustmentsForRun(runID string) ([]domain.Adjustment, error) {
	rows, err := r.db.Query(`
		SELECT order_id, reason, amount, reference
		FROM payout_adjustments WHERE run_id = ? ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Adjustment
	for rows.Next() {
		var a domain.Adjustment
		if err := rows.Scan(&a.OrderID, &a.Reason, &a.Amount, &a.Reference); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
