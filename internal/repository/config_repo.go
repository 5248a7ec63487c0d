package repository

import (
	"database/sql"
	"fmt"

	"github.com/shopfleet/payouts/internal/domain"
)

// ConfigRepo persists the two payout lookup tables: per-product unit
// costs and per-carrier shipping rates.
type ConfigRepo struct {
	db *sql.DB
}

func NewConfigRepo(db *sql.DB) *ConfigRepo {
	return &ConfigRepo{db: db}
}

// UpsertPrices inserts or updates product price entries.
func (r *ConfigRepo) UpsertPrices(prices []domain.ProductPrice) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO product_prices (dropshipper_email, product_id, unit_cost)
		VALUES (?,?,?)
		ON CONFLICT (dropshipper_email, product_id) DO UPDATE SET unit_cost = excluded.unit_cost
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i, p := range prices {
		if _, err := stmt.Exec(p.DropshipperEmail, p.ProductID, p.UnitCost); err != nil {
			return i, fmt.Errorf("upsert price %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(prices), nil
}

// UpsertRates inserts or updates shipping rate entries.
func (r *ConfigRepo) UpsertRates(rates []domain.ShippingRate) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO shipping_rates (carrier, rate) VALUES (?,?)
		ON CONFLICT (carrier) DO UPDATE SET rate = excluded.rate
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i, sr := range rates {
		if _, err := stmt.Exec(sr.Carrier, sr.Rate); err != nil {
			return i, fmt.Errorf("upsert rate %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(rates), nil
}

// AllPrices returns every configured product price.
func (r *ConfigRepo) AllPrices() ([]domain.ProductPrice, error) {
	rows, err := r.db.Query(`
		SELECT dropshipper_email, product_id, unit_cost
		FROM product_prices ORDER BY dropshipper_email, product_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []domain.ProductPrice
	for rows.Next() {
		var p domain.ProductPrice
		if err := rows.Scan(&p.DropshipperEmail, &p.ProductID, &p.UnitCost); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// AllRates returns every configured shipping rate.
func (r *ConfigRepo) AllRates() ([]domain.ShippingRate, error) {
	rows, err := r.db.Query("SELECT carrier, rate FROM shipping_rates ORDER BY carrier")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []domain.ShippingRate
	for rows.Next() {
		var sr domain.ShippingRate
		if err := rows.Scan(&sr.Carrier, &sr.Rate); err != nil {
			return nil, err
		}
		rates = append(rates, sr)
	}
	return rates, rows.Err()
}

// PriceIndex builds the lookup snapshot the engine consumes.
func (r *ConfigRepo) PriceIndex() (domain.PriceIndex, error) {
	prices, err := r.AllPrices()
	if err != nil {
		return nil, err
	}
	return domain.NewPriceIndex(prices), nil
}

// RateIndex builds the lookup snapshot the engine consumes.
func (r *ConfigRepo) RateIndex() (domain.RateIndex, error) {
	rates, err := r.AllRates()
	if err != nil {
		return nil, err
	}
	return domain.NewRateIndex(rates), nil
}

// ResetPrices deletes every product price entry, ahead of a re-import.
func (r *ConfigRepo) ResetPrices() error {
	_, err := r.db.Exec("DELETE FROM product_prices")
	return err
}

// ResetRates deletes every shipping rate entry, ahead of a re-import.
func (r *ConfigRepo) ResetRates() error {
	_, err := r.db.Exec("DELETE FROM shipping_rates")
	return err
}
