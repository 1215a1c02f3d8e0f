package database

import (
	"fmt"
	"time"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

// SaveMarketPrices upserts a batch of price snapshots for a given as-of date
func (db *DB) SaveMarketPrices(prices []models.MarketPrice, asOf time.Time) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO market_prices (ticker, asset_class, current_price, last_month_price, as_of, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ticker, as_of) DO UPDATE SET
			asset_class = EXCLUDED.asset_class,
			current_price = EXCLUDED.current_price,
			last_month_price = EXCLUDED.last_month_price
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, p := range prices {
		_, err := stmt.Exec(p.Ticker, p.AssetClass, p.CurrentPrice, p.LastMonthPrice, asOf, now)
		if err != nil {
			return fmt.Errorf("failed to insert market price for %s: %w", p.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetMarketPricesByDate retrieves all price snapshots for an as-of date,
// ordered by ticker
func (db *DB) GetMarketPricesByDate(asOf time.Time) ([]models.MarketPrice, error) {
	query := `
		SELECT ticker, asset_class, current_price, last_month_price
		FROM market_prices
		WHERE as_of = $1
		ORDER BY ticker ASC
	`
	rows, err := db.conn.Query(query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get market prices: %w", err)
	}
	defer rows.Close()

	var prices []models.MarketPrice
	for rows.Next() {
		var p models.MarketPrice
		if err := rows.Scan(&p.Ticker, &p.AssetClass, &p.CurrentPrice, &p.LastMonthPrice); err != nil {
			return nil, fmt.Errorf("failed to scan market price: %w", err)
		}
		prices = append(prices, p)
	}

	return prices, rows.Err()
}

// GetLatestMarketPrices retrieves the most recent price snapshot per ticker
func (db *DB) GetLatestMarketPrices() ([]models.MarketPrice, error) {
	query := `
		SELECT DISTINCT ON (ticker) ticker, asset_class, current_price, last_month_price
		FROM market_prices
		ORDER BY ticker ASC, as_of DESC
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest market prices: %w", err)
	}
	defer rows.Close()

	var prices []models.MarketPrice
	for rows.Next() {
		var p models.MarketPrice
		if err := rows.Scan(&p.Ticker, &p.AssetClass, &p.CurrentPrice, &p.LastMonthPrice); err != nil {
			return nil, fmt.Errorf("failed to scan market price: %w", err)
		}
		prices = append(prices, p)
	}

	return prices, rows.Err()
}
