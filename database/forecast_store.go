package database

import (
	"context"
	"fmt"
	"time"

	"demandcast/forecast"
)

// ForecastStore implements forecast.Store on top of the shared pgx pool.
// It is the engine's only window into the sales ledger and the stored
// forecast estimates used by the database fallback branch.
type ForecastStore struct{}

func NewForecastStore() *ForecastStore {
	return &ForecastStore{}
}

// DailySales returns per-day sales totals for a product over the trailing
// window, oldest first. Dates with no sales have no row: the engine treats
// them as missing data, not zero sales.
func (s *ForecastStore) DailySales(ctx context.Context, productID, windowDays int) ([]forecast.SalesDay, error) {
	db := GetDB()

	var exists bool
	err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)", productID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking product %d: %w", productID, err)
	}
	if !exists {
		return nil, fmt.Errorf("product %d: %w", productID, forecast.ErrDataUnavailable)
	}

	query := `
		SELECT sale_date::date, SUM(quantity)::float8
		FROM sales
		WHERE product_id = $1
		  AND sale_date >= CURRENT_DATE - $2::int
		  AND sale_date < CURRENT_DATE
		GROUP BY sale_date::date
		ORDER BY sale_date::date
	`
	rows, err := db.Query(ctx, query, productID, windowDays)
	if err != nil {
		return nil, fmt.Errorf("loading sales history for product %d: %w", productID, err)
	}
	defer rows.Close()

	var history []forecast.SalesDay
	for rows.Next() {
		var day forecast.SalesDay
		if err := rows.Scan(&day.Date, &day.Quantity); err != nil {
			return nil, fmt.Errorf("scanning sales day: %w", err)
		}
		history = append(history, day)
	}
	return history, rows.Err()
}

// StoredForecast reads precomputed forecast rows for the fallback branch.
// No rows is a valid outcome, not an error.
func (s *ForecastStore) StoredForecast(ctx context.Context, productID, horizon int) ([]forecast.Point, error) {
	db := GetDB()

	query := `
		SELECT forecast_date::date, predicted_demand, season_factor, market_factor, confidence_level
		FROM forecasts
		WHERE product_id = $1
		  AND forecast_date BETWEEN CURRENT_DATE AND CURRENT_DATE + $2::int
		ORDER BY forecast_date ASC
	`
	rows, err := db.Query(ctx, query, productID, horizon)
	if err != nil {
		return nil, fmt.Errorf("loading stored forecast for product %d: %w", productID, err)
	}
	defer rows.Close()

	var points []forecast.Point
	for rows.Next() {
		var date time.Time
		var p forecast.Point
		if err := rows.Scan(&date, &p.PredictedDemand, &p.SeasonFactor, &p.MarketFactor, &p.ConfidenceLevel); err != nil {
			return nil, fmt.Errorf("scanning stored forecast row: %w", err)
		}
		p.ForecastDate = date.Format("2006-01-02")
		points = append(points, p)
	}
	return points, rows.Err()
}

// ActiveProducts lists products with sales inside the trailing window, up
// to the summary scan limit.
func (s *ForecastStore) ActiveProducts(ctx context.Context, limit int) ([]forecast.ProductRef, error) {
	db := GetDB()

	query := `
		SELECT DISTINCT p.product_id, p.name, c.name
		FROM products p
		JOIN categories c ON p.category_id = c.category_id
		JOIN sales s ON p.product_id = s.product_id
		WHERE s.sale_date >= CURRENT_DATE - 90
		ORDER BY p.product_id
		LIMIT $1
	`
	rows, err := db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("scanning active products: %w", err)
	}
	defer rows.Close()

	var products []forecast.ProductRef
	for rows.Next() {
		var p forecast.ProductRef
		if err := rows.Scan(&p.ID, &p.Name, &p.Category); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
