// Package forecast implements the demand forecasting engine: feature
// extraction from daily sales history, a bagged regression-tree model
// trained per request, recursive multi-day projection, and the fallback
// policy that decides between the trained model and stored estimates.
package forecast

import (
	"context"
	"errors"
	"time"
)

const (
	// HistoryWindowDays is the trailing window of sales history the engine
	// trains on.
	HistoryWindowDays = 90

	// MinTrainingDays is the number of distinct sales days required before
	// the ML path runs; below it the engine falls back to stored forecasts.
	MinTrainingDays = 14

	// DefaultHorizon and MaxHorizon bound the requested forecast length.
	DefaultHorizon = 30
	MaxHorizon     = 90

	lagWindow = 7
)

// Source labels for Result; a result's numbers always come from exactly one
// branch of the fallback policy.
const (
	SourceML       = "ml"
	SourceDatabase = "database"
)

var (
	// ErrDataUnavailable means the product is unknown to the sales ledger.
	ErrDataUnavailable = errors.New("sales history unavailable")

	// ErrInsufficientHistory means fewer than MinTrainingDays distinct days
	// were found; it routes the request to the database branch and is never
	// returned to the caller on its own.
	ErrInsufficientHistory = errors.New("insufficient sales history for model training")

	// ErrTrainingFailure means the model could not be fit on the extracted
	// training set.
	ErrTrainingFailure = errors.New("model training failed")
)

// SalesDay is one day of aggregated sales for a product. Days with no sales
// are absent from a history slice, never zero-filled.
type SalesDay struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// Point is a single forecast day.
type Point struct {
	ForecastDate    string  `json:"forecast_date"`
	PredictedDemand float64 `json:"predicted_demand"`
	SeasonFactor    float64 `json:"season_factor"`
	MarketFactor    float64 `json:"market_factor"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// Result is the forecast for one product over a horizon.
type Result struct {
	ProductID    int     `json:"product_id"`
	ForecastDays int     `json:"forecast_days"`
	Source       string  `json:"source"`
	Forecasts    []Point `json:"forecasts"`
}

// ProductRef identifies a product in the summary scan.
type ProductRef struct {
	ID       int
	Name     string
	Category string
}

// SummaryEntry is one ranked row of the forecast summary.
type SummaryEntry struct {
	ProductID      int     `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Category       string  `json:"category"`
	AvgDailyDemand float64 `json:"avg_daily_demand"`
	TotalDemand    float64 `json:"total_demand"`
	AvgConfidence  float64 `json:"avg_confidence"`
	Source         string  `json:"source"`
}

// Store is the engine's view of the surrounding application: it supplies
// sales history, the simpler database-derived estimates used by the
// fallback branch, and the recently-active product scan for summaries.
type Store interface {
	// DailySales returns per-day quantities for the product over the trailing
	// window, in chronological order. Days without sales are absent. Returns
	// ErrDataUnavailable for an unknown product.
	DailySales(ctx context.Context, productID, windowDays int) ([]SalesDay, error)

	// StoredForecast returns precomputed forecast rows for the fallback
	// branch, in date order. An empty slice is a valid answer.
	StoredForecast(ctx context.Context, productID, horizon int) ([]Point, error)

	// ActiveProducts returns up to limit products with sales activity inside
	// the trailing window.
	ActiveProducts(ctx context.Context, limit int) ([]ProductRef, error)
}
