package forecast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Summary scan bounds: at most 100 products considered, top 50 returned.
const (
	summaryScanLimit = 100
	summaryTopN      = 50
)

// Engine runs the forecasting pipeline. It holds no mutable state between
// requests; every call performs its own load-train-project sequence, so
// concurrent requests are independent.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// ProductForecast produces the demand forecast for one product. With at
// least MinTrainingDays distinct sales days in the trailing window it
// trains the ensemble and projects forward ("ml"); otherwise, or when
// training fails, it serves stored estimates ("database"). A result is
// never labeled with a branch it did not come from.
func (e *Engine) ProductForecast(ctx context.Context, productID, horizon int) (*Result, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	history, err := e.store.DailySales(ctx, productID, HistoryWindowDays)
	if err != nil {
		return nil, err
	}

	result, mlErr := e.mlForecast(ctx, productID, history, horizon)
	if mlErr == nil {
		return result, nil
	}
	if !errors.Is(mlErr, ErrInsufficientHistory) && !errors.Is(mlErr, ErrTrainingFailure) {
		return nil, mlErr
	}

	if errors.Is(mlErr, ErrTrainingFailure) {
		log.Printf("ML forecast failed for product %d, falling back to database: %v", productID, mlErr)
	}

	result, dbErr := e.databaseForecast(ctx, productID, horizon)
	if dbErr != nil {
		if errors.Is(mlErr, ErrTrainingFailure) {
			return nil, fmt.Errorf("%w (database fallback also failed: %v)", mlErr, dbErr)
		}
		return nil, dbErr
	}
	return result, nil
}

func (e *Engine) mlForecast(ctx context.Context, productID int, history []SalesDay, horizon int) (*Result, error) {
	if len(history) < MinTrainingDays {
		return nil, fmt.Errorf("%w: %d of %d days", ErrInsufficientHistory, len(history), MinTrainingDays)
	}

	ts := buildTrainingSet(history)
	if ts.size() == 0 {
		return nil, fmt.Errorf("%w: no day with a complete 7-day lookback", ErrTrainingFailure)
	}

	model, err := trainForest(ctx, ts, defaultForestConfig)
	if err != nil {
		return nil, err
	}

	sig := computeSignals(history)

	return &Result{
		ProductID:    productID,
		ForecastDays: horizon,
		Source:       SourceML,
		Forecasts:    project(model, history, horizon, sig),
	}, nil
}

func (e *Engine) databaseForecast(ctx context.Context, productID, horizon int) (*Result, error) {
	points, err := e.store.StoredForecast(ctx, productID, horizon)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []Point{}
	}
	return &Result{
		ProductID:    productID,
		ForecastDays: horizon,
		Source:       SourceDatabase,
		Forecasts:    points,
	}, nil
}

// Summary forecasts every recently-active product (at most 100) and ranks
// them by total predicted demand over the horizon, returning the top 50.
// Products whose forecast fails are logged and omitted; one product never
// aborts the batch.
func (e *Engine) Summary(ctx context.Context, horizon int) ([]SummaryEntry, error) {
	if horizon < 1 {
		horizon = DefaultHorizon
	}

	products, err := e.store.ActiveProducts(ctx, summaryScanLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]SummaryEntry, len(products))
	ok := make([]bool, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, product := range products {
		g.Go(func() error {
			result, err := e.ProductForecast(gctx, product.ID, horizon)
			if err != nil {
				log.Printf("Skipping product %d in forecast summary: %v", product.ID, err)
				return nil
			}
			if len(result.Forecasts) == 0 {
				return nil
			}

			var total, confSum float64
			for _, p := range result.Forecasts {
				total += p.PredictedDemand
				confSum += p.ConfidenceLevel
			}
			days := float64(len(result.Forecasts))

			entries[i] = SummaryEntry{
				ProductID:      product.ID,
				ProductName:    product.Name,
				Category:       product.Category,
				AvgDailyDemand: round2(total / days),
				TotalDemand:    round2(total),
				AvgConfidence:  round3(confSum / days),
				Source:         result.Source,
			}
			ok[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]SummaryEntry, 0, len(products))
	for i, entry := range entries {
		if ok[i] {
			ranked = append(ranked, entry)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].TotalDemand > ranked[b].TotalDemand
	})
	if len(ranked) > summaryTopN {
		ranked = ranked[:summaryTopN]
	}
	return ranked, nil
}
