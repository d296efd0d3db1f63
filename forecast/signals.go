package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Confidence and market-factor bounds.
const (
	confidenceMin = 0.50
	confidenceMax = 0.95
	marketMin     = 0.5
	marketMax     = 1.5
)

// signals carries the per-request annotations attached to every forecast
// point. They are computed once from the full retrieved window and are
// reporting-only: none of them feeds back into the model's features.
type signals struct {
	dayFactors   [7]float64
	marketFactor float64
	confidence   float64
}

// computeSignals derives the day-of-week seasonality profile, the market
// momentum factor and the dispersion-based confidence from a history.
func computeSignals(history []SalesDay) signals {
	quantities := make([]float64, len(history))
	for i, day := range history {
		quantities[i] = day.Quantity
	}

	mean := stat.Mean(quantities, nil)
	stddev := stat.PopStdDev(quantities, nil)

	sig := signals{}

	// Seasonality: each weekday's average normalized by the window mean.
	// Weekdays with no observations stay at 1.0 (an average day).
	var daySums, dayCounts [7]float64
	for _, day := range history {
		wd := int(dateKey(day.Date).Weekday())
		daySums[wd] += day.Quantity
		dayCounts[wd]++
	}
	for wd := 0; wd < 7; wd++ {
		if dayCounts[wd] > 0 && mean > 0 {
			sig.dayFactors[wd] = (daySums[wd] / dayCounts[wd]) / mean
		} else {
			sig.dayFactors[wd] = 1.0
		}
	}

	// Market momentum: recent 7-day average against the whole window.
	recentAvg := mean
	if len(quantities) >= lagWindow {
		recentAvg = stat.Mean(quantities[len(quantities)-lagWindow:], nil)
	}
	if mean > 0 {
		sig.marketFactor = clamp(recentAvg/mean, marketMin, marketMax)
	} else {
		sig.marketFactor = 1.0
	}

	// Confidence: monotonically decreasing in the coefficient of variation.
	if mean > 0 {
		cv := stddev / mean
		sig.confidence = clamp(1.0-0.3*cv, confidenceMin, confidenceMax)
	} else {
		sig.confidence = confidenceMin
	}

	return sig
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
