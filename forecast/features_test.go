package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// consecutiveHistory builds a dense history of n days starting at start.
func consecutiveHistory(start time.Time, n int, qty func(i int) float64) []SalesDay {
	history := make([]SalesDay, n)
	for i := 0; i < n; i++ {
		history[i] = SalesDay{Date: start.AddDate(0, 0, i), Quantity: qty(i)}
	}
	return history
}

func TestFeatureRowCalendarFields(t *testing.T) {
	// 2024-03-15 was a Friday in ISO week 11.
	row := featureRow(day(2024, time.March, 15), 4, 7, 5.5)

	require.Len(t, row, featureCount)
	assert.Equal(t, float64(time.Friday), row[0])
	assert.Equal(t, 15.0, row[1])
	assert.Equal(t, 11.0, row[2])
	assert.Equal(t, 3.0, row[3])
	assert.Equal(t, 4.0, row[4])
	assert.Equal(t, 7.0, row[5])
	assert.Equal(t, 5.5, row[6])
}

func TestBuildTrainingSetRequiresFullLookback(t *testing.T) {
	history := consecutiveHistory(day(2024, time.January, 1), 10, func(i int) float64 {
		return float64(i + 1) // 1, 2, ..., 10
	})

	ts := buildTrainingSet(history)

	// The first 7 days lack a complete 7-day lookback and are excluded.
	require.Equal(t, 3, ts.size())

	// First usable day is Jan 8: lag_1 = qty of Jan 7, lag_7 = qty of Jan 1,
	// rolling = mean(1..7).
	assert.Equal(t, 7.0, ts.features[0][4])
	assert.Equal(t, 1.0, ts.features[0][5])
	assert.InDelta(t, 4.0, ts.features[0][6], 1e-9)
	assert.Equal(t, 8.0, ts.targets[0])

	assert.Equal(t, 10.0, ts.targets[2])
}

func TestBuildTrainingSetTreatsGapsAsMissing(t *testing.T) {
	// 8 days, then a 1-day gap, then 8 more days. Days whose 7-day lookback
	// crosses the gap must be excluded rather than zero-filled.
	start := day(2024, time.February, 1)
	var history []SalesDay
	for i := 0; i < 8; i++ {
		history = append(history, SalesDay{Date: start.AddDate(0, 0, i), Quantity: 5})
	}
	for i := 9; i < 17; i++ {
		history = append(history, SalesDay{Date: start.AddDate(0, 0, i), Quantity: 5})
	}

	ts := buildTrainingSet(history)

	// Usable: Feb 8 (days 1-7 present) and Feb 17 (days 10-16 present).
	assert.Equal(t, 2, ts.size())
}

func TestBuildTrainingSetSparseHistoryYieldsNothing(t *testing.T) {
	// Every observation 8 days apart: no day ever has a full lookback.
	var history []SalesDay
	for i := 0; i < 14; i++ {
		history = append(history, SalesDay{Date: day(2024, time.January, 1).AddDate(0, 0, i*8), Quantity: 3})
	}

	ts := buildTrainingSet(history)
	assert.Equal(t, 0, ts.size())
}

func TestBuildTrainingSetIsDeterministic(t *testing.T) {
	history := consecutiveHistory(day(2024, time.May, 1), 30, func(i int) float64 {
		return float64((i*7)%13) + 2
	})

	first := buildTrainingSet(history)
	second := buildTrainingSet(history)

	assert.Equal(t, first.features, second.features)
	assert.Equal(t, first.targets, second.targets)
}
