package forecast

import "time"

// Feature column layout shared by training and projection.
const featureCount = 7

// trainingSet holds ordered (feature row, target) pairs extracted from a
// sales history.
type trainingSet struct {
	features [][]float64
	targets  []float64
}

func (ts trainingSet) size() int { return len(ts.targets) }

// dateKey normalizes a timestamp to its calendar day in UTC so histories
// can be indexed by date regardless of the hour the row carries.
func dateKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// featureRow assembles the fixed 7-column feature vector for one day:
// calendar fields from the date plus the lag and rolling-average inputs.
func featureRow(date time.Time, lag1, lag7, rollingAvg float64) []float64 {
	_, isoWeek := date.ISOWeek()
	return []float64{
		float64(date.Weekday()),
		float64(date.Day()),
		float64(isoWeek),
		float64(date.Month()),
		lag1,
		lag7,
		rollingAvg,
	}
}

// buildTrainingSet turns a chronologically ordered history into training
// pairs. A day is only usable when every one of its 7 preceding calendar
// days is present in the window: lag_1, lag_7 and the rolling average must
// all derive from observed earlier days, never from padding. Gaps in the
// history therefore shrink the training set rather than polluting it with
// implied zero sales.
func buildTrainingSet(history []SalesDay) trainingSet {
	byDate := make(map[time.Time]float64, len(history))
	for _, day := range history {
		byDate[dateKey(day.Date)] = day.Quantity
	}

	var ts trainingSet
	for _, day := range history {
		date := dateKey(day.Date)

		var sum float64
		complete := true
		for back := 1; back <= lagWindow; back++ {
			qty, ok := byDate[date.AddDate(0, 0, -back)]
			if !ok {
				complete = false
				break
			}
			sum += qty
		}
		if !complete {
			continue
		}

		lag1 := byDate[date.AddDate(0, 0, -1)]
		lag7 := byDate[date.AddDate(0, 0, -lagWindow)]
		rollingAvg := sum / lagWindow

		ts.features = append(ts.features, featureRow(date, lag1, lag7, rollingAvg))
		ts.targets = append(ts.targets, day.Quantity)
	}
	return ts
}
