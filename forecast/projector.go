package forecast

import "math"

// project drives the trained model forward day by day, starting the day
// after the last observed sales day. Each prediction is fed back in as the
// lag_1 input of the next day, and into the rolling window once made,
// so the state is a simple loop-carried buffer local to this request.
func project(model *forest, history []SalesDay, horizon int, sig signals) []Point {
	last := len(history) - 1
	anchor := dateKey(history[last].Date)
	lastQty := history[last].Quantity

	// The observation 7 back from the end anchors lag_7 until predictions
	// reach that far on their own.
	qty7Back := lastQty
	if len(history) >= lagWindow {
		qty7Back = history[len(history)-lagWindow].Quantity
	}

	// Rolling buffer seeded with the most recent observed quantities;
	// predictions displace them as the horizon advances.
	buffer := make([]float64, 0, lagWindow)
	start := len(history) - lagWindow
	if start < 0 {
		start = 0
	}
	for _, day := range history[start:] {
		buffer = append(buffer, day.Quantity)
	}

	points := make([]Point, 0, horizon)
	preds := make([]float64, 0, horizon)

	for k := 1; k <= horizon; k++ {
		date := anchor.AddDate(0, 0, k)

		lag1 := lastQty
		if k > 1 {
			lag1 = preds[k-2]
		}
		lag7 := qty7Back
		if k > lagWindow {
			lag7 = preds[k-1-lagWindow]
		}

		var sum float64
		for _, q := range buffer {
			sum += q
		}
		rollingAvg := sum / float64(len(buffer))

		raw := model.predict(featureRow(date, lag1, lag7, rollingAvg))
		predicted := math.Max(0, round2(raw))

		points = append(points, Point{
			ForecastDate:    date.Format("2006-01-02"),
			PredictedDemand: predicted,
			SeasonFactor:    round3(sig.dayFactors[int(date.Weekday())]),
			MarketFactor:    round3(sig.marketFactor),
			ConfidenceLevel: round3(sig.confidence),
		})

		preds = append(preds, predicted)
		buffer = append(buffer, predicted)
		if len(buffer) > lagWindow {
			buffer = buffer[1:]
		}
	}

	return points
}
