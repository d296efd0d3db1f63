package forecast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticTrainingSet builds rows whose target depends on the day-of-week
// column only: slow early-week days and busy late-week days.
func syntheticTrainingSet(n int) trainingSet {
	var ts trainingSet
	for i := 0; i < n; i++ {
		dow := float64(i % 7)
		target := 5.0
		if dow >= 3 {
			target = 15.0
		}
		ts.features = append(ts.features, []float64{dow, 10, 20, 6, target, target, target})
		ts.targets = append(ts.targets, target)
	}
	return ts
}

func TestTrainForestEmptySetFails(t *testing.T) {
	_, err := trainForest(context.Background(), trainingSet{}, defaultForestConfig)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTrainingFailure)
}

func TestForestPredictsConstantTarget(t *testing.T) {
	var ts trainingSet
	for i := 0; i < 20; i++ {
		ts.features = append(ts.features, []float64{float64(i % 7), float64(i%28 + 1), 3, 1, 10, 10, 10})
		ts.targets = append(ts.targets, 10)
	}

	model, err := trainForest(context.Background(), ts, defaultForestConfig)
	require.NoError(t, err)

	got := model.predict([]float64{2, 15, 3, 1, 10, 10, 10})
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestForestLearnsWeekdayInteraction(t *testing.T) {
	ts := syntheticTrainingSet(70)

	model, err := trainForest(context.Background(), ts, defaultForestConfig)
	require.NoError(t, err)

	slow := model.predict([]float64{1, 10, 20, 6, 5, 5, 5})
	busy := model.predict([]float64{5, 10, 20, 6, 15, 15, 15})

	assert.InDelta(t, 5.0, slow, 1.0)
	assert.InDelta(t, 15.0, busy, 1.0)
}

func TestForestTrainingIsDeterministic(t *testing.T) {
	ts := syntheticTrainingSet(70)

	first, err := trainForest(context.Background(), ts, defaultForestConfig)
	require.NoError(t, err)
	second, err := trainForest(context.Background(), ts, defaultForestConfig)
	require.NoError(t, err)

	probe := []float64{4, 12, 20, 6, 9, 9, 9}
	assert.Equal(t, first.predict(probe), second.predict(probe))
}

func TestBestSplitHonorsMinLeaf(t *testing.T) {
	features := [][]float64{
		{1, 0, 0, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 0},
		{3, 0, 0, 0, 0, 0, 0},
		{4, 0, 0, 0, 0, 0, 0},
	}
	targets := []float64{1, 1, 9, 9}
	indices := []int{0, 1, 2, 3}

	feature, threshold, ok := bestSplit(features, targets, indices, 2)
	require.True(t, ok)
	assert.Equal(t, 0, feature)
	assert.InDelta(t, 2.5, threshold, 1e-9)

	// A min leaf size of 3 makes every split of 4 samples illegal.
	_, _, ok = bestSplit(features, targets, indices, 3)
	assert.False(t, ok)
}

func TestBestSplitNoGainOnUniformTargets(t *testing.T) {
	features := [][]float64{
		{1, 0, 0, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 0},
	}
	targets := []float64{7, 7}

	_, _, ok := bestSplit(features, targets, []int{0, 1}, 1)
	assert.False(t, ok)
}
