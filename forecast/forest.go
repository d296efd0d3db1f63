package forecast

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forestConfig mirrors the reference model's hyperparameters: 100 bagged
// trees of depth at most 10 with the smallest split/leaf sizes, grown from
// a fixed seed so two runs over the same history agree exactly.
type forestConfig struct {
	trees           int
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	seed            int64
}

var defaultForestConfig = forestConfig{
	trees:           100,
	maxDepth:        10,
	minSamplesSplit: 2,
	minSamplesLeaf:  1,
	seed:            42,
}

// forest is a bagged ensemble of regression trees; predictions are the
// mean over all trees.
type forest struct {
	trees []*treeNode
}

// trainForest fits the ensemble on the training set. Trees are built in
// parallel, but each tree draws its bootstrap sample from its own
// source seeded by (seed + tree index), so the result is independent of
// scheduling. The forest is private to a single request.
func trainForest(ctx context.Context, ts trainingSet, cfg forestConfig) (*forest, error) {
	n := ts.size()
	if n == 0 {
		return nil, fmt.Errorf("%w: empty training set", ErrTrainingFailure)
	}

	params := treeParams{
		maxDepth:        cfg.maxDepth,
		minSamplesSplit: cfg.minSamplesSplit,
		minSamplesLeaf:  cfg.minSamplesLeaf,
	}

	trees := make([]*treeNode, cfg.trees)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < cfg.trees; i++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(cfg.seed + int64(i)))
			sample := make([]int, n)
			for j := range sample {
				sample[j] = rng.Intn(n)
			}
			trees[i] = growTree(ts.features, ts.targets, sample, 0, params)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTrainingFailure, err)
	}

	return &forest{trees: trees}, nil
}

func (f *forest) predict(row []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.trees))
}
