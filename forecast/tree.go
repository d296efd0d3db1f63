package forecast

import "sort"

// treeParams bound the growth of a single regression tree.
type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
}

// treeNode is one node of a CART regression tree. Leaves predict the mean
// target of the samples that reached them; internal nodes split one feature
// at a threshold.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// growTree recursively builds a tree over the sample indices. Splits are
// chosen by maximum variance reduction scanned in fixed feature and
// position order, so tree construction is fully deterministic for a given
// sample order.
func growTree(features [][]float64, targets []float64, indices []int, depth int, p treeParams) *treeNode {
	if depth >= p.maxDepth || len(indices) < p.minSamplesSplit {
		return leafNode(targets, indices)
	}

	feature, threshold, ok := bestSplit(features, targets, indices, p.minSamplesLeaf)
	if !ok {
		return leafNode(targets, indices)
	}

	var left, right []int
	for _, idx := range indices {
		if features[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growTree(features, targets, left, depth+1, p),
		right:     growTree(features, targets, right, depth+1, p),
	}
}

func leafNode(targets []float64, indices []int) *treeNode {
	var sum float64
	for _, idx := range indices {
		sum += targets[idx]
	}
	return &treeNode{leaf: true, value: sum / float64(len(indices))}
}

// bestSplit finds the (feature, threshold) pair with the largest reduction
// in the sum of squared errors, honoring the minimum leaf size. Returns
// ok=false when no split improves on the parent node.
func bestSplit(features [][]float64, targets []float64, indices []int, minLeaf int) (int, float64, bool) {
	n := len(indices)

	var parentSum, parentSumSq float64
	for _, idx := range indices {
		parentSum += targets[idx]
		parentSumSq += targets[idx] * targets[idx]
	}
	parentSSE := parentSumSq - parentSum*parentSum/float64(n)

	type sample struct{ value, target float64 }
	samples := make([]sample, n)

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0

	for f := 0; f < featureCount; f++ {
		for i, idx := range indices {
			samples[i] = sample{features[idx][f], targets[idx]}
		}
		sort.Slice(samples, func(a, b int) bool { return samples[a].value < samples[b].value })

		var leftSum, leftSumSq float64
		for i := 1; i < n; i++ {
			leftSum += samples[i-1].target
			leftSumSq += samples[i-1].target * samples[i-1].target

			// Can only split between distinct feature values.
			if samples[i].value == samples[i-1].value {
				continue
			}
			if i < minLeaf || n-i < minLeaf {
				continue
			}

			rightSum := parentSum - leftSum
			rightSumSq := parentSumSq - leftSumSq
			leftSSE := leftSumSq - leftSum*leftSum/float64(i)
			rightSSE := rightSumSq - rightSum*rightSum/float64(n-i)

			gain := parentSSE - leftSSE - rightSSE
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (samples[i-1].value + samples[i].value) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}
