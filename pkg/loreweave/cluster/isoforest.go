package cluster

import (
	"math"
	"math/rand"
	"sort"
)

// ForestConfig controls the isolation-forest anomaly detector.
type ForestConfig struct {
	Trees         int
	SampleSize    int
	Contamination float64 // expected outlier fraction
	Seed          int64
}

// DefaultForestConfig returns the anomaly detector defaults: 100 trees,
// 256-point subsamples, 10% contamination.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 100, SampleSize: 256, Contamination: 0.10, Seed: 1}
}

type isoNode struct {
	splitDim   int
	splitValue float64
	left       *isoNode
	right      *isoNode
	size       int
}

// DetectOutliers trains an isolation forest on the embedding and flags
// each record as inlier/outlier. The decision threshold is the
// (1 - contamination) quantile of anomaly scores, so roughly the
// contamination fraction of the batch is flagged.
func DetectOutliers(points [][]float64, cfg ForestConfig) []bool {
	n := len(points)
	flags := make([]bool, n)
	if n < 2 {
		return flags
	}
	if cfg.Trees <= 0 || cfg.SampleSize <= 0 {
		cfg = DefaultForestConfig()
	}

	sample := cfg.SampleSize
	if sample > n {
		sample = n
	}
	maxDepth := int(math.Ceil(math.Log2(float64(sample)))) + 1
	rng := rand.New(rand.NewSource(cfg.Seed))

	trees := make([]*isoNode, cfg.Trees)
	for t := range trees {
		idx := rng.Perm(n)[:sample]
		sub := make([][]float64, sample)
		for i, j := range idx {
			sub[i] = points[j]
		}
		trees[t] = buildIsoTree(sub, 0, maxDepth, rng)
	}

	cNorm := averagePathLength(float64(sample))
	scores := make([]float64, n)
	for i, p := range points {
		total := 0.0
		for _, tree := range trees {
			total += pathLength(tree, p, 0)
		}
		mean := total / float64(len(trees))
		scores[i] = math.Pow(2, -mean/cNorm)
	}

	threshold := scoreQuantile(scores, 1-cfg.Contamination)
	for i, s := range scores {
		flags[i] = s > threshold
	}
	return flags
}

func buildIsoTree(points [][]float64, depth, maxDepth int, rng *rand.Rand) *isoNode {
	n := len(points)
	if n <= 1 || depth >= maxDepth {
		return &isoNode{size: n}
	}

	dims := len(points[0])
	dim := rng.Intn(dims)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		if p[dim] < lo {
			lo = p[dim]
		}
		if p[dim] > hi {
			hi = p[dim]
		}
	}
	if lo == hi {
		return &isoNode{size: n}
	}

	split := lo + rng.Float64()*(hi-lo)
	var left, right [][]float64
	for _, p := range points {
		if p[dim] < split {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &isoNode{size: n}
	}

	return &isoNode{
		splitDim:   dim,
		splitValue: split,
		left:       buildIsoTree(left, depth+1, maxDepth, rng),
		right:      buildIsoTree(right, depth+1, maxDepth, rng),
		size:       n,
	}
}

func pathLength(node *isoNode, p []float64, depth float64) float64 {
	if node.left == nil {
		if node.size <= 1 {
			return depth
		}
		return depth + averagePathLength(float64(node.size))
	}
	if p[node.splitDim] < node.splitValue {
		return pathLength(node.left, p, depth+1)
	}
	return pathLength(node.right, p, depth+1)
}

// averagePathLength is c(n), the expected path length of an unsuccessful
// BST search, used to normalize isolation depths.
func averagePathLength(n float64) float64 {
	if n <= 1 {
		return 0
	}
	return 2*(math.Log(n-1)+0.5772156649) - 2*(n-1)/n
}

func scoreQuantile(scores []float64, q float64) float64 {
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	idx := int(q * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}
