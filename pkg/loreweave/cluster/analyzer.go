package cluster

import (
	"fmt"
	"math"

	"github.com/loreweave/loreweave/pkg/loreweave/internalerr"
)

// Config aggregates the three ensemble members.
type Config struct {
	KMeans KMeansConfig
	DBSCAN DBSCANConfig
	Forest ForestConfig
}

// DefaultConfig returns the ensemble defaults.
func DefaultConfig() Config {
	return Config{
		KMeans: DefaultKMeansConfig(),
		DBSCAN: DefaultDBSCANConfig(),
		Forest: DefaultForestConfig(),
	}
}

// Analysis holds the ensemble output for one batch. Labels are parallel
// to the input embedding rows. The distribution fields are observability
// only; nothing downstream branches on them.
type Analysis struct {
	KMeansLabels  []int
	DensityLabels []int
	Outliers      []bool

	FixedClusterCount   int
	DensityClusterCount int
	NoiseCount          int
	AnomalyCount        int
	LargestClusterSize  int
	KMeansSizes         map[int]int
	DensitySizes        map[int]int
}

// Analyze runs the three independent algorithms over the dense embedding:
// a fixed-k partitioner, a density clusterer with a noise sentinel, and an
// isolation-forest outlier detector. Batches below MinPartitions records
// disable both clusterers (all labels zero).
func Analyze(embeddings [][]float64, cfg Config) (*Analysis, error) {
	n := len(embeddings)
	if n == 0 {
		return nil, fmt.Errorf("analyze: %w: empty embedding", internalerr.ErrInvalidInput)
	}

	a := &Analysis{
		KMeansSizes:  make(map[int]int),
		DensitySizes: make(map[int]int),
	}

	if n < MinPartitions {
		// Too few records for any natural grouping: one trivial cluster.
		a.KMeansLabels = make([]int, n)
		a.DensityLabels = make([]int, n)
		a.Outliers = make([]bool, n)
		a.FixedClusterCount = 1
		a.DensityClusterCount = 1
		a.KMeansSizes[0] = n
		a.DensitySizes[0] = n
		a.LargestClusterSize = n
		return a, nil
	}

	// A k-way partition of k records says nothing about natural groups;
	// collapse to the trivial cluster whenever k would not be smaller
	// than the batch.
	k := PartitionCount(n)
	if k >= n {
		k = 1
	}
	a.KMeansLabels = KMeans(embeddings, k, cfg.KMeans)
	a.DensityLabels = DBSCAN(unitNormalize(embeddings), cfg.DBSCAN)
	a.Outliers = DetectOutliers(embeddings, cfg.Forest)

	for _, l := range a.KMeansLabels {
		a.KMeansSizes[l]++
	}
	for _, l := range a.DensityLabels {
		if l == Noise {
			a.NoiseCount++
			continue
		}
		a.DensitySizes[l]++
	}
	for _, o := range a.Outliers {
		if o {
			a.AnomalyCount++
		}
	}

	a.FixedClusterCount = len(a.KMeansSizes)
	a.DensityClusterCount = len(a.DensitySizes)
	for _, size := range a.KMeansSizes {
		if size > a.LargestClusterSize {
			a.LargestClusterSize = size
		}
	}
	return a, nil
}

// unitNormalize copies the embedding with every row scaled to unit
// length, so the density clusterer's fixed radius behaves like a cosine
// distance bound. Zero rows stay zero.
func unitNormalize(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		norm := 0.0
		for _, v := range p {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		row := make([]float64, len(p))
		if norm > 0 {
			for j, v := range p {
				row[j] = v / norm
			}
		}
		out[i] = row
	}
	return out
}
