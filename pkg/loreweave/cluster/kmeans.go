package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// KMeansConfig controls the fixed-k partitioner.
type KMeansConfig struct {
	MaxIterations int
	Seed          int64
}

// DefaultKMeansConfig returns the partitioner defaults.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{MaxIterations: 100, Seed: 1}
}

// Partition bounds for the fixed-k clusterer: k = clamp(n/8, 3, 15).
const (
	MinPartitions = 3
	MaxPartitions = 15
	recordsPerK   = 8
)

// PartitionCount derives k from the batch size. Batches below
// MinPartitions records collapse to a single trivial cluster.
func PartitionCount(n int) int {
	if n < MinPartitions {
		return 1
	}
	k := n / recordsPerK
	if k < MinPartitions {
		k = MinPartitions
	}
	if k > MaxPartitions {
		k = MaxPartitions
	}
	return k
}

// KMeans partitions points into k clusters via Lloyd iteration with
// k-means++ seeding. Returns one label per point. k == 1 short-circuits
// to the trivial all-zero labeling.
func KMeans(points [][]float64, k int, cfg KMeansConfig) []int {
	n := len(points)
	labels := make([]int, n)
	if n == 0 || k <= 1 {
		return labels
	}
	if k > n {
		k = n
	}
	if cfg.MaxIterations <= 0 {
		cfg = DefaultKMeansConfig()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	centroids := seedCentroids(points, k, rng)

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		// Recompute centroids; empty clusters keep their previous mean.
		dims := len(points[0])
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			floats.Add(sums[labels[i]], p)
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			centroids[c] = sums[c]
		}

		if !changed {
			break
		}
	}
	return labels
}

// seedCentroids implements k-means++ initialization: the first centroid
// is uniform, each subsequent one is drawn proportionally to squared
// distance from the nearest chosen centroid.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := append([]float64(nil), points[rng.Intn(len(points))]...)
	centroids = append(centroids, first)

	dist2 := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			d := squaredDistance(p, centroids[nearestCentroid(p, centroids)])
			dist2[i] = d
			total += d
		}
		var next int
		if total == 0 {
			next = rng.Intn(len(points))
		} else {
			r := rng.Float64() * total
			for i, d := range dist2 {
				r -= d
				if r <= 0 {
					next = i
					break
				}
			}
		}
		centroids = append(centroids, append([]float64(nil), points[next]...))
	}
	return centroids
}

func nearestCentroid(p []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(p, centroid); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
