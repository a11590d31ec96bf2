package cluster

// Noise is the sentinel label DBSCAN assigns to outlier points.
const Noise = -1

// DBSCANConfig controls the density-based clusterer. Eps is the fixed
// neighborhood radius in Euclidean distance over unit-normalized
// embeddings, so it tracks cosine distance.
type DBSCANConfig struct {
	Eps       float64
	MinPoints int
}

// DefaultDBSCANConfig returns the density clusterer defaults.
func DefaultDBSCANConfig() DBSCANConfig {
	return DBSCANConfig{Eps: 0.5, MinPoints: 2}
}

// DBSCAN clusters points by density. Points in no dense neighborhood
// receive the Noise label. Labels for dense clusters start at 0.
func DBSCAN(points [][]float64, cfg DBSCANConfig) []int {
	n := len(points)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Noise
	}
	if n == 0 {
		return labels
	}
	if cfg.MinPoints <= 0 || cfg.Eps <= 0 {
		cfg = DefaultDBSCANConfig()
	}

	eps2 := cfg.Eps * cfg.Eps
	visited := make([]bool, n)
	next := 0

	neighborsOf := func(i int) []int {
		var nb []int
		for j := 0; j < n; j++ {
			if squaredDistance(points[i], points[j]) <= eps2 {
				nb = append(nb, j)
			}
		}
		return nb
	}

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := neighborsOf(i)
		if len(neighbors) < cfg.MinPoints {
			continue // stays Noise unless absorbed by a later cluster
		}

		labels[i] = next
		queue := append([]int(nil), neighbors...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if labels[j] == Noise {
				labels[j] = next // border point
			}
			if visited[j] {
				continue
			}
			visited[j] = true
			labels[j] = next

			jn := neighborsOf(j)
			if len(jn) >= cfg.MinPoints {
				queue = append(queue, jn...)
			}
		}
		next++
	}
	return labels
}
