package reduce

import (
	"math"
	"testing"
)

// syntheticCounts builds n rows over a small vocabulary, alternating
// between two disjoint term blocks.
func syntheticCounts(n int) [][]float64 {
	counts := make([][]float64, n)
	for i := range counts {
		row := make([]float64, 8)
		if i%2 == 0 {
			row[0], row[1], row[2] = 3, 2, 1
		} else {
			row[5], row[6], row[7] = 3, 2, 1
		}
		counts[i] = row
	}
	return counts
}

func TestTopicsSkipsSmallBatches(t *testing.T) {
	// At or below the floor, topic modeling is skipped entirely.
	for _, n := range []int{1, 5, MinTopicDocs} {
		if got := Topics(syntheticCounts(n), DefaultTopicConfig()); got != nil {
			t.Errorf("Topics with %d records = non-nil, want nil", n)
		}
	}
}

func TestTopicsDistributionShape(t *testing.T) {
	n := MinTopicDocs + 5
	dists := Topics(syntheticCounts(n), DefaultTopicConfig())
	if dists == nil {
		t.Fatal("Topics returned nil above the document floor")
	}
	if len(dists) != n {
		t.Fatalf("Expected %d distributions, got %d", n, len(dists))
	}
	for i, dist := range dists {
		if len(dist) != TopicCount {
			t.Fatalf("Distribution %d has %d topics, want %d", i, len(dist), TopicCount)
		}
		sum := 0.0
		for _, p := range dist {
			if p < 0 {
				t.Fatalf("Distribution %d has negative probability %v", i, p)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("Distribution %d sums to %v, want 1", i, sum)
		}
	}
}

func TestTopicsDeterministicForSeed(t *testing.T) {
	counts := syntheticCounts(MinTopicDocs + 2)
	cfg := DefaultTopicConfig()

	a := Topics(counts, cfg)
	b := Topics(counts, cfg)
	for i := range a {
		for k := range a[i] {
			if a[i][k] != b[i][k] {
				t.Fatalf("Same seed produced different distributions at [%d][%d]", i, k)
			}
		}
	}
}

func TestTopicsEmptyTermRows(t *testing.T) {
	// All-zero counts fall back to uniform distributions.
	n := MinTopicDocs + 1
	counts := make([][]float64, n)
	for i := range counts {
		counts[i] = make([]float64, 4)
	}
	dists := Topics(counts, DefaultTopicConfig())
	if dists == nil {
		t.Fatal("Topics returned nil for zero counts")
	}
	want := 1.0 / TopicCount
	for i, dist := range dists {
		for k, p := range dist {
			if math.Abs(p-want) > 1e-12 {
				t.Fatalf("Distribution [%d][%d] = %v, want uniform %v", i, k, p, want)
			}
		}
	}
}
