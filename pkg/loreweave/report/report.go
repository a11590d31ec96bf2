// Package report renders a batch's routing outcome into a stable,
// human-readable summary for operators and downstream dispatch logs.
package report

import (
	"crypto/rand"
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/loreweave/loreweave/pkg/loreweave/route"
)

// Builder constructs batch summaries with monotonic ULID run ids.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a summary builder.
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Summary describes one batch run: per-category and per-bucket counts
// plus the records nothing could place.
type Summary struct {
	RunID          string
	GeneratedAt    time.Time
	TotalRecords   int
	CategoryCounts map[string]int
	BucketCounts   map[string]int // "category/name" -> occupancy
	Uncategorized  []string
	Lines          []string
}

// Build summarizes the router state after a batch has been routed.
func (b *Builder) Build(r *route.Router, totalRecords int) Summary {
	now := time.Now()
	s := Summary{
		RunID:          ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		GeneratedAt:    now,
		TotalRecords:   totalRecords,
		CategoryCounts: make(map[string]int),
		BucketCounts:   make(map[string]int),
		Uncategorized:  r.Uncategorized(),
	}

	buckets := r.Buckets()
	for _, key := range r.Keys() {
		bucket := buckets[key]
		label := fmt.Sprintf("%s/%s", key.Category, key.Name)
		s.BucketCounts[label] = bucket.EntityCount()
		s.CategoryCounts[string(key.Category)] += bucket.EntityCount()
	}

	s.Lines = renderLines(s)
	return s
}

func renderLines(s Summary) []string {
	lines := []string{
		fmt.Sprintf("run %s: %d records routed", s.RunID, s.TotalRecords),
	}

	cats := make([]string, 0, len(s.CategoryCounts))
	for c := range s.CategoryCounts {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		lines = append(lines, fmt.Sprintf("  %s: %d", c, s.CategoryCounts[c]))
	}

	if n := len(s.Uncategorized); n > 0 {
		lines = append(lines, fmt.Sprintf("  uncategorized: %d (%v)", n, s.Uncategorized))
	}
	return lines
}
