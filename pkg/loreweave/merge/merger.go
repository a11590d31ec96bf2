// Package merge combines the statistical and deterministic classification
// streams into one final decision per record and gates on batch quality.
package merge

import (
	"fmt"
	"sort"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
	"github.com/loreweave/loreweave/pkg/loreweave/internalerr"
	"github.com/loreweave/loreweave/pkg/loreweave/pattern"
)

// Merge thresholds. The ML signal overrides the pattern signal only when
// it is confident; the batch as a whole is rejected when too few records
// merge with usable confidence.
const (
	MLOverrideThreshold = 0.7
	SuccessConfidence   = 0.6
	MinSuccessRate      = 0.3

	// CriticalCategoryMinBatch is the batch size above which missing
	// critical categories are worth warning about.
	CriticalCategoryMinBatch = 10
)

// CriticalCategories are the categories a healthy large batch is
// expected to contain. Their absence is advisory, never fatal.
var CriticalCategories = []category.Category{
	category.Biome, category.Creature, category.Inn,
}

// MLClassification is the statistical stream's per-record result.
type MLClassification struct {
	ID                string
	Category          category.Category
	Confidence        float64
	ClusterID         int
	DensityClusterID  int
	IsOutlier         bool
	TopicDistribution []float64 // nil for small batches
}

// FinalClassification is the merged decision for one record. Immutable
// once built.
type FinalClassification struct {
	ID                 string
	MLCategory         category.Category
	MLConfidence       float64
	PatternCategory    category.Category
	PatternConfidence  float64
	FinalCategory      category.Category
	CombinedConfidence float64
}

// Result carries the merged batch plus advisory warnings.
type Result struct {
	Classifications []FinalClassification
	SuccessRate     float64
	Warnings        []string
}

// Merge builds one FinalClassification per record and validates batch
// quality. Every record must appear in both streams; a mismatch is an
// invariant violation. A success rate below MinSuccessRate rejects the
// whole batch — no partial result is returned.
func Merge(ml []MLClassification, patterns map[string]pattern.Classification) (*Result, error) {
	if len(ml) == 0 {
		return nil, fmt.Errorf("merge: %w: empty ML stream", internalerr.ErrInvalidInput)
	}
	if len(ml) != len(patterns) {
		return nil, fmt.Errorf("merge: %w: %d ML results vs %d pattern results",
			internalerr.ErrMergeConsistency, len(ml), len(patterns))
	}

	finals := make([]FinalClassification, 0, len(ml))
	succeeded := 0

	for _, m := range ml {
		p, ok := patterns[m.ID]
		if !ok {
			return nil, fmt.Errorf("merge: %w: record %s missing from pattern stream",
				internalerr.ErrMergeConsistency, m.ID)
		}
		if p.Category == "" {
			return nil, fmt.Errorf("merge: %w: record %s has empty pattern category",
				internalerr.ErrRouting, m.ID)
		}

		f := FinalClassification{
			ID:                 m.ID,
			MLCategory:         m.Category,
			MLConfidence:       m.Confidence,
			PatternCategory:    p.Category,
			PatternConfidence:  p.Confidence,
			CombinedConfidence: (m.Confidence + p.Confidence) / 2,
		}
		if m.Confidence > MLOverrideThreshold {
			f.FinalCategory = m.Category
		} else {
			f.FinalCategory = p.Category
		}
		if f.CombinedConfidence > SuccessConfidence {
			succeeded++
		}
		finals = append(finals, f)
	}

	rate := float64(succeeded) / float64(len(finals))
	if rate < MinSuccessRate {
		return nil, fmt.Errorf("merge: %w: success rate %.2f below %.2f",
			internalerr.ErrQualityGate, rate, MinSuccessRate)
	}

	res := &Result{Classifications: finals, SuccessRate: rate}
	res.Warnings = criticalCategoryWarnings(finals)
	return res, nil
}

// criticalCategoryWarnings reports critical categories absent from a
// large batch. Advisory only.
func criticalCategoryWarnings(finals []FinalClassification) []string {
	if len(finals) <= CriticalCategoryMinBatch {
		return nil
	}
	present := make(map[category.Category]struct{}, len(finals))
	for _, f := range finals {
		present[f.FinalCategory] = struct{}{}
	}

	var missing []string
	for _, c := range CriticalCategories {
		if _, ok := present[c]; !ok {
			missing = append(missing, string(c))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	warnings := make([]string, len(missing))
	for i, m := range missing {
		warnings[i] = fmt.Sprintf("no records classified as critical category %q", m)
	}
	return warnings
}
