package merge

import (
	"github.com/loreweave/loreweave/pkg/loreweave/category"
	"github.com/loreweave/loreweave/pkg/loreweave/ingest"
)

// Weights defines the ML-confidence scoring weights. Confidence must
// track content richness — a record with a clear type guess, key terms,
// known-entity mentions, and structural signal earns more trust than a
// bare fragment. It is never a constant.
type Weights struct {
	Base      float64 // floor for any classified record
	TypeGuess float64 // content-type guess present
	KeyTerms  float64 // capitalized key terms, saturating
	Mentions  float64 // known-entity mentions, saturating
	Structure float64 // structural feature richness, saturating
	Outlier   float64 // penalty when the anomaly detector flagged it
}

// DefaultWeights returns the scoring defaults. Fully saturated signal
// sums to 1.0 before the outlier penalty.
func DefaultWeights() Weights {
	return Weights{
		Base:      0.15,
		TypeGuess: 0.30,
		KeyTerms:  0.15,
		Mentions:  0.15,
		Structure: 0.25,
		Outlier:   0.10,
	}
}

// Scorer computes ML confidence as a weighted hybrid of content-richness
// signals.
//
//	conf = base + w_type·guess + w_terms·sat(terms) + w_ment·sat(mentions)
//	     + w_struct·sat(richness) − w_outlier·outlier
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Saturation knees: signal beyond these counts adds no confidence.
const (
	keyTermSaturation  = 5.0
	mentionSaturation  = 2.0
	richnessSaturation = 5.0
)

// Confidence scores one record from its payload, structural features,
// and outlier flag. Result is clamped to [0, 1].
func (s *Scorer) Confidence(p ingest.Payload, f ingest.Features, isOutlier bool) float64 {
	w := s.weights
	conf := w.Base

	if p.TypeGuess != category.Unknown {
		conf += w.TypeGuess
	}
	conf += w.KeyTerms * saturate(float64(len(p.KeyTerms)), keyTermSaturation)
	conf += w.Mentions * saturate(float64(len(p.Mentions)), mentionSaturation)
	conf += w.Structure * saturate(f.Richness(), richnessSaturation)

	if isOutlier {
		conf -= w.Outlier
	}

	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}

func saturate(v, knee float64) float64 {
	if v >= knee {
		return 1
	}
	if v <= 0 {
		return 0
	}
	return v / knee
}
