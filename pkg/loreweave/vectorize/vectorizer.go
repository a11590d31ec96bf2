package vectorize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/loreweave/loreweave/pkg/loreweave/ingest"
	"github.com/loreweave/loreweave/pkg/loreweave/internalerr"
)

// Config controls one n-gram count vectorizer.
type Config struct {
	NgramMin    int     // smallest n-gram length
	NgramMax    int     // largest n-gram length
	MaxFeatures int     // vocabulary cap, highest total frequency wins
	MinDF       int     // drop terms in fewer than MinDF records
	MaxDF       float64 // drop terms in more than MaxDF fraction of records
}

// CompactConfig tunes a vectorizer for short spans: small vocabulary,
// 1-2 token windows.
func CompactConfig() Config {
	return Config{NgramMin: 1, NgramMax: 2, MaxFeatures: 500, MinDF: 1, MaxDF: 1.0}
}

// RichConfig tunes a vectorizer for longer content: larger vocabulary,
// 1-3 token windows, document-frequency pruning at both ends.
func RichConfig() Config {
	return Config{NgramMin: 1, NgramMax: 3, MaxFeatures: 2000, MinDF: 2, MaxDF: 0.95}
}

// RawConfig preserves as much vocabulary as possible: high feature cap,
// no pruning beyond singleton terms.
func RawConfig() Config {
	return Config{NgramMin: 1, NgramMax: 2, MaxFeatures: 10000, MinDF: 1, MaxDF: 1.0}
}

// Vectorizer converts a batch of documents into n-gram count vectors.
// Fit and Transform are separate so a frozen vocabulary could later be
// reused across batches; the engine currently refits every batch.
type Vectorizer struct {
	cfg       Config
	tokenizer *ingest.Tokenizer
	vocab     map[string]int // term -> column index
	terms     []string       // column index -> term
}

// New creates a vectorizer with the given config and tokenizer.
func New(cfg Config, tokenizer *ingest.Tokenizer) *Vectorizer {
	if cfg.NgramMin < 1 {
		cfg.NgramMin = 1
	}
	if cfg.NgramMax < cfg.NgramMin {
		cfg.NgramMax = cfg.NgramMin
	}
	if cfg.MaxDF <= 0 || cfg.MaxDF > 1 {
		cfg.MaxDF = 1.0
	}
	return &Vectorizer{cfg: cfg, tokenizer: tokenizer}
}

// Fit builds the vocabulary from the batch. Terms outside the
// document-frequency bounds are pruned; the remainder is capped to
// MaxFeatures by total frequency. Fitting an empty or all-stopword batch
// yields ErrVectorization.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("fit: %w: empty batch", internalerr.ErrInvalidInput)
	}

	df := make(map[string]int)
	tf := make(map[string]int)

	for _, doc := range docs {
		grams := v.ngrams(doc)
		seen := make(map[string]struct{}, len(grams))
		for _, g := range grams {
			tf[g]++
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				df[g]++
			}
		}
	}

	maxDocs := int(v.cfg.MaxDF * float64(len(docs)))
	if maxDocs < 1 {
		maxDocs = 1
	}

	// MinDF clamps to the batch size so tiny batches keep a vocabulary:
	// a one-record batch must still vectorize.
	minDF := v.cfg.MinDF
	if minDF > len(docs) {
		minDF = len(docs)
	}

	kept := make([]string, 0, len(df))
	for term, n := range df {
		if n < minDF {
			continue
		}
		if v.cfg.MaxDF < 1.0 && n > maxDocs {
			continue
		}
		kept = append(kept, term)
	}

	// On tiny batches the DF bounds can annihilate the vocabulary
	// entirely (with two records, MinDF 2 and MaxDF 0.95 exclude every
	// possible frequency). Fall back to the unpruned vocabulary so the
	// batch still vectorizes.
	if len(kept) == 0 {
		for term := range df {
			kept = append(kept, term)
		}
	}

	if len(kept) == 0 {
		return fmt.Errorf("fit: %w", internalerr.ErrVectorization)
	}

	// Cap to MaxFeatures by total frequency; ties break alphabetically
	// so the vocabulary is deterministic for a given batch.
	sort.Slice(kept, func(i, j int) bool {
		if tf[kept[i]] != tf[kept[j]] {
			return tf[kept[i]] > tf[kept[j]]
		}
		return kept[i] < kept[j]
	})
	if v.cfg.MaxFeatures > 0 && len(kept) > v.cfg.MaxFeatures {
		kept = kept[:v.cfg.MaxFeatures]
	}
	sort.Strings(kept)

	v.terms = kept
	v.vocab = make(map[string]int, len(kept))
	for i, term := range kept {
		v.vocab[term] = i
	}
	return nil
}

// Transform converts documents into count vectors over the fitted
// vocabulary. Documents are independent; order is preserved.
func (v *Vectorizer) Transform(docs []string) ([][]float64, error) {
	if v.vocab == nil {
		return nil, fmt.Errorf("transform: %w: vectorizer not fitted", internalerr.ErrVectorization)
	}

	out := make([][]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(v.terms))
		for _, g := range v.ngrams(doc) {
			if col, ok := v.vocab[g]; ok {
				row[col]++
			}
		}
		out[i] = row
	}
	return out, nil
}

// FitTransform fits the vocabulary and transforms the batch in one pass.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// VocabSize returns the fitted vocabulary size.
func (v *Vectorizer) VocabSize() int {
	return len(v.terms)
}

// Terms returns the fitted vocabulary in column order.
func (v *Vectorizer) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// ngrams tokenizes a document and expands the token stream into n-grams
// of the configured lengths. Multi-token grams join with a single space.
func (v *Vectorizer) ngrams(doc string) []string {
	tokens := v.tokenizer.Tokenize(doc)
	var grams []string
	for n := v.cfg.NgramMin; n <= v.cfg.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if n == 1 {
				grams = append(grams, tokens[i])
				continue
			}
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}
