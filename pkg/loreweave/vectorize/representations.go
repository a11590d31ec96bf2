package vectorize

import (
	"github.com/loreweave/loreweave/pkg/loreweave/ingest"
)

// Representations holds the three parallel numeric views of one batch,
// at increasing granularity. All are fit fresh per batch; nothing is
// persisted across runs.
type Representations struct {
	Compact [][]float64 // short-span view, bounded vocabulary
	Rich    [][]float64 // long-form view with DF pruning
	Raw     [][]float64 // high-dimensional raw counts

	RichTerms []string // rich vocabulary, column order (feeds the reducer)
}

// Build fits all three vectorizers on the batch contents and transforms
// them. Order of rows follows the input order. Any vectorizer failing to
// produce a vocabulary fails the whole batch.
func Build(contents []string, tokenizer *ingest.Tokenizer) (*Representations, error) {
	compact := New(CompactConfig(), tokenizer)
	rich := New(RichConfig(), tokenizer)
	raw := New(RawConfig(), tokenizer)

	r := &Representations{}

	var err error
	if r.Compact, err = compact.FitTransform(contents); err != nil {
		return nil, err
	}
	if r.Rich, err = rich.FitTransform(contents); err != nil {
		return nil, err
	}
	if r.Raw, err = raw.FitTransform(contents); err != nil {
		return nil, err
	}
	r.RichTerms = rich.Terms()
	return r, nil
}
