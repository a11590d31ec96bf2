package relate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
)

// SimilarityThreshold is the minimum cosine similarity for a pair of
// records to be considered related.
const SimilarityThreshold = 0.75

// Relationship is an undirected edge between two strongly similar
// records. IDA always orders before IDB, so each unordered pair is
// emitted once.
type Relationship struct {
	IDA        string
	IDB        string
	Similarity float64
	Type       string
	Confidence float64
}

// Record is the view of one record the discoverer needs: its id, dense
// embedding, and guessed content type.
type Record struct {
	ID        string
	Embedding []float64
	TypeGuess category.Category
}

// Discover computes the full pairwise cosine-similarity matrix over the
// batch and emits a relationship for every unordered pair above the
// threshold. O(n^2) in the batch size; batches are assumed to stay in
// the low thousands.
func Discover(records []Record) []Relationship {
	var rels []Relationship
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			sim := Cosine(records[i].Embedding, records[j].Embedding)
			if sim <= SimilarityThreshold {
				continue
			}
			rels = append(rels, Relationship{
				IDA:        records[i].ID,
				IDB:        records[j].ID,
				Similarity: sim,
				Type:       inferType(records[i].TypeGuess, records[j].TypeGuess),
				Confidence: math.Min(1.0, sim*1.2),
			})
		}
	}
	return rels
}

// inferType derives the relationship type from the two records' guessed
// content types.
func inferType(a, b category.Category) string {
	if a == b {
		return "similar_" + string(a)
	}
	switch {
	case pairIs(a, b, category.Settlement, category.Region):
		return "located_in"
	case pairIs(a, b, category.Dungeon, category.Region):
		return "located_in"
	case pairIs(a, b, category.Faction, category.Settlement):
		return "operates_in"
	default:
		return "related"
	}
}

func pairIs(a, b, x, y category.Category) bool {
	return (a == x && b == y) || (a == y && b == x)
}

// Cosine returns the cosine similarity of two vectors, 0 when either has
// zero magnitude.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
