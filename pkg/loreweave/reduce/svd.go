package reduce

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/loreweave/loreweave/pkg/loreweave/internalerr"
)

// EmbeddingDim is the fixed width of the dense embedding. Batches whose
// rank falls short are zero-padded so every consumer sees the same shape.
const EmbeddingDim = 100

// Embed projects the rich count matrix into a fixed-size dense embedding
// per record via truncated SVD. Row order follows the input. The
// projection is refit on every batch; there is no persisted model.
func Embed(counts [][]float64) ([][]float64, error) {
	n := len(counts)
	if n == 0 {
		return nil, fmt.Errorf("embed: %w: empty matrix", internalerr.ErrInvalidInput)
	}
	cols := len(counts[0])
	if cols == 0 {
		return nil, fmt.Errorf("embed: %w", internalerr.ErrVectorization)
	}

	data := make([]float64, 0, n*cols)
	for _, row := range counts {
		if len(row) != cols {
			return nil, fmt.Errorf("embed: %w: ragged matrix", internalerr.ErrInvalidInput)
		}
		data = append(data, row...)
	}

	m := mat.NewDense(n, cols, data)

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, fmt.Errorf("embed: %w: factorization did not converge", internalerr.ErrVectorization)
	}

	var u mat.Dense
	svd.UTo(&u)
	sigma := svd.Values(nil)

	k := EmbeddingDim
	if len(sigma) < k {
		k = len(sigma)
	}

	// Document embedding = U·Σ truncated to k components, zero-padded
	// to EmbeddingDim.
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, EmbeddingDim)
		for j := 0; j < k; j++ {
			row[j] = u.At(i, j) * sigma[j]
		}
		out[i] = row
	}
	return out, nil
}
