// Package decomposition implements Principal Component Analysis: a PCA
// estimator in the usual fit/transform shape, plus the individual
// covariance and eigen-decomposition steps as exported helpers so the
// manual construction of a projection matrix can be followed step by
// step.
package decomposition

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/vinum/pkg/errors"
)

// EigenPair couples an eigenvalue of a covariance matrix with its
// eigenvector. The eigenvalue is the variance explained along the
// eigenvector's direction.
type EigenPair struct {
	Value  float64
	Vector []float64
}

// CovarianceMatrix computes the empirical covariance matrix of the rows
// of X (sample covariance, n-1 denominator).
func CovarianceMatrix(X mat.Matrix) (cov *mat.SymDense, err error) {
	defer errors.Recover(&err, "decomposition.CovarianceMatrix")

	r, c := X.Dims()
	if r < 2 || c == 0 {
		return nil, errors.NewModelError("decomposition.CovarianceMatrix", "need at least 2 rows", errors.ErrEmptyData)
	}

	cov = mat.NewSymDense(c, nil)
	stat.CovarianceMatrix(cov, X, nil)
	return cov, nil
}

// EigenPairs decomposes a symmetric covariance matrix into its
// eigenvalue/eigenvector pairs. The pairs come back in the order the
// underlying routine produces them; call SortEigenPairs before
// selecting components.
func EigenPairs(cov *mat.SymDense) ([]EigenPair, error) {
	if cov == nil {
		return nil, errors.NewValueError("decomposition.EigenPairs", "nil covariance matrix")
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(cov, true); !ok {
		return nil, errors.Wrap(errors.ErrEigenFailed, "decomposition.EigenPairs")
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	d := len(values)
	pairs := make([]EigenPair, d)
	for j := 0; j < d; j++ {
		vec := make([]float64, d)
		mat.Col(vec, j, &vectors)
		pairs[j] = EigenPair{Value: values[j], Vector: vec}
	}
	return pairs, nil
}

// SortEigenPairs orders pairs by descending absolute eigenvalue, in
// place. The sort is stable, so re-sorting a sorted slice is a no-op
// and ties keep their incoming order.
func SortEigenPairs(pairs []EigenPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		vi, vj := pairs[i].Value, pairs[j].Value
		if vi < 0 {
			vi = -vi
		}
		if vj < 0 {
			vj = -vj
		}
		return vi > vj
	})
}

// ProjectionMatrix stacks the eigenvectors of the first k pairs as the
// columns of a d x k matrix W. Callers normally sort the pairs first so
// the columns are the top-k components.
func ProjectionMatrix(pairs []EigenPair, k int) (*mat.Dense, error) {
	if k <= 0 || k > len(pairs) {
		return nil, errors.NewValueError("decomposition.ProjectionMatrix", "k must be in [1, len(pairs)]")
	}

	d := len(pairs[0].Vector)
	W := mat.NewDense(d, k, nil)
	for j := 0; j < k; j++ {
		if len(pairs[j].Vector) != d {
			return nil, errors.NewDimensionError("decomposition.ProjectionMatrix", d, len(pairs[j].Vector), 0)
		}
		W.SetCol(j, pairs[j].Vector)
	}
	return W, nil
}

// Project maps the rows of X into the reduced space: X dot W.
func Project(X mat.Matrix, W *mat.Dense) (out *mat.Dense, err error) {
	defer errors.Recover(&err, "decomposition.Project")

	_, xc := X.Dims()
	wr, _ := W.Dims()
	if xc != wr {
		return nil, errors.NewDimensionError("decomposition.Project", wr, xc, 1)
	}

	out = &mat.Dense{}
	out.Mul(X, W)
	return out, nil
}
