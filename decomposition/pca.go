package decomposition

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/vinum/core/model"
	"github.com/YuminosukeSato/vinum/pkg/errors"
)

// PCA is a principal component analysis estimator compatible with
// scikit-learn's PCA. Fit centers the data, eigen-decomposes its
// covariance matrix, and keeps the components with the largest
// eigenvalues; Transform projects data onto them.
type PCA struct {
	state *model.StateManager

	// nComponents is the requested number of components; 0 keeps all.
	nComponents int

	// Components_ holds the principal axes as columns (d x k).
	Components_ *mat.Dense

	// Mean_ is the per-feature mean subtracted before projection.
	Mean_ []float64

	// ExplainedVariance_ holds the eigenvalues of the kept components
	// in descending order.
	ExplainedVariance_ []float64

	// ExplainedVarianceRatio_ is ExplainedVariance_ divided by the
	// total variance, so it sums to 1 when all components are kept.
	ExplainedVarianceRatio_ []float64

	// NComponents_ is the number of components actually kept.
	NComponents_ int
}

// PCAOption is a functional option for PCA.
type PCAOption func(*PCA)

// WithNComponents sets the number of components to keep. Zero keeps
// every component.
func WithNComponents(k int) PCAOption {
	return func(p *PCA) {
		p.nComponents = k
	}
}

// NewPCA creates a PCA estimator.
func NewPCA(opts ...PCAOption) *PCA {
	p := &PCA{
		state: model.NewStateManager(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fit learns the principal components of X.
func (p *PCA) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "PCA.Fit")

	r, c := X.Dims()
	if r < 2 || c == 0 {
		return errors.NewModelError("PCA.Fit", "need at least 2 rows", errors.ErrEmptyData)
	}
	if p.nComponents < 0 || p.nComponents > c {
		return errors.NewValueError("PCA.Fit",
			fmt.Sprintf("n_components must be in [0, %d], got %d", c, p.nComponents))
	}

	k := p.nComponents
	if k == 0 {
		k = c
	}

	// Center the data on the column means.
	p.Mean_ = make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		p.Mean_[j] = sum / float64(r)
	}
	centered := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			centered.Set(i, j, X.At(i, j)-p.Mean_[j])
		}
	}

	cov, err := CovarianceMatrix(centered)
	if err != nil {
		return err
	}
	pairs, err := EigenPairs(cov)
	if err != nil {
		return err
	}
	SortEigenPairs(pairs)

	total := 0.0
	for _, pair := range pairs {
		total += pair.Value
	}

	p.Components_, err = ProjectionMatrix(pairs, k)
	if err != nil {
		return err
	}
	p.ExplainedVariance_ = make([]float64, k)
	p.ExplainedVarianceRatio_ = make([]float64, k)
	for j := 0; j < k; j++ {
		p.ExplainedVariance_[j] = pairs[j].Value
		p.ExplainedVarianceRatio_[j] = pairs[j].Value / total
	}
	p.NComponents_ = k

	p.state.SetDimensions(r, c)
	p.state.SetFitted()
	return nil
}

// Transform projects X onto the fitted components.
func (p *PCA) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.state.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "Transform")
	}

	r, c := X.Dims()
	if c != len(p.Mean_) {
		return nil, errors.NewDimensionError("PCA.Transform", len(p.Mean_), c, 1)
	}

	centered := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			centered.Set(i, j, X.At(i, j)-p.Mean_[j])
		}
	}
	projected, err := Project(centered, p.Components_)
	if err != nil {
		return nil, err
	}
	return projected, nil
}

// FitTransform fits on X and returns the projected X.
func (p *PCA) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// InverseTransform maps reduced data back into the original feature
// space. With fewer components than features the reconstruction is the
// closest approximation in the retained subspace, not an exact inverse.
func (p *PCA) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !p.state.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "InverseTransform")
	}

	r, c := X.Dims()
	if c != p.NComponents_ {
		return nil, errors.NewDimensionError("PCA.InverseTransform", p.NComponents_, c, 1)
	}

	var back mat.Dense
	back.Mul(X, p.Components_.T())
	d := len(p.Mean_)
	result := mat.NewDense(r, d, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < d; j++ {
			result.Set(i, j, back.At(i, j)+p.Mean_[j])
		}
	}
	return result, nil
}

// IsFitted reports whether Fit has been called.
func (p *PCA) IsFitted() bool {
	return p.state.IsFitted()
}

// GetParams returns the estimator hyperparameters.
func (p *PCA) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_components": p.nComponents,
	}
}

// String returns a readable description of the estimator.
func (p *PCA) String() string {
	if !p.state.IsFitted() {
		return fmt.Sprintf("PCA(n_components=%d)", p.nComponents)
	}
	return fmt.Sprintf("PCA(n_components=%d, fitted=true)", p.NComponents_)
}
