// Package preprocessing provides feature scaling with a strict
// fit/transform separation: statistics are learned from the fitted
// matrix only and never updated by Transform, so test-set statistics
// cannot leak into a model trained on the training set.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/vinum/core/model"
	"github.com/YuminosukeSato/vinum/pkg/errors"
)

// StandardScaler standardizes features to zero mean and unit variance,
// compatible with scikit-learn's StandardScaler.
type StandardScaler struct {
	state *model.StateManager

	// Mean_ holds the per-feature mean learned by Fit.
	Mean_ []float64

	// Scale_ holds the per-feature standard deviation learned by Fit.
	Scale_ []float64

	// NFeatures_ is the feature count seen by Fit.
	NFeatures_ int
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{
		state: model.NewStateManager(),
	}
}

// Fit learns the per-feature mean and standard deviation from X.
// Only X contributes to the statistics; data passed to Transform later
// does not update them.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures_ = c
	s.Mean_ = make([]float64, c)
	s.Scale_ = make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		s.Mean_[j] = sum / float64(r)
	}

	for j := 0; j < c; j++ {
		sumSquares := 0.0
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - s.Mean_[j]
			sumSquares += diff * diff
		}
		s.Scale_[j] = math.Sqrt(sumSquares / float64(r))

		// A constant column has no scale; clamp to 1 so Transform
		// does not divide by zero.
		if math.Abs(s.Scale_[j]) < 1e-8 {
			s.Scale_[j] = 1.0
		}
	}

	s.state.SetDimensions(r, c)
	s.state.SetFitted()
	return nil
}

// Transform standardizes X using the statistics learned by Fit.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.state.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures_ {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures_, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean_[j])/s.Scale_[j])
		}
	}
	return result, nil
}

// FitTransform fits on X and returns the standardized X.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.state.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures_ {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures_, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale_[j]+s.Mean_[j])
		}
	}
	return result, nil
}

// IsFitted reports whether Fit has been called.
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

// String returns a readable description of the scaler.
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return "StandardScaler()"
	}
	return fmt.Sprintf("StandardScaler(n_features=%d)", s.NFeatures_)
}
