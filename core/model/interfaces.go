// Package model defines the estimator and transformer contracts shared
// across vinum, together with fitted-state tracking.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Transformer is the interface for fit-once, transform-anywhere data
// transforms. Fit learns parameters from the given matrix only;
// Transform applies those parameters to any matrix with a matching
// feature count. The split between the two is deliberate: refitting
// inside Transform would leak statistics from the transformed data into
// the model.
type Transformer interface {
	// Fit learns the transform parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the learned parameters to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits on X and returns the transformed X.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Fitter is the interface for supervised models.
type Fitter interface {
	// Fit trains the model on X with targets y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that produce predictions.
type Predictor interface {
	// Predict returns predictions for X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can evaluate themselves.
type Scorer interface {
	// Score returns a quality measure of the prediction on X against y.
	// For classifiers this is mean accuracy.
	Score(X, y mat.Matrix) (float64, error)
}

// Classifier combines the interfaces a classification model provides.
type Classifier interface {
	Fitter
	Predictor
	Scorer

	// PredictProba returns per-class probability estimates for X.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the unique class labels seen during fitting.
	Classes() []int
}

// ParameterGetter is the interface for models that expose their
// hyperparameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
