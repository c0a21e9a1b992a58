// Package pipeline chains transformers with a final classifier so a
// whole preprocessing-plus-model sequence fits and predicts as one
// estimator. Each step's Fit sees only the output of the previous
// steps' Transform on the training data, which keeps the no-leakage
// property of the individual steps intact end to end.
package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/vinum/core/model"
	"github.com/YuminosukeSato/vinum/pkg/errors"
)

// Step is a named transformer stage.
type Step struct {
	Name        string
	Transformer model.Transformer
}

// Pipeline applies an ordered list of transformers and a final
// classifier.
type Pipeline struct {
	state *model.StateManager

	steps     []Step
	estimator model.Classifier
}

// New creates a pipeline from transformer steps and a final classifier.
func New(estimator model.Classifier, steps ...Step) *Pipeline {
	return &Pipeline{
		state:     model.NewStateManager(),
		steps:     steps,
		estimator: estimator,
	}
}

// Fit runs fit-then-transform through every step on the training data
// and fits the final classifier on the fully transformed matrix.
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	if p.estimator == nil {
		return errors.NewValueError("Pipeline.Fit", "no final estimator")
	}

	current := X
	for _, step := range p.steps {
		transformed, err := step.Transformer.FitTransform(current)
		if err != nil {
			return errors.Wrapf(err, "fitting step %q", step.Name)
		}
		current = transformed
	}

	if err := p.estimator.Fit(current, y); err != nil {
		return errors.Wrap(err, "fitting final estimator")
	}

	r, c := X.Dims()
	p.state.SetDimensions(r, c)
	p.state.SetFitted()
	return nil
}

// Transform applies every fitted step to X, without the final
// classifier.
func (p *Pipeline) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.state.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Transform")
	}

	current := X
	for _, step := range p.steps {
		transformed, err := step.Transformer.Transform(current)
		if err != nil {
			return nil, errors.Wrapf(err, "transforming step %q", step.Name)
		}
		current = transformed
	}
	return current, nil
}

// Predict transforms X through the steps and predicts with the final
// classifier.
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	transformed, err := p.Transform(X)
	if err != nil {
		return nil, err
	}
	return p.estimator.Predict(transformed)
}

// PredictProba transforms X through the steps and returns the final
// classifier's probability estimates.
func (p *Pipeline) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	transformed, err := p.Transform(X)
	if err != nil {
		return nil, err
	}
	return p.estimator.PredictProba(transformed)
}

// Score transforms X through the steps and scores the final classifier
// against y.
func (p *Pipeline) Score(X, y mat.Matrix) (float64, error) {
	transformed, err := p.Transform(X)
	if err != nil {
		return 0, err
	}
	return p.estimator.Score(transformed, y)
}

// Classes returns the final classifier's class labels.
func (p *Pipeline) Classes() []int {
	return p.estimator.Classes()
}

// IsFitted reports whether Fit has been called.
func (p *Pipeline) IsFitted() bool {
	return p.state.IsFitted()
}
