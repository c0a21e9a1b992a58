// Package linear implements logistic regression for binary and
// multiclass classification, compatible with scikit-learn's
// LogisticRegression.
package linear

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/vinum/core/model"
	"github.com/YuminosukeSato/vinum/core/parallel"
	"github.com/YuminosukeSato/vinum/pkg/errors"
)

// parallelThreshold is the row count above which PredictProba splits
// work across goroutines.
const parallelThreshold = 1000

// LogisticRegression is a linear classifier trained with full-batch
// gradient descent. Binary problems use the sigmoid loss; multiclass
// problems use either one softmax model (multinomial) or one binary
// model per class (one-vs-rest).
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	penalty      string  // "l2" or "none"
	c            float64 // inverse regularization strength
	fitIntercept bool
	randomState  int64
	maxIter      int
	multiClass   string // "auto", "ovr", "multinomial"
	tol          float64

	// Fitted parameters
	coef_      [][]float64 // n_classes x n_features (1 x n_features for binary)
	intercept_ []float64
	classes_   []int
	nClasses_  int
	nFeatures_ int
	nIter_     []int

	rand *rand.Rand
}

// Option is a functional option for LogisticRegression.
type Option func(*LogisticRegression)

// WithPenalty sets the regularization type, "l2" or "none".
func WithPenalty(penalty string) Option {
	return func(lr *LogisticRegression) {
		lr.penalty = penalty
	}
}

// WithC sets the inverse regularization strength.
func WithC(c float64) Option {
	return func(lr *LogisticRegression) {
		lr.c = c
	}
}

// WithFitIntercept sets whether an intercept term is fitted.
func WithFitIntercept(fit bool) Option {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithMaxIter sets the maximum number of gradient descent iterations.
func WithMaxIter(maxIter int) Option {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithTol sets the gradient tolerance for early stopping.
func WithTol(tol float64) Option {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithMultiClass selects the multiclass strategy: "auto", "ovr" or
// "multinomial". "auto" picks multinomial for more than two classes.
func WithMultiClass(strategy string) Option {
	return func(lr *LogisticRegression) {
		lr.multiClass = strategy
	}
}

// WithRandomState fixes the seed for weight initialization.
func WithRandomState(seed int64) Option {
	return func(lr *LogisticRegression) {
		lr.randomState = seed
	}
}

// NewLogisticRegression creates a LogisticRegression classifier.
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		penalty:      "l2",
		c:            1.0,
		fitIntercept: true,
		randomState:  -1,
		maxIter:      100,
		multiClass:   "auto",
		tol:          1e-4,
	}
	for _, opt := range opts {
		opt(lr)
	}

	if lr.randomState >= 0 {
		lr.rand = rand.New(rand.NewSource(lr.randomState))
	} else {
		lr.rand = rand.New(rand.NewSource(rand.Int63()))
	}
	return lr
}

// Fit trains the classifier on X with integer class labels y (n x 1).
func (lr *LogisticRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LogisticRegression.Fit")

	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()
	if nSamples == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if nSamples != yRows {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LogisticRegression.Fit",
			fmt.Sprintf("y must be a column vector, got shape (%d, %d)", yRows, yCols))
	}

	lr.extractClasses(y)
	if lr.nClasses_ < 2 {
		return errors.NewValueError("LogisticRegression.Fit", "need at least 2 classes")
	}
	lr.nFeatures_ = nFeatures
	lr.initializeWeights(nFeatures)

	switch {
	case lr.nClasses_ == 2:
		err = lr.fitBinary(X, y)
	case lr.multiClass == "ovr":
		err = lr.fitOVR(X, y)
	default: // "auto" and "multinomial"
		err = lr.fitMultinomial(X, y)
	}
	if err != nil {
		return err
	}

	lr.state.SetDimensions(nSamples, nFeatures)
	lr.state.SetFitted()
	return nil
}

// extractClasses records the sorted unique labels in y.
func (lr *LogisticRegression) extractClasses(y mat.Matrix) {
	rows, _ := y.Dims()
	classMap := make(map[int]bool)
	for i := 0; i < rows; i++ {
		classMap[int(y.At(i, 0))] = true
	}

	lr.classes_ = make([]int, 0, len(classMap))
	for class := range classMap {
		lr.classes_ = append(lr.classes_, class)
	}
	sort.Ints(lr.classes_)
	lr.nClasses_ = len(lr.classes_)
}

// initializeWeights sets small random initial weights.
func (lr *LogisticRegression) initializeWeights(nFeatures int) {
	nModels := lr.nClasses_
	if lr.nClasses_ == 2 {
		nModels = 1
	}

	lr.coef_ = make([][]float64, nModels)
	for i := range lr.coef_ {
		lr.coef_[i] = make([]float64, nFeatures)
		for j := range lr.coef_[i] {
			lr.coef_[i][j] = lr.rand.NormFloat64() * 0.01
		}
	}
	lr.intercept_ = make([]float64, nModels)
	lr.nIter_ = make([]int, nModels)
}

// fitBinary trains a single sigmoid model. The second class in sorted
// order is the positive class.
func (lr *LogisticRegression) fitBinary(X, y mat.Matrix) error {
	nSamples, _ := X.Dims()

	yBinary := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		if int(y.At(i, 0)) == lr.classes_[1] {
			yBinary[i] = 1.0
		}
	}
	return lr.descend(X, yBinary, 0)
}

// fitOVR trains one binary model per class against the rest.
func (lr *LogisticRegression) fitOVR(X, y mat.Matrix) error {
	nSamples, _ := X.Dims()

	for classIdx, class := range lr.classes_ {
		yBinary := make([]float64, nSamples)
		for i := 0; i < nSamples; i++ {
			if int(y.At(i, 0)) == class {
				yBinary[i] = 1.0
			}
		}
		if err := lr.descend(X, yBinary, classIdx); err != nil {
			return errors.Wrapf(err, "fitting class %d", class)
		}
	}
	return nil
}

// descend runs full-batch gradient descent for the sigmoid model at
// modelIdx against 0/1 targets.
func (lr *LogisticRegression) descend(X mat.Matrix, yBinary []float64, modelIdx int) error {
	nSamples, nFeatures := X.Dims()
	weights := lr.coef_[modelIdx]
	intercept := &lr.intercept_[modelIdx]

	const baseLearningRate = 1.0
	converged := false

	for iter := 0; iter < lr.maxIter; iter++ {
		gradWeights := make([]float64, nFeatures)
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			z := *intercept
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * weights[j]
			}
			residual := sigmoid(z) - yBinary[i]
			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}

		for j := range gradWeights {
			gradWeights[j] /= float64(nSamples)
		}
		gradIntercept /= float64(nSamples)

		if lr.penalty == "l2" {
			lambda := 1.0 / lr.c
			for j := range weights {
				gradWeights[j] += lambda * weights[j] / float64(nSamples)
			}
		}

		if err := errors.CheckValues("LogisticRegression.descend", gradWeights, iter); err != nil {
			return err
		}

		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))
		for j := range weights {
			weights[j] -= learningRate * gradWeights[j]
		}
		if lr.fitIntercept {
			*intercept -= learningRate * gradIntercept
		}

		lr.nIter_[modelIdx] = iter + 1

		if maxAbs(gradWeights, gradIntercept) < lr.tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.maxIter, ""))
	}
	return nil
}

// fitMultinomial trains one softmax model over all classes with
// full-batch gradient descent.
func (lr *LogisticRegression) fitMultinomial(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	k := lr.nClasses_

	// Class index per sample.
	classIdx := make([]int, nSamples)
	for i := 0; i < nSamples; i++ {
		label := int(y.At(i, 0))
		for c, class := range lr.classes_ {
			if class == label {
				classIdx[i] = c
				break
			}
		}
	}

	const baseLearningRate = 1.0
	converged := false
	scores := make([]float64, k)
	probs := make([]float64, k)
	gradW := make([][]float64, k)
	for c := range gradW {
		gradW[c] = make([]float64, nFeatures)
	}
	gradB := make([]float64, k)

	for iter := 0; iter < lr.maxIter; iter++ {
		for c := 0; c < k; c++ {
			for j := 0; j < nFeatures; j++ {
				gradW[c][j] = 0
			}
			gradB[c] = 0
		}

		for i := 0; i < nSamples; i++ {
			for c := 0; c < k; c++ {
				z := lr.intercept_[c]
				for j := 0; j < nFeatures; j++ {
					z += X.At(i, j) * lr.coef_[c][j]
				}
				scores[c] = z
			}
			// Softmax through LogSumExp keeps large logits finite.
			lse := errors.LogSumExp(scores)
			for c := 0; c < k; c++ {
				probs[c] = errors.StabilizeExp(scores[c] - lse)
			}

			for c := 0; c < k; c++ {
				residual := probs[c]
				if c == classIdx[i] {
					residual -= 1.0
				}
				gradB[c] += residual
				for j := 0; j < nFeatures; j++ {
					gradW[c][j] += residual * X.At(i, j)
				}
			}
		}

		lambda := 0.0
		if lr.penalty == "l2" {
			lambda = 1.0 / lr.c
		}

		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))
		maxGrad := 0.0
		for c := 0; c < k; c++ {
			for j := 0; j < nFeatures; j++ {
				g := gradW[c][j]/float64(nSamples) + lambda*lr.coef_[c][j]/float64(nSamples)
				lr.coef_[c][j] -= learningRate * g
				if a := math.Abs(g); a > maxGrad {
					maxGrad = a
				}
			}
			gb := gradB[c] / float64(nSamples)
			if lr.fitIntercept {
				lr.intercept_[c] -= learningRate * gb
			}
			if a := math.Abs(gb); a > maxGrad {
				maxGrad = a
			}
			if err := errors.CheckValues("LogisticRegression.fitMultinomial", lr.coef_[c], iter); err != nil {
				return err
			}
			lr.nIter_[c] = iter + 1
		}

		if maxGrad < lr.tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.maxIter, ""))
	}
	return nil
}

// Predict returns the most likely class label for each row of X.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	probas, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	nSamples, _ := X.Dims()
	predictions := mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		best, bestProb := 0, probas.At(i, 0)
		for c := 1; c < lr.nClasses_; c++ {
			if p := probas.At(i, c); p > bestProb {
				best, bestProb = c, p
			}
		}
		predictions.Set(i, 0, float64(lr.classes_[best]))
	}
	return predictions, nil
}

// PredictProba returns per-class probability estimates, one column per
// class in the order of Classes().
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}
	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.nFeatures_, nFeatures, 1)
	}

	probas := mat.NewDense(nSamples, lr.nClasses_, nil)

	// Rows are independent, so decision grids and other large inputs
	// score across cores. Each worker writes to its own row range.
	if lr.nClasses_ == 2 {
		parallel.ParallelizeWithThreshold(nSamples, parallelThreshold, func(start, end int) {
			for i := start; i < end; i++ {
				z := lr.intercept_[0]
				for j := 0; j < nFeatures; j++ {
					z += X.At(i, j) * lr.coef_[0][j]
				}
				p1 := sigmoid(z)
				probas.Set(i, 0, 1.0-p1)
				probas.Set(i, 1, p1)
			}
		})
		return probas, nil
	}

	parallel.ParallelizeWithThreshold(nSamples, parallelThreshold, func(start, end int) {
		scores := make([]float64, lr.nClasses_)
		for i := start; i < end; i++ {
			for c := 0; c < lr.nClasses_; c++ {
				z := lr.intercept_[c]
				for j := 0; j < nFeatures; j++ {
					z += X.At(i, j) * lr.coef_[c][j]
				}
				scores[c] = z
			}
			lse := errors.LogSumExp(scores)
			for c := 0; c < lr.nClasses_; c++ {
				probas.Set(i, c, errors.StabilizeExp(scores[c]-lse))
			}
		}
	})
	return probas, nil
}

// Score returns the mean accuracy of Predict(X) against y.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	nSamples, _ := X.Dims()
	yRows, _ := y.Dims()
	if yRows != nSamples {
		return 0, errors.NewDimensionError("LogisticRegression.Score", nSamples, yRows, 0)
	}

	correct := 0
	for i := 0; i < nSamples; i++ {
		if predictions.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(nSamples), nil
}

// Classes returns the class labels seen during fitting, sorted.
func (lr *LogisticRegression) Classes() []int {
	classes := make([]int, len(lr.classes_))
	copy(classes, lr.classes_)
	return classes
}

// Coef returns the fitted weight matrix, one row per model.
func (lr *LogisticRegression) Coef() [][]float64 {
	return lr.coef_
}

// Intercept returns the fitted intercept terms.
func (lr *LogisticRegression) Intercept() []float64 {
	return lr.intercept_
}

// NIter returns the iterations used per model.
func (lr *LogisticRegression) NIter() []int {
	return lr.nIter_
}

// IsFitted reports whether Fit has been called.
func (lr *LogisticRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// GetParams returns the hyperparameters.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"penalty":       lr.penalty,
		"C":             lr.c,
		"fit_intercept": lr.fitIntercept,
		"random_state":  lr.randomState,
		"max_iter":      lr.maxIter,
		"multi_class":   lr.multiClass,
		"tol":           lr.tol,
	}
}

// maxAbs returns the largest absolute value among the gradient entries
// and the intercept gradient.
func maxAbs(grads []float64, gradIntercept float64) float64 {
	maxGrad := math.Abs(gradIntercept)
	for _, g := range grads {
		if a := math.Abs(g); a > maxGrad {
			maxGrad = a
		}
	}
	return maxGrad
}

// sigmoid computes the logistic function.
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
