package dataset

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/vinum/pkg/errors"
)

// SplitOption configures TrainTestSplit.
type SplitOption func(*splitConfig)

type splitConfig struct {
	seed     int64
	stratify bool
}

// WithSeed fixes the random seed so the split is reproducible.
func WithSeed(seed int64) SplitOption {
	return func(c *splitConfig) {
		c.seed = seed
	}
}

// WithStratify controls whether the split preserves per-class label
// proportions. Default: true.
func WithStratify(stratify bool) SplitOption {
	return func(c *splitConfig) {
		c.stratify = stratify
	}
}

// TrainTestSplit partitions X and y into train and test subsets.
// testSize is the fraction of rows assigned to the test set, in (0, 1).
// By default the split is stratified on y: rows are grouped by class
// label, each group is shuffled, and a proportional share of each group
// goes to the test set, so class proportions carry over to both subsets
// within rounding.
func TrainTestSplit(X, y *mat.Dense, testSize float64, opts ...SplitOption) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	cfg := splitConfig{
		seed:     time.Now().UnixNano(),
		stratify: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	n, d := X.Dims()
	yRows, yCols := y.Dims()
	if n == 0 {
		return nil, nil, nil, nil, errors.NewModelError("dataset.TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if yRows != n {
		return nil, nil, nil, nil, errors.NewDimensionError("dataset.TrainTestSplit", n, yRows, 0)
	}
	if yCols != 1 {
		return nil, nil, nil, nil, errors.NewValueError("dataset.TrainTestSplit", "y must be a column vector")
	}
	if !(testSize > 0 && testSize < 1) {
		return nil, nil, nil, nil, errors.NewValueError("dataset.TrainTestSplit", "testSize must be in (0, 1)")
	}

	rng := rand.New(rand.NewSource(cfg.seed))

	var testIdx, trainIdx []int
	if cfg.stratify {
		testIdx, trainIdx = stratifiedIndices(y, n, testSize, rng)
	} else {
		perm := rng.Perm(n)
		nTest := int(float64(n) * testSize)
		testIdx, trainIdx = perm[:nTest], perm[nTest:]
	}

	if len(testIdx) == 0 || len(trainIdx) == 0 {
		return nil, nil, nil, nil, errors.NewValueError("dataset.TrainTestSplit", "testSize leaves an empty subset")
	}

	XTrain, yTrain = takeRows(X, y, trainIdx, d)
	XTest, yTest = takeRows(X, y, testIdx, d)
	return XTrain, XTest, yTrain, yTest, nil
}

// stratifiedIndices shuffles the row indices of each class separately
// and assigns a proportional share of each class to the test set.
func stratifiedIndices(y *mat.Dense, n int, testSize float64, rng *rand.Rand) (testIdx, trainIdx []int) {
	byClass := make(map[int][]int)
	var order []int
	for i := 0; i < n; i++ {
		label := int(y.At(i, 0))
		if _, seen := byClass[label]; !seen {
			order = append(order, label)
		}
		byClass[label] = append(byClass[label], i)
	}

	// Iterate classes in first-seen order for determinism under a
	// fixed seed.
	for _, label := range order {
		idx := byClass[label]
		rng.Shuffle(len(idx), func(a, b int) {
			idx[a], idx[b] = idx[b], idx[a]
		})
		nTest := int(float64(len(idx)) * testSize)
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}
	return testIdx, trainIdx
}

func takeRows(X, y *mat.Dense, idx []int, d int) (*mat.Dense, *mat.Dense) {
	Xout := mat.NewDense(len(idx), d, nil)
	yout := mat.NewDense(len(idx), 1, nil)
	for i, row := range idx {
		Xout.SetRow(i, X.RawRowView(row))
		yout.Set(i, 0, y.At(row, 0))
	}
	return Xout, yout
}
