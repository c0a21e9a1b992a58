package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// makeClassData builds rows where feature 0 encodes the row index and
// the label cycles through the given class sizes.
func makeClassData(t *testing.T, classSizes map[int]int) (*mat.Dense, *mat.Dense) {
	t.Helper()
	var n int
	for _, size := range classSizes {
		n += size
	}
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	i := 0
	for _, label := range []int{1, 2, 3} {
		for j := 0; j < classSizes[label]; j++ {
			X.Set(i, 0, float64(i))
			X.Set(i, 1, float64(label))
			y.Set(i, 0, float64(label))
			i++
		}
	}
	return X, y
}

func classCounts(y *mat.Dense) map[int]int {
	counts := make(map[int]int)
	r, _ := y.Dims()
	for i := 0; i < r; i++ {
		counts[int(y.At(i, 0))]++
	}
	return counts
}

func TestTrainTestSplitStratified(t *testing.T) {
	// Class sizes mimic the wine dataset: 59/71/48.
	X, y := makeClassData(t, map[int]int{1: 59, 2: 71, 3: 48})

	XTrain, XTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.3, WithSeed(0))
	require.NoError(t, err)

	trainRows, _ := XTrain.Dims()
	testRows, _ := XTest.Dims()
	assert.Equal(t, 178, trainRows+testRows)

	trainCounts := classCounts(yTrain)
	testCounts := classCounts(yTest)
	total := map[int]int{1: 59, 2: 71, 3: 48}

	// Class proportions must survive the split within rounding.
	for label, n := range total {
		wholeFrac := float64(n) / 178.0
		testFrac := float64(testCounts[label]) / float64(testRows)
		trainFrac := float64(trainCounts[label]) / float64(trainRows)
		assert.InDeltaf(t, wholeFrac, testFrac, 0.02, "class %d test fraction", label)
		assert.InDeltaf(t, wholeFrac, trainFrac, 0.02, "class %d train fraction", label)
	}
}

func TestTrainTestSplitRowsIntact(t *testing.T) {
	X, y := makeClassData(t, map[int]int{1: 10, 2: 10, 3: 10})

	XTrain, XTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.3, WithSeed(42))
	require.NoError(t, err)

	// Every original row must appear exactly once, with its label.
	seen := make(map[int]bool)
	check := func(Xs, ys *mat.Dense) {
		r, _ := Xs.Dims()
		for i := 0; i < r; i++ {
			rowID := int(Xs.At(i, 0))
			require.False(t, seen[rowID], "row %d appears twice", rowID)
			seen[rowID] = true
			assert.Equal(t, Xs.At(i, 1), ys.At(i, 0), "label detached from row %d", rowID)
		}
	}
	check(XTrain, yTrain)
	check(XTest, yTest)
	assert.Len(t, seen, 30)
}

func TestTrainTestSplitSeedReproducible(t *testing.T) {
	X, y := makeClassData(t, map[int]int{1: 20, 2: 20, 3: 20})

	XTrain1, _, _, _, err := TrainTestSplit(X, y, 0.25, WithSeed(7))
	require.NoError(t, err)
	XTrain2, _, _, _, err := TrainTestSplit(X, y, 0.25, WithSeed(7))
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(XTrain1, XTrain2, 0), "same seed must give the same split")
}

func TestTrainTestSplitUnstratified(t *testing.T) {
	X, y := makeClassData(t, map[int]int{1: 30, 2: 30, 3: 30})

	XTrain, XTest, _, _, err := TrainTestSplit(X, y, 0.5, WithSeed(1), WithStratify(false))
	require.NoError(t, err)

	trainRows, _ := XTrain.Dims()
	testRows, _ := XTest.Dims()
	assert.Equal(t, 45, trainRows)
	assert.Equal(t, 45, testRows)
}

func TestTrainTestSplitInvalidArgs(t *testing.T) {
	X, y := makeClassData(t, map[int]int{1: 5, 2: 5, 3: 5})

	for _, bad := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		_, _, _, _, err := TrainTestSplit(X, y, bad)
		assert.Errorf(t, err, "testSize=%v should fail", bad)
	}

	yBad := mat.NewDense(14, 1, nil)
	_, _, _, _, err := TrainTestSplit(X, yBad, 0.3)
	assert.Error(t, err, "mismatched row counts should fail")
}
