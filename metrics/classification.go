// Package metrics provides evaluation metrics for classification.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/vinum/pkg/errors"
)

// Accuracy computes the fraction of predictions matching the true
// labels. Both inputs are n x 1 matrices.
func Accuracy(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 {
		return 0, errors.NewValueError("Accuracy", "empty input")
	}
	if cTrue != 1 || cPred != 1 {
		return 0, errors.NewValueError("Accuracy", "inputs must be column vectors")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("Accuracy", rTrue, rPred, 0)
	}

	correct := 0
	for i := 0; i < rTrue; i++ {
		if yTrue.At(i, 0) == yPred.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(rTrue), nil
}

// ConfusionMatrix computes the class confusion counts. The returned
// matrix has one row per true class and one column per predicted class,
// with classes sorted ascending; the class order is returned alongside.
func ConfusionMatrix(yTrue, yPred mat.Matrix) (*mat.Dense, []int, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 {
		return nil, nil, errors.NewValueError("ConfusionMatrix", "empty input")
	}
	if cTrue != 1 || cPred != 1 {
		return nil, nil, errors.NewValueError("ConfusionMatrix", "inputs must be column vectors")
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError("ConfusionMatrix", rTrue, rPred, 0)
	}

	classSet := make(map[int]bool)
	for i := 0; i < rTrue; i++ {
		classSet[int(yTrue.At(i, 0))] = true
		classSet[int(yPred.At(i, 0))] = true
	}
	classes := make([]int, 0, len(classSet))
	for class := range classSet {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	index := make(map[int]int, len(classes))
	for i, class := range classes {
		index[class] = i
	}

	cm := mat.NewDense(len(classes), len(classes), nil)
	for i := 0; i < rTrue; i++ {
		ti := index[int(yTrue.At(i, 0))]
		pi := index[int(yPred.At(i, 0))]
		cm.Set(ti, pi, cm.At(ti, pi)+1)
	}
	return cm, classes, nil
}
