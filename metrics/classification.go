// Package metrics provides evaluation metrics for classifiers and regressors.
//
// All functions accept n x 1 matrices so estimator outputs can be scored
// without reshaping. Metrics that are undefined for the given input raise an
// UndefinedMetricWarning through pkg/errors and return a neutral value
// instead of failing the run.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/pkg/errors"
)

// Accuracy returns the fraction of predictions matching the true labels.
func Accuracy(yTrue, yPred mat.Matrix) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.At(i, 0) == yPred.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ConfusionMatrix returns the counts matrix C where C[i][j] is the number of
// samples with true class classes[i] predicted as classes[j], together with
// the sorted class labels. Labels present in either argument contribute a
// row and column.
func ConfusionMatrix(yTrue, yPred mat.Matrix) ([][]int, []int, error) {
	n, err := checkPair("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return nil, nil, err
	}

	seen := map[int]bool{}
	for i := 0; i < n; i++ {
		seen[int(yTrue.At(i, 0))] = true
		seen[int(yPred.At(i, 0))] = true
	}
	classes := make([]int, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sortInts(classes)

	index := make(map[int]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	cm := make([][]int, len(classes))
	for i := range cm {
		cm[i] = make([]int, len(classes))
	}
	for i := 0; i < n; i++ {
		cm[index[int(yTrue.At(i, 0))]][index[int(yPred.At(i, 0))]]++
	}
	return cm, classes, nil
}

func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// checkPair validates that yTrue and yPred are non-empty column vectors of
// equal length and returns that length.
func checkPair(op string, yTrue, yPred mat.Matrix) (int, error) {
	rt, ct := yTrue.Dims()
	rp, cp := yPred.Dims()

	if rt == 0 {
		return 0, errors.NewValueError(op, "empty input")
	}
	if ct != 1 || cp != 1 {
		return 0, errors.NewValueError(op, "inputs must be column vectors (n x 1 matrices)")
	}
	if rt != rp {
		return 0, errors.NewDimensionError(op, rt, rp, 0)
	}
	return rt, nil
}
