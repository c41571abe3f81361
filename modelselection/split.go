// Package modelselection provides data partitioning and hyperparameter
// search: train/test splits, k-fold splitters, and grid-search
// cross-validation.
package modelselection

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/pkg/errors"
)

// Split holds one train/test partition of a dataset.
type Split struct {
	XTrain, XTest *mat.Dense
	YTrain, YTest *mat.Dense
}

// TrainTestSplit shuffles the rows of X and y with the given seed and carves
// off testSize (a fraction in (0, 1)) of them as the held-out partition.
// The same seed always yields the same partition.
func TrainTestSplit(X, y mat.Matrix, testSize float64, seed int) (*Split, error) {
	n, err := checkSplitInputs("TrainTestSplit", X, y, testSize)
	if err != nil {
		return nil, err
	}

	indices := shuffledIndices(n, seed)
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest == 0 || nTest == n {
		return nil, errors.NewValidationError("test_size", "split leaves an empty partition", testSize)
	}

	return buildSplit(X, y, indices[nTest:], indices[:nTest]), nil
}

// StratifiedTrainTestSplit is TrainTestSplit preserving the class proportions
// of y in both partitions. y must hold integer class labels.
func StratifiedTrainTestSplit(X, y mat.Matrix, testSize float64, seed int) (*Split, error) {
	n, err := checkSplitInputs("StratifiedTrainTestSplit", X, y, testSize)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	classIndices := groupByClass(y, n)

	var testIdx, trainIdx []int
	for _, label := range sortedClassLabels(classIndices) {
		idx := append([]int(nil), classIndices[label]...)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nClassTest := int(math.Round(testSize * float64(len(idx))))
		if nClassTest == 0 && len(idx) > 1 {
			nClassTest = 1
		}
		if nClassTest >= len(idx) {
			nClassTest = len(idx) - 1
		}
		testIdx = append(testIdx, idx[:nClassTest]...)
		trainIdx = append(trainIdx, idx[nClassTest:]...)
	}

	if len(testIdx) == 0 || len(trainIdx) == 0 {
		return nil, errors.NewValidationError("test_size", "split leaves an empty partition", testSize)
	}

	// Keep row order stable within each partition for reproducible output.
	sort.Ints(testIdx)
	sort.Ints(trainIdx)

	return buildSplit(X, y, trainIdx, testIdx), nil
}

func checkSplitInputs(op string, X, y mat.Matrix, testSize float64) (int, error) {
	n, _ := X.Dims()
	yr, yc := y.Dims()
	if n == 0 {
		return 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if yr != n {
		return 0, errors.NewDimensionError(op, n, yr, 0)
	}
	if yc != 1 {
		return 0, errors.NewValueError(op, "y must be a column vector")
	}
	if testSize <= 0 || testSize >= 1 {
		return 0, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}
	return n, nil
}

func shuffledIndices(n, seed int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	rng.Shuffle(n, func(i, j int) { indices[i], indices[j] = indices[j], indices[i] })
	return indices
}

func groupByClass(y mat.Matrix, n int) map[int][]int {
	classIndices := map[int][]int{}
	for i := 0; i < n; i++ {
		label := int(y.At(i, 0))
		classIndices[label] = append(classIndices[label], i)
	}
	return classIndices
}

func sortedClassLabels(classIndices map[int][]int) []int {
	labels := make([]int, 0, len(classIndices))
	for label := range classIndices {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	return labels
}

func buildSplit(X, y mat.Matrix, trainIdx, testIdx []int) *Split {
	return &Split{
		XTrain: takeRows(X, trainIdx),
		XTest:  takeRows(X, testIdx),
		YTrain: takeRows(y, trainIdx),
		YTest:  takeRows(y, testIdx),
	}
}

// takeRows copies the given rows of m into a new matrix.
func takeRows(m mat.Matrix, indices []int) *mat.Dense {
	_, c := m.Dims()
	out := mat.NewDense(len(indices), c, nil)
	for i, idx := range indices {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(idx, j))
		}
	}
	return out
}
