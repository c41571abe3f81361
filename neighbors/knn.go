// Package neighbors implements k-nearest-neighbor classification.
package neighbors

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/core/model"
	"github.com/gostatlab/statkit/core/parallel"
	"github.com/gostatlab/statkit/metrics"
	"github.com/gostatlab/statkit/pkg/errors"
)

// Vote weighting schemes.
const (
	// WeightsUniform counts every neighbor equally.
	WeightsUniform = "uniform"
	// WeightsDistance weights each neighbor by inverse distance. An exact
	// match (distance zero) outvotes all other neighbors.
	WeightsDistance = "distance"
)

// Prediction rows above this count are scored in parallel.
const parallelThreshold = 64

// KNNClassifier labels a query point by majority vote among its k closest
// training points under the Minkowski distance (p=2, Euclidean, by default).
// Fitting just stores the training data; all work happens at prediction time
// with a brute-force scan, which is the right trade-off at course-dataset
// scale.
type KNNClassifier struct {
	state *model.StateManager

	nNeighbors int
	weights    string
	p          float64

	xTrain  *mat.Dense
	yTrain  []int
	classes []int
}

// KNNOption configures a KNNClassifier.
type KNNOption func(*KNNClassifier)

// WithNNeighbors sets k, the number of neighbors consulted per query.
func WithNNeighbors(k int) KNNOption {
	return func(c *KNNClassifier) { c.nNeighbors = k }
}

// WithWeights sets the vote weighting scheme, WeightsUniform or
// WeightsDistance.
func WithWeights(weights string) KNNOption {
	return func(c *KNNClassifier) { c.weights = weights }
}

// WithMinkowskiP sets the Minkowski distance exponent. p=2 is Euclidean,
// p=1 is Manhattan.
func WithMinkowskiP(p float64) KNNOption {
	return func(c *KNNClassifier) { c.p = p }
}

// NewKNNClassifier creates a KNN classifier with k=5, uniform weights, and
// Euclidean distance unless overridden by options.
func NewKNNClassifier(opts ...KNNOption) *KNNClassifier {
	c := &KNNClassifier{
		state:      model.NewStateManager(),
		nNeighbors: 5,
		weights:    WeightsUniform,
		p:          2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fit stores the training data after validation. y must be an n x 1 matrix
// of integer class labels.
func (c *KNNClassifier) Fit(X, y mat.Matrix) error {
	r, cols := X.Dims()
	yr, yc := y.Dims()

	if r == 0 || cols == 0 {
		return errors.NewModelError("KNNClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	if yr != r {
		return errors.NewDimensionError("KNNClassifier.Fit", r, yr, 0)
	}
	if yc != 1 {
		return errors.NewValueError("KNNClassifier.Fit", "y must be a column vector")
	}
	if c.nNeighbors < 1 {
		return errors.NewValidationError("n_neighbors", "must be >= 1", c.nNeighbors)
	}
	if c.nNeighbors > r {
		return errors.NewValidationError("n_neighbors", "must not exceed the number of training samples", c.nNeighbors)
	}
	if c.weights != WeightsUniform && c.weights != WeightsDistance {
		return errors.NewValidationError("weights", "must be uniform or distance", c.weights)
	}
	if c.p < 1 {
		return errors.NewValidationError("p", "must be >= 1", c.p)
	}

	labels := make([]int, r)
	seen := map[int]bool{}
	for i := 0; i < r; i++ {
		v := y.At(i, 0)
		label := int(v)
		if float64(label) != v {
			return errors.NewValueError("KNNClassifier.Fit", "class labels must be integers")
		}
		labels[i] = label
		seen[label] = true
	}

	classes := make([]int, 0, len(seen))
	for label := range seen {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	c.xTrain = mat.DenseCopyOf(X)
	c.yTrain = labels
	c.classes = classes

	c.state.SetDimensions(cols, r)
	c.state.SetFitted()
	return nil
}

// Predict returns the majority-vote label for each row of X as an n x 1
// matrix.
func (c *KNNClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	proba, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}

	r, _ := proba.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		// Highest probability wins; ties go to the smaller class label
		// because classes are scanned in ascending order.
		bestClass := c.classes[0]
		bestP := proba.At(i, 0)
		for ci := 1; ci < len(c.classes); ci++ {
			if p := proba.At(i, ci); p > bestP {
				bestP = p
				bestClass = c.classes[ci]
			}
		}
		out.Set(i, 0, float64(bestClass))
	}
	return out, nil
}

// PredictProba returns the vote shares per class, one column per class in
// the order reported by Classes.
func (c *KNNClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !c.state.IsFitted() {
		return nil, errors.NewNotFittedError("KNNClassifier", "PredictProba")
	}

	r, cols := X.Dims()
	nFeatures, _ := c.state.GetDimensions()
	if cols != nFeatures {
		return nil, errors.NewDimensionError("KNNClassifier.PredictProba", nFeatures, cols, 1)
	}

	classIndex := make(map[int]int, len(c.classes))
	for i, cl := range c.classes {
		classIndex[cl] = i
	}

	out := mat.NewDense(r, len(c.classes), nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			votes := c.voteRow(X, i, classIndex)
			for ci, v := range votes {
				out.Set(i, ci, v)
			}
		}
	})
	return out, nil
}

// voteRow computes normalized vote shares for one query row.
func (c *KNNClassifier) voteRow(X mat.Matrix, row int, classIndex map[int]int) []float64 {
	nTrain, _ := c.xTrain.Dims()
	dists := make([]float64, nTrain)
	for t := 0; t < nTrain; t++ {
		dists[t] = c.minkowski(X, row, t)
	}

	neighbors := smallestK(dists, c.nNeighbors)

	votes := make([]float64, len(c.classes))
	if c.weights == WeightsDistance {
		// Exact matches dominate: only they vote when present.
		var exact []int
		for _, t := range neighbors {
			if dists[t] == 0 {
				exact = append(exact, t)
			}
		}
		if len(exact) > 0 {
			neighbors = exact
		}
		for _, t := range neighbors {
			w := 1.0
			if dists[t] > 0 {
				w = 1.0 / dists[t]
			}
			votes[classIndex[c.yTrain[t]]] += w
		}
	} else {
		for _, t := range neighbors {
			votes[classIndex[c.yTrain[t]]]++
		}
	}

	var total float64
	for _, v := range votes {
		total += v
	}
	for i := range votes {
		votes[i] /= total
	}
	return votes
}

// minkowski computes the distance between query row qi of X and training
// row ti.
func (c *KNNClassifier) minkowski(X mat.Matrix, qi, ti int) float64 {
	_, nFeatures := c.xTrain.Dims()
	if c.p == 2 {
		var ss float64
		for j := 0; j < nFeatures; j++ {
			d := X.At(qi, j) - c.xTrain.At(ti, j)
			ss += d * d
		}
		return math.Sqrt(ss)
	}
	var sum float64
	for j := 0; j < nFeatures; j++ {
		sum += math.Pow(math.Abs(X.At(qi, j)-c.xTrain.At(ti, j)), c.p)
	}
	return math.Pow(sum, 1/c.p)
}

// smallestK returns the indices of the k smallest distances. Ties at the
// cutoff resolve to the lower training index, matching a stable scan order.
func smallestK(dists []float64, k int) []int {
	idx := make([]int, len(dists))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return dists[idx[a]] < dists[idx[b]] })
	return idx[:k]
}

// Score returns the accuracy of the classifier on X against y.
func (c *KNNClassifier) Score(X, y mat.Matrix) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(y, pred)
}

// Classes returns the class labels seen during fitting, ascending.
func (c *KNNClassifier) Classes() []int {
	out := make([]int, len(c.classes))
	copy(out, c.classes)
	return out
}

// GetParams returns the classifier's hyperparameters.
func (c *KNNClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_neighbors": c.nNeighbors,
		"weights":     c.weights,
		"p":           c.p,
	}
}
