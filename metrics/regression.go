package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/pkg/errors"
)

// MSE returns the mean squared error.
func MSE(yTrue, yPred mat.Matrix) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		d := yTrue.At(i, 0) - yPred.At(i, 0)
		sum += d * d
	}
	return sum / float64(n), nil
}

// RMSE returns the root mean squared error.
func RMSE(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE returns the mean absolute error.
func MAE(yTrue, yPred mat.Matrix) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.At(i, 0) - yPred.At(i, 0))
	}
	return sum / float64(n), nil
}

// R2 returns the coefficient of determination, 1 - RSS/TSS. For a constant
// target the score is undefined; a warning is raised and 0 is returned.
func R2(yTrue, yPred mat.Matrix) (float64, error) {
	n, err := checkPair("R2", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var mean float64
	for i := 0; i < n; i++ {
		mean += yTrue.At(i, 0)
	}
	mean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yt := yTrue.At(i, 0)
		tss += (yt - mean) * (yt - mean)
		d := yt - yPred.At(i, 0)
		rss += d * d
	}

	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("r2", "constant target", 0.0))
		return 0, nil
	}
	return 1 - rss/tss, nil
}
