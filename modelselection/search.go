package modelselection

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/core/model"
	"github.com/gostatlab/statkit/pkg/errors"
	"github.com/gostatlab/statkit/pkg/log"
)

// Estimator is what grid search needs from a candidate model: it can be
// fitted and can score itself on held-out data.
type Estimator interface {
	model.Fitter
	model.Scorer
}

// GridPoint records the cross-validation outcome for one grid value.
type GridPoint struct {
	Param      int
	FoldScores []float64
	MeanScore  float64
	StdScore   float64
}

// GridSearchCV exhaustively evaluates an integer hyperparameter grid with
// k-fold cross-validation and refits the winning candidate on the full
// training data. The winner is the grid point with the highest mean
// validation score; on ties the smaller parameter value wins (the grid is
// evaluated in the order given, so pass it ascending).
type GridSearchCV struct {
	state *model.StateManager

	// ParamName is the hyperparameter being searched, for reporting.
	ParamName string
	// Grid holds the candidate values.
	Grid []int
	// Factory builds a fresh, unfitted candidate for a grid value.
	Factory func(param int) Estimator
	// Splitter generates the cross-validation folds.
	Splitter Splitter

	results   []GridPoint
	bestIndex int
	best      Estimator
}

// NewGridSearchCV creates a grid search over grid using factory-built
// candidates and the given fold splitter.
func NewGridSearchCV(paramName string, grid []int, factory func(param int) Estimator, splitter Splitter) *GridSearchCV {
	return &GridSearchCV{
		state:     model.NewStateManager(),
		ParamName: paramName,
		Grid:      grid,
		Factory:   factory,
		Splitter:  splitter,
	}
}

// IntRange returns the inclusive integer range [lo, hi] for use as a grid.
func IntRange(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}

// Fit runs the search on X, y and refits the best candidate on all of it.
// Folds of a grid point are evaluated concurrently.
func (gs *GridSearchCV) Fit(X, y mat.Matrix) error {
	if len(gs.Grid) == 0 {
		return errors.NewValidationError("grid", "must not be empty", gs.Grid)
	}
	if gs.Factory == nil {
		return errors.NewValidationError("factory", "must not be nil", nil)
	}
	if gs.Splitter == nil {
		return errors.NewValidationError("splitter", "must not be nil", nil)
	}

	started := time.Now()
	folds := gs.Splitter.Split(X, y)

	gs.results = make([]GridPoint, len(gs.Grid))
	for gi, param := range gs.Grid {
		scores, err := scoreFolds(X, y, folds, func() Estimator { return gs.Factory(param) })
		if err != nil {
			return errors.Wrapf(err, "grid search: %s=%d", gs.ParamName, param)
		}
		gs.results[gi] = GridPoint{
			Param:      param,
			FoldScores: scores,
			MeanScore:  mean(scores),
			StdScore:   std(scores),
		}
	}

	gs.bestIndex = 0
	for i := 1; i < len(gs.results); i++ {
		if gs.results[i].MeanScore > gs.results[gs.bestIndex].MeanScore {
			gs.bestIndex = i
		}
	}

	winner := gs.results[gs.bestIndex]

	// Refit on the full training partition with the selected value.
	gs.best = gs.Factory(winner.Param)
	if err := gs.best.Fit(X, y); err != nil {
		return errors.Wrap(err, "grid search: refit")
	}

	nSamples, nFeatures := dims(X)
	gs.state.SetDimensions(nFeatures, nSamples)
	gs.state.SetFitted()

	slog.Info("grid search finished",
		log.ComponentKey, "modelselection",
		log.OperationKey, "grid_search",
		log.ParamKey, gs.ParamName,
		log.FoldsKey, gs.Splitter.NumSplits(),
		log.BestParamKey, winner.Param,
		log.BestScoreKey, winner.MeanScore,
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)
	return nil
}

// BestParam returns the selected grid value.
func (gs *GridSearchCV) BestParam() (int, error) {
	if !gs.state.IsFitted() {
		return 0, errors.NewNotFittedError("GridSearchCV", "BestParam")
	}
	return gs.results[gs.bestIndex].Param, nil
}

// BestScore returns the best mean validation score.
func (gs *GridSearchCV) BestScore() (float64, error) {
	if !gs.state.IsFitted() {
		return 0, errors.NewNotFittedError("GridSearchCV", "BestScore")
	}
	return gs.results[gs.bestIndex].MeanScore, nil
}

// BestEstimator returns the candidate refitted on the full training data.
func (gs *GridSearchCV) BestEstimator() (Estimator, error) {
	if !gs.state.IsFitted() {
		return nil, errors.NewNotFittedError("GridSearchCV", "BestEstimator")
	}
	return gs.best, nil
}

// Results returns the per-grid-point cross-validation scores.
func (gs *GridSearchCV) Results() ([]GridPoint, error) {
	if !gs.state.IsFitted() {
		return nil, errors.NewNotFittedError("GridSearchCV", "Results")
	}
	out := make([]GridPoint, len(gs.results))
	copy(out, gs.results)
	return out, nil
}

// CrossValScore evaluates one estimator configuration across the splitter's
// folds and returns the per-fold scores.
func CrossValScore(factory func() Estimator, X, y mat.Matrix, splitter Splitter) ([]float64, error) {
	if factory == nil {
		return nil, errors.NewValidationError("factory", "must not be nil", nil)
	}
	if splitter == nil {
		return nil, errors.NewValidationError("splitter", "must not be nil", nil)
	}
	folds := splitter.Split(X, y)
	return scoreFolds(X, y, folds, factory)
}

// scoreFolds fits a fresh estimator per fold and scores it on the fold's
// held-out indices. Folds run concurrently.
func scoreFolds(X, y mat.Matrix, folds []Fold, factory func() Estimator) ([]float64, error) {
	scores := make([]float64, len(folds))
	errs := make([]error, len(folds))

	var wg sync.WaitGroup
	for fi := range folds {
		wg.Add(1)
		go func(fi int) {
			defer wg.Done()
			fold := folds[fi]

			est := factory()
			if err := est.Fit(takeRows(X, fold.TrainIndices), takeRows(y, fold.TrainIndices)); err != nil {
				errs[fi] = errors.Wrapf(err, "fold %d: fit", fi)
				return
			}
			score, err := est.Score(takeRows(X, fold.TestIndices), takeRows(y, fold.TestIndices))
			if err != nil {
				errs[fi] = errors.Wrapf(err, "fold %d: score", fi)
				return
			}
			scores[fi] = score
		}(fi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// std is the sample standard deviation of the fold scores.
func std(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func dims(X mat.Matrix) (nSamples, nFeatures int) {
	nSamples, nFeatures = X.Dims()
	return nSamples, nFeatures
}
