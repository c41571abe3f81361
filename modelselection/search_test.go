package modelselection

import (
	"math"
	"sync/atomic"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// stubEstimator scores deterministically from its parameter, peaking at 7.
type stubEstimator struct {
	param    int
	fitCalls *int64
	fitted   bool
}

func (s *stubEstimator) Fit(X, y mat.Matrix) error {
	if s.fitCalls != nil {
		atomic.AddInt64(s.fitCalls, 1)
	}
	s.fitted = true
	return nil
}

func (s *stubEstimator) Score(X, y mat.Matrix) (float64, error) {
	return 1 - math.Abs(float64(s.param)-7)/10, nil
}

func TestGridSearchCVSelectsBestParam(t *testing.T) {
	X, y := sequentialData(30)

	var fits int64
	gs := NewGridSearchCV("n_neighbors", IntRange(1, 15), func(param int) Estimator {
		return &stubEstimator{param: param, fitCalls: &fits}
	}, NewKFold(5, true, 42))

	if err := gs.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	bestParam, err := gs.BestParam()
	if err != nil {
		t.Fatalf("BestParam() error: %v", err)
	}
	if bestParam != 7 {
		t.Errorf("BestParam() = %d, want 7", bestParam)
	}
	bestScore, err := gs.BestScore()
	if err != nil {
		t.Fatalf("BestScore() error: %v", err)
	}
	if math.Abs(bestScore-1.0) > 1e-12 {
		t.Errorf("BestScore() = %g, want 1.0", bestScore)
	}

	// 15 grid points x 5 folds, plus the final refit.
	if fits != 15*5+1 {
		t.Errorf("fit calls = %d, want %d", fits, 15*5+1)
	}

	best, err := gs.BestEstimator()
	if err != nil {
		t.Fatalf("BestEstimator() error: %v", err)
	}
	if !best.(*stubEstimator).fitted {
		t.Error("best estimator should be refitted on the full data")
	}

	results, err := gs.Results()
	if err != nil {
		t.Fatalf("Results() error: %v", err)
	}
	if len(results) != 15 {
		t.Fatalf("Results() length = %d, want 15", len(results))
	}
	for _, r := range results {
		if len(r.FoldScores) != 5 {
			t.Errorf("param %d has %d fold scores, want 5", r.Param, len(r.FoldScores))
		}
	}
}

// flatEstimator scores the same for every parameter.
type flatEstimator struct{}

func (flatEstimator) Fit(X, y mat.Matrix) error              { return nil }
func (flatEstimator) Score(X, y mat.Matrix) (float64, error) { return 0.5, nil }

func TestGridSearchCVTieBreaksToSmallerParam(t *testing.T) {
	X, y := sequentialData(20)

	gs := NewGridSearchCV("n_neighbors", IntRange(3, 9), func(int) Estimator {
		return flatEstimator{}
	}, NewKFold(4, false, 0))

	if err := gs.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	bestParam, err := gs.BestParam()
	if err != nil {
		t.Fatalf("BestParam() error: %v", err)
	}
	if bestParam != 3 {
		t.Errorf("tied scores should select the smallest grid value, got %d", bestParam)
	}
}

func TestGridSearchCVValidation(t *testing.T) {
	X, y := sequentialData(10)

	gs := NewGridSearchCV("k", nil, func(int) Estimator { return flatEstimator{} }, NewKFold(2, false, 0))
	if err := gs.Fit(X, y); err == nil {
		t.Error("empty grid should fail")
	}

	gs = NewGridSearchCV("k", IntRange(1, 3), nil, NewKFold(2, false, 0))
	if err := gs.Fit(X, y); err == nil {
		t.Error("nil factory should fail")
	}

	gs = NewGridSearchCV("k", IntRange(1, 3), func(int) Estimator { return flatEstimator{} }, NewKFold(2, false, 0))
	if _, err := gs.BestEstimator(); err == nil {
		t.Error("BestEstimator before Fit should fail")
	}
	if _, err := gs.BestParam(); err == nil {
		t.Error("BestParam before Fit should fail")
	}
	if _, err := gs.BestScore(); err == nil {
		t.Error("BestScore before Fit should fail")
	}
}

func TestIntRange(t *testing.T) {
	got := IntRange(1, 4)
	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("IntRange(1,4) = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IntRange(1,4) = %v, want %v", got, want)
		}
	}

	if IntRange(5, 4) != nil {
		t.Error("inverted range should be nil")
	}
}

func TestCrossValScore(t *testing.T) {
	X, y := sequentialData(25)

	scores, err := CrossValScore(func() Estimator {
		return &stubEstimator{param: 7}
	}, X, y, NewKFold(5, true, 1))
	if err != nil {
		t.Fatalf("CrossValScore() error: %v", err)
	}

	if len(scores) != 5 {
		t.Fatalf("got %d scores, want 5", len(scores))
	}
	for _, s := range scores {
		if math.Abs(s-1.0) > 1e-12 {
			t.Errorf("score = %g, want 1.0", s)
		}
	}

	if _, err := CrossValScore(func() Estimator { return &stubEstimator{param: 7} }, X, y, nil); err == nil {
		t.Error("nil splitter should fail")
	}
}
