package stats

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/pkg/errors"
	"github.com/gostatlab/statkit/preprocessing"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %g, want %g (tol %g)", name, got, want, tol)
	}
}

// Textbook simple regression: x = 1..5, y = (2,4,5,4,5). The closed-form
// answers are slope 0.6, intercept 2.2, R^2 0.6, RSS 2.4 on 3 df.
func TestOLSSimpleRegressionInference(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{2, 4, 5, 4, 5})

	ols := NewOLS(WithFeatureNames([]string{"x"}))
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	coefs, err := ols.Coefficients()
	if err != nil {
		t.Fatalf("Coefficients() error: %v", err)
	}
	if len(coefs) != 2 {
		t.Fatalf("got %d coefficients, want 2", len(coefs))
	}

	intercept, slope := coefs[0], coefs[1]
	if intercept.Name != "(Intercept)" || slope.Name != "x" {
		t.Fatalf("unexpected coefficient names: %s, %s", intercept.Name, slope.Name)
	}

	approx(t, "intercept", intercept.Estimate, 2.2, 1e-9)
	approx(t, "slope", slope.Estimate, 0.6, 1e-9)

	// se(slope) = sqrt(sigma^2 / Sxx) = sqrt(0.8/10).
	approx(t, "slope std err", slope.StdErr, math.Sqrt(0.08), 1e-9)
	approx(t, "intercept std err", intercept.StdErr, math.Sqrt(0.88), 1e-9)

	approx(t, "slope t", slope.TStat, 0.6/math.Sqrt(0.08), 1e-9)
	// Two-sided p for t=2.1213 on 3 df.
	approx(t, "slope p", slope.PValue, 0.1238, 2e-3)

	// 95% interval: 0.6 +/- t(0.975,3) * se = 0.6 +/- 0.9.
	approx(t, "slope conf low", slope.ConfLow, -0.3, 2e-3)
	approx(t, "slope conf high", slope.ConfHigh, 1.5, 2e-3)

	approx(t, "R2", ols.RSquared(), 0.6, 1e-9)
	approx(t, "adj R2", ols.AdjRSquared(), 1-0.4*4.0/3.0, 1e-9)
	approx(t, "residual std err", ols.ResidualStdErr(), math.Sqrt(0.8), 1e-9)

	f, fp := ols.FStatistic()
	approx(t, "F", f, 4.5, 1e-9)
	// With one predictor the F test equals the slope's t test.
	approx(t, "F p-value", fp, slope.PValue, 1e-9)
}

func TestOLSMultivariableExactRecovery(t *testing.T) {
	// y = 1 + 2a - 3b with no noise: estimates are exact, residuals zero.
	X := mat.NewDense(6, 2, []float64{
		1, 0,
		0, 1,
		2, 1,
		3, 2,
		1, 4,
		5, 2,
	})
	y := mat.NewDense(6, 1, nil)
	for i := 0; i < 6; i++ {
		y.Set(i, 0, 1+2*X.At(i, 0)-3*X.At(i, 1))
	}

	ols := NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	coefs, err := ols.Coefficients()
	if err != nil {
		t.Fatalf("Coefficients() error: %v", err)
	}
	approx(t, "intercept", coefs[0].Estimate, 1, 1e-8)
	approx(t, "beta a", coefs[1].Estimate, 2, 1e-8)
	approx(t, "beta b", coefs[2].Estimate, -3, 1e-8)
	approx(t, "R2", ols.RSquared(), 1, 1e-12)

	// Default names for unlabeled predictors.
	if coefs[1].Name != "x1" || coefs[2].Name != "x2" {
		t.Errorf("default names = %s, %s; want x1, x2", coefs[1].Name, coefs[2].Name)
	}

	pred, err := ols.Predict(mat.NewDense(1, 2, []float64{10, 1}))
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	approx(t, "prediction", pred.At(0, 0), 1+20-3, 1e-8)
}

func TestOLSWithoutIntercept(t *testing.T) {
	// y = 4x through the origin.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{4, 8, 12, 16})

	ols := NewOLS(WithIntercept(false))
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	coefs, err := ols.Coefficients()
	if err != nil {
		t.Fatalf("Coefficients() error: %v", err)
	}
	if len(coefs) != 1 {
		t.Fatalf("got %d coefficients, want 1", len(coefs))
	}
	approx(t, "slope", coefs[0].Estimate, 4, 1e-9)
}

func TestOLSOneHotPredictors(t *testing.T) {
	// Group means differ by a known offset; the indicator coefficient must
	// recover the difference against the reference group exactly.
	groups := []string{"a", "a", "a", "b", "b", "b"}
	enc := preprocessing.NewOneHotEncoder(true)
	indicators, err := enc.FitTransform(groups)
	if err != nil {
		t.Fatalf("FitTransform() error: %v", err)
	}

	y := mat.NewDense(6, 1, []float64{10, 11, 12, 25, 26, 27})

	ols := NewOLS(WithFeatureNames(enc.FeatureNames("group")))
	if err := ols.Fit(indicators, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	coefs, err := ols.Coefficients()
	if err != nil {
		t.Fatalf("Coefficients() error: %v", err)
	}
	approx(t, "reference mean", coefs[0].Estimate, 11, 1e-8)
	approx(t, "group offset", coefs[1].Estimate, 15, 1e-8)
	if coefs[1].Name != "group[b]" {
		t.Errorf("coefficient name = %s, want group[b]", coefs[1].Name)
	}
	if coefs[1].PValue > 1e-6 {
		t.Errorf("clear group difference should have a tiny p-value, got %g", coefs[1].PValue)
	}
}

func TestOLSSingularDesign(t *testing.T) {
	// Second column duplicates the first: rank deficient.
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	y := mat.NewDense(4, 1, []float64{1, 2, 3, 4})

	ols := NewOLS()
	err := ols.Fit(X, y)
	if err == nil {
		t.Fatal("expected an error for a singular design matrix")
	}
	if !errors.Is(err, errors.ErrSingularMatrix) {
		t.Errorf("expected ErrSingularMatrix, got %v", err)
	}
}

func TestOLSValidation(t *testing.T) {
	t.Run("too few samples", func(t *testing.T) {
		X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
		y := mat.NewDense(2, 1, []float64{1, 2})
		if err := NewOLS().Fit(X, y); err == nil {
			t.Error("n <= p should fail: no residual degrees of freedom")
		}
	})

	t.Run("bad confidence level", func(t *testing.T) {
		X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
		y := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
		if err := NewOLS(WithConfidenceLevel(1.5)).Fit(X, y); err == nil {
			t.Error("confidence level outside (0,1) should fail")
		}
	})

	t.Run("not fitted", func(t *testing.T) {
		ols := NewOLS()
		if _, err := ols.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
			t.Error("Predict before Fit should fail")
		}
		if _, err := ols.Summary(); err == nil {
			t.Error("Summary before Fit should fail")
		}
		if _, err := ols.Coefficients(); err == nil {
			t.Error("Coefficients before Fit should fail")
		}
	})

	t.Run("name count mismatch", func(t *testing.T) {
		X := mat.NewDense(5, 2, []float64{1, 1, 2, 4, 3, 9, 4, 16, 5, 25})
		y := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
		if err := NewOLS(WithFeatureNames([]string{"only_one"})).Fit(X, y); err == nil {
			t.Error("wrong feature-name count should fail")
		}
	})
}

func TestOLSResidualsAndFittedValues(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{2, 4, 5, 4, 5})

	ols := NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	res, err := ols.Residuals()
	if err != nil {
		t.Fatalf("Residuals() error: %v", err)
	}
	fitted, err := ols.FittedValues()
	if err != nil {
		t.Fatalf("FittedValues() error: %v", err)
	}

	// Residuals sum to zero with an intercept; fitted + residual = y.
	var sum float64
	for i := 0; i < res.Len(); i++ {
		sum += res.AtVec(i)
		approx(t, "fitted+residual", fitted.AtVec(i)+res.AtVec(i), y.At(i, 0), 1e-9)
	}
	approx(t, "residual sum", sum, 0, 1e-9)
}

func TestOLSSummary(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{2, 4, 5, 4, 5})

	ols := NewOLS(WithFeatureNames([]string{"area_sqm"}))
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	summary, err := ols.Summary()
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}

	for _, want := range []string{
		"OLS Regression Results",
		"R-squared: 0.6000",
		"(Intercept)",
		"area_sqm",
		"F-statistic",
		"Pr(>|t|)",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestOLSScore(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})
	y := mat.NewDense(6, 1, nil)
	for i := 0; i < 6; i++ {
		y.Set(i, 0, 3*X.At(i, 0)-1)
	}

	ols := NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	score, err := ols.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	approx(t, "score", score, 1, 1e-12)
}
