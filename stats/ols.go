// Package stats provides linear-model estimation with statistical inference.
//
// Unlike a purely predictive regression, OLS here reports the full inference
// table: standard errors, t-statistics, p-values, confidence intervals, and
// the model-level F-test, the quantities a statsmodels or R summary prints.
package stats

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gostatlab/statkit/core/model"
	"github.com/gostatlab/statkit/metrics"
	"github.com/gostatlab/statkit/pkg/errors"
)

// Coefficient is one row of the inference table.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	TStat    float64
	PValue   float64 // two-sided, Student's t with residual df
	ConfLow  float64
	ConfHigh float64
}

// OLS estimates a linear model by ordinary least squares and carries the
// inference statistics computed at fit time. The design matrix is factorized
// with QR; coefficient covariance is sigma^2 (X'X)^-1 with sigma^2 the
// residual variance on n-p degrees of freedom.
type OLS struct {
	state *model.StateManager

	fitIntercept bool
	confLevel    float64
	featureNames []string

	coefs []Coefficient

	r2          float64
	adjR2       float64
	fStat       float64
	fPValue     float64
	residStdErr float64
	dfResid     int
	dfModel     int
	nSamples    int

	residuals *mat.VecDense
	fitted    *mat.VecDense
}

// OLSOption configures an OLS model.
type OLSOption func(*OLS)

// WithIntercept controls whether an intercept column is added to the design
// matrix. Default true.
func WithIntercept(fit bool) OLSOption {
	return func(o *OLS) { o.fitIntercept = fit }
}

// WithConfidenceLevel sets the confidence level for coefficient intervals.
// Default 0.95.
func WithConfidenceLevel(level float64) OLSOption {
	return func(o *OLS) { o.confLevel = level }
}

// WithFeatureNames labels the predictor columns in the inference table.
// Without names, columns are labeled x1, x2, ...
func WithFeatureNames(names []string) OLSOption {
	return func(o *OLS) { o.featureNames = append([]string(nil), names...) }
}

// NewOLS creates an OLS model with an intercept and 95% intervals unless
// overridden by options.
func NewOLS(opts ...OLSOption) *OLS {
	o := &OLS{
		state:        model.NewStateManager(),
		fitIntercept: true,
		confLevel:    0.95,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Fit estimates the model on X, y and computes the inference table.
func (o *OLS) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	yr, yc := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("OLS.Fit", "empty data", errors.ErrEmptyData)
	}
	if yr != r {
		return errors.NewDimensionError("OLS.Fit", r, yr, 0)
	}
	if yc != 1 {
		return errors.NewValueError("OLS.Fit", "y must be a column vector")
	}
	if o.confLevel <= 0 || o.confLevel >= 1 {
		return errors.NewValidationError("confidence_level", "must be in (0, 1)", o.confLevel)
	}
	if o.featureNames != nil && len(o.featureNames) != c {
		return errors.NewDimensionError("OLS.Fit", c, len(o.featureNames), 1)
	}

	p := c
	if o.fitIntercept {
		p++
	}
	dfResid := r - p
	if dfResid < 1 {
		return errors.NewValueError("OLS.Fit",
			fmt.Sprintf("need more samples than parameters for inference: n=%d, p=%d", r, p))
	}

	design := o.designMatrix(X)

	// Solve the least-squares problem through QR for numerical stability.
	var qr mat.QR
	qr.Factorize(design)

	yDense := mat.DenseCopyOf(y)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, yDense); err != nil {
		return errors.NewModelError("OLS.Fit", "singular design matrix", errors.ErrSingularMatrix)
	}

	// Residuals and fit diagnostics.
	fitted := mat.NewVecDense(r, nil)
	residuals := mat.NewVecDense(r, nil)
	var rss, tss, yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)
	for i := 0; i < r; i++ {
		var yHat float64
		for j := 0; j < p; j++ {
			yHat += design.At(i, j) * beta.At(j, 0)
		}
		fitted.SetVec(i, yHat)
		res := y.At(i, 0) - yHat
		residuals.SetVec(i, res)
		rss += res * res
		tss += (y.At(i, 0) - yMean) * (y.At(i, 0) - yMean)
	}

	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("r2", "constant target", 0.0))
	}

	sigma2 := rss / float64(dfResid)

	// Coefficient covariance: sigma^2 (X'X)^-1. A failed inversion means the
	// design matrix is rank deficient.
	var xtx mat.Dense
	xtx.Mul(design.T(), design)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return errors.NewModelError("OLS.Fit", "singular design matrix", errors.ErrSingularMatrix)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResid)}
	tCrit := tDist.Quantile(1 - (1-o.confLevel)/2)

	coefs := make([]Coefficient, p)
	for j := 0; j < p; j++ {
		est := beta.At(j, 0)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))

		var tStat, pValue float64
		if se > 0 {
			tStat = est / se
			pValue = 2 * tDist.CDF(-math.Abs(tStat))
		}

		coefs[j] = Coefficient{
			Name:     o.coefName(j),
			Estimate: est,
			StdErr:   se,
			TStat:    tStat,
			PValue:   pValue,
			ConfLow:  est - tCrit*se,
			ConfHigh: est + tCrit*se,
		}
	}

	// Model-level statistics.
	o.r2 = 0
	if tss > 0 {
		o.r2 = 1 - rss/tss
	}
	dfModel := p - 1
	if !o.fitIntercept {
		dfModel = p
	}
	o.adjR2 = 1 - (1-o.r2)*float64(r-1)/float64(dfResid)
	o.fStat = 0
	o.fPValue = math.NaN()
	if dfModel > 0 && rss > 0 && tss > rss {
		o.fStat = ((tss - rss) / float64(dfModel)) / sigma2
		fDist := distuv.F{D1: float64(dfModel), D2: float64(dfResid)}
		o.fPValue = 1 - fDist.CDF(o.fStat)
	}

	o.coefs = coefs
	o.residStdErr = math.Sqrt(sigma2)
	o.dfResid = dfResid
	o.dfModel = dfModel
	o.nSamples = r
	o.residuals = residuals
	o.fitted = fitted

	o.state.SetDimensions(c, r)
	o.state.SetFitted()
	return nil
}

// designMatrix prepends the intercept column when enabled.
func (o *OLS) designMatrix(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	if !o.fitIntercept {
		return mat.DenseCopyOf(X)
	}
	design := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		design.Set(i, 0, 1)
		for j := 0; j < c; j++ {
			design.Set(i, j+1, X.At(i, j))
		}
	}
	return design
}

func (o *OLS) coefName(j int) string {
	if o.fitIntercept {
		if j == 0 {
			return "(Intercept)"
		}
		j--
	}
	if o.featureNames != nil {
		return o.featureNames[j]
	}
	return fmt.Sprintf("x%d", j+1)
}

// Predict returns fitted values for X as an n x 1 matrix.
func (o *OLS) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !o.state.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Predict")
	}

	r, c := X.Dims()
	nFeatures, _ := o.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("OLS.Predict", nFeatures, c, 1)
	}

	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		var yHat float64
		for j, coef := range o.coefs {
			if o.fitIntercept && j == 0 {
				yHat += coef.Estimate
				continue
			}
			col := j
			if o.fitIntercept {
				col--
			}
			yHat += coef.Estimate * X.At(i, col)
		}
		out.Set(i, 0, yHat)
	}
	return out, nil
}

// Score returns R^2 of the prediction on X against y.
func (o *OLS) Score(X, y mat.Matrix) (float64, error) {
	pred, err := o.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2(y, pred)
}

// Coefficients returns the inference table.
func (o *OLS) Coefficients() ([]Coefficient, error) {
	if !o.state.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Coefficients")
	}
	out := make([]Coefficient, len(o.coefs))
	copy(out, o.coefs)
	return out, nil
}

// RSquared returns the coefficient of determination of the fit.
func (o *OLS) RSquared() float64 { return o.r2 }

// AdjRSquared returns R^2 adjusted for the number of predictors.
func (o *OLS) AdjRSquared() float64 { return o.adjR2 }

// FStatistic returns the overall F-test statistic and its p-value.
func (o *OLS) FStatistic() (stat, pValue float64) { return o.fStat, o.fPValue }

// ResidualStdErr returns the residual standard error on n-p degrees of
// freedom.
func (o *OLS) ResidualStdErr() float64 { return o.residStdErr }

// Residuals returns the training residuals for diagnostic plots.
func (o *OLS) Residuals() (*mat.VecDense, error) {
	if !o.state.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Residuals")
	}
	return mat.VecDenseCopyOf(o.residuals), nil
}

// FittedValues returns the in-sample predictions.
func (o *OLS) FittedValues() (*mat.VecDense, error) {
	if !o.state.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "FittedValues")
	}
	return mat.VecDenseCopyOf(o.fitted), nil
}

// Summary renders the inference table in the style of an R or statsmodels
// regression summary.
func (o *OLS) Summary() (string, error) {
	if !o.state.IsFitted() {
		return "", errors.NewNotFittedError("OLS", "Summary")
	}

	var b strings.Builder
	b.WriteString("OLS Regression Results\n")
	b.WriteString("======================\n")
	fmt.Fprintf(&b, "n = %d, residual df = %d\n", o.nSamples, o.dfResid)
	fmt.Fprintf(&b, "R-squared: %.4f   Adj. R-squared: %.4f\n", o.r2, o.adjR2)
	if o.dfModel > 0 && !math.IsNaN(o.fPValue) {
		fmt.Fprintf(&b, "F-statistic: %.4g on %d and %d DF, p-value: %.4g\n",
			o.fStat, o.dfModel, o.dfResid, o.fPValue)
	}
	fmt.Fprintf(&b, "Residual std. error: %.4g\n\n", o.residStdErr)

	lo := (1 - o.confLevel) / 2
	fmt.Fprintf(&b, "%-22s %12s %10s %9s %10s %11s %11s\n",
		"", "Estimate", "Std.Err", "t", "Pr(>|t|)",
		fmt.Sprintf("[%.3f", lo), fmt.Sprintf("%.3f]", 1-lo))
	for _, coef := range o.coefs {
		fmt.Fprintf(&b, "%-22s %12.4f %10.4f %9.3f %10.3g %11.4f %11.4f\n",
			coef.Name, coef.Estimate, coef.StdErr, coef.TStat, coef.PValue,
			coef.ConfLow, coef.ConfHigh)
	}
	return b.String(), nil
}
