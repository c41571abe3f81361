// Package preprocessing provides feature scaling and categorical encoding.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/core/model"
	"github.com/gostatlab/statkit/pkg/errors"
)

// nearZero guards divisions when a feature column is constant.
const nearZero = 1e-8

// StandardScaler standardizes features to zero mean and unit variance.
// Statistics come exclusively from the data passed to Fit, so scaling a test
// partition with a scaler fitted on the training partition never leaks
// held-out information. The standard deviation is the population one (ddof=0),
// matching scikit-learn.
type StandardScaler struct {
	state *model.StateManager

	// Mean and Scale hold the per-column statistics after Fit.
	Mean  []float64
	Scale []float64

	// WithMean and WithStd control which half of the transform applies.
	WithMean bool
	WithStd  bool
}

// NewStandardScaler creates a StandardScaler. Both centering and scaling are
// usually wanted; pass false to disable either half.
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault creates a StandardScaler with centering and
// scaling both enabled.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit computes per-column mean and population standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)

		mean := 0.0
		if s.WithMean {
			for _, v := range col {
				mean += v
			}
			mean /= float64(r)
		}
		s.Mean[j] = mean

		scale := 1.0
		if s.WithStd {
			var ss float64
			for _, v := range col {
				d := v - mean
				ss += d * d
			}
			scale = math.Sqrt(ss / float64(r))
			if scale < nearZero {
				// Constant column: leave it unscaled rather than divide by zero.
				scale = 1.0
			}
		}
		s.Scale[j] = scale
	}

	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform standardizes X using the statistics learned by Fit.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.state.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	nFeatures, _ := s.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return result, nil
}

// FitTransform fits on X and returns the standardized X.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.state.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	nFeatures, _ := s.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return result, nil
}

// GetParams returns the scaler's hyperparameters.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// String returns a short description of the scaler.
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	nFeatures, _ := s.state.GetDimensions()
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, nFeatures)
}

// MinMaxScaler rescales features to a fixed range, [0, 1] by default.
// Kept alongside StandardScaler so pipelines can contrast the two.
type MinMaxScaler struct {
	state *model.StateManager

	// DataMin and DataRange hold the per-column statistics after Fit.
	DataMin   []float64
	DataRange []float64

	// FeatureRange is the target interval [min, max].
	FeatureRange [2]float64
}

// NewMinMaxScaler creates a MinMaxScaler targeting featureRange.
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		state:        model.NewStateManager(),
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault creates a MinMaxScaler targeting [0, 1].
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit computes per-column minimum and range from X.
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if m.FeatureRange[1] <= m.FeatureRange[0] {
		return errors.NewValidationError("feature_range", "max must be greater than min", m.FeatureRange)
	}

	m.DataMin = make([]float64, c)
	m.DataRange = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		lo, hi := col[0], col[0]
		for _, v := range col[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		m.DataMin[j] = lo
		rangeJ := hi - lo
		if rangeJ < nearZero {
			rangeJ = 1.0
		}
		m.DataRange[j] = rangeJ
	}

	m.state.SetDimensions(c, r)
	m.state.SetFitted()
	return nil
}

// Transform rescales X into the target range using the statistics from Fit.
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !m.state.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}

	r, c := X.Dims()
	nFeatures, _ := m.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", nFeatures, c, 1)
	}

	span := m.FeatureRange[1] - m.FeatureRange[0]
	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			std := (X.At(i, j) - m.DataMin[j]) / m.DataRange[j]
			result.Set(i, j, std*span+m.FeatureRange[0])
		}
	}
	return result, nil
}

// FitTransform fits on X and returns the rescaled X.
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform maps rescaled data back to the original range.
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !m.state.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}

	r, c := X.Dims()
	nFeatures, _ := m.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.InverseTransform", nFeatures, c, 1)
	}

	span := m.FeatureRange[1] - m.FeatureRange[0]
	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			std := (X.At(i, j) - m.FeatureRange[0]) / span
			result.Set(i, j, std*m.DataRange[j]+m.DataMin[j])
		}
	}
	return result, nil
}

// GetParams returns the scaler's hyperparameters.
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": m.FeatureRange,
	}
}
