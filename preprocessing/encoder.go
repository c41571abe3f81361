package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/core/model"
	"github.com/gostatlab/statkit/pkg/errors"
)

// OneHotEncoder turns a categorical string column into indicator columns,
// one per category in sorted order. With DropFirst set, the first (reference)
// category gets no column, which keeps a regression design matrix full rank
// when an intercept is present.
type OneHotEncoder struct {
	state *model.StateManager

	// DropFirst drops the reference category's indicator column.
	DropFirst bool

	categories []string
	index      map[string]int
}

// NewOneHotEncoder creates a OneHotEncoder. dropFirst should be true when the
// encoded columns feed a regression with an intercept term.
func NewOneHotEncoder(dropFirst bool) *OneHotEncoder {
	return &OneHotEncoder{
		state:     model.NewStateManager(),
		DropFirst: dropFirst,
	}
}

// Fit learns the category set from values. Category order is sorted, so the
// encoding is deterministic regardless of input order.
func (e *OneHotEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	seen := map[string]bool{}
	for _, v := range values {
		seen[v] = true
	}
	cats := make([]string, 0, len(seen))
	for v := range seen {
		cats = append(cats, v)
	}
	sort.Strings(cats)

	if e.DropFirst && len(cats) < 2 {
		return errors.NewValidationError("values", "drop_first requires at least two categories", len(cats))
	}

	e.categories = cats
	e.index = make(map[string]int, len(cats))
	for i, c := range cats {
		e.index[c] = i
	}

	e.state.SetDimensions(e.NumOutputColumns(), len(values))
	e.state.SetFitted()
	return nil
}

// Transform encodes values into an indicator matrix. A category unseen during
// Fit is an error, not a silent all-zeros row.
func (e *OneHotEncoder) Transform(values []string) (*mat.Dense, error) {
	if !e.state.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}

	n := len(values)
	if n == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "empty data", errors.ErrEmptyData)
	}

	out := mat.NewDense(n, e.NumOutputColumns(), nil)
	for i, v := range values {
		idx, ok := e.index[v]
		if !ok {
			return nil, errors.Wrapf(errors.ErrUnknownCategory, "OneHotEncoder.Transform: %q", v)
		}
		if e.DropFirst {
			if idx == 0 {
				continue // reference category encodes as all zeros
			}
			out.Set(i, idx-1, 1)
		} else {
			out.Set(i, idx, 1)
		}
	}
	return out, nil
}

// FitTransform fits on values and returns the encoded matrix.
func (e *OneHotEncoder) FitTransform(values []string) (*mat.Dense, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// Categories returns the learned categories in encoding order.
func (e *OneHotEncoder) Categories() []string {
	out := make([]string, len(e.categories))
	copy(out, e.categories)
	return out
}

// NumOutputColumns returns the width of the encoded matrix.
func (e *OneHotEncoder) NumOutputColumns() int {
	if e.DropFirst {
		return len(e.categories) - 1
	}
	return len(e.categories)
}

// FeatureNames returns one name per output column, prefix[category] style,
// for labeling regression coefficients.
func (e *OneHotEncoder) FeatureNames(prefix string) []string {
	cats := e.categories
	if e.DropFirst {
		cats = cats[1:]
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = prefix + "[" + c + "]"
	}
	return names
}
