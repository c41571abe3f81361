// Package visualization renders the diagnostic plots used by the example
// workflows: validation curves for hyperparameter search and scatter or
// residual plots for regression fits. Output format follows the file
// extension (.png, .svg, .pdf).
package visualization

import (
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gostatlab/statkit/pkg/errors"
)

var (
	lineColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	accentColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// ValidationCurve plots mean cross-validation score against an integer
// hyperparameter, one point per grid value.
func ValidationCurve(params []int, scores []float64, title, xLabel, path string) error {
	if len(params) == 0 || len(params) != len(scores) {
		return errors.NewValueError("ValidationCurve", "params and scores must be non-empty and equal length")
	}

	pts := make(plotter.XYs, len(params))
	for i := range params {
		pts[i].X = float64(params[i])
		pts[i].Y = scores[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "mean CV accuracy"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return errors.Wrap(err, "statkit: building validation curve")
	}
	line.Color = lineColor
	points.Color = lineColor
	p.Add(line, points)

	if err := p.Save(7*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "statkit: saving plot to %s", path)
	}
	return nil
}

// ScatterWithFit draws the observations and overlays the fitted regression
// line y = intercept + slope*x across the observed x range.
func ScatterWithFit(x, y []float64, intercept, slope float64, title, xLabel, yLabel, path string) error {
	if len(x) == 0 || len(x) != len(y) {
		return errors.NewValueError("ScatterWithFit", "x and y must be non-empty and equal length")
	}

	pts := make(plotter.XYs, len(x))
	xMin, xMax := x[0], x[0]
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
		if x[i] < xMin {
			xMin = x[i]
		}
		if x[i] > xMax {
			xMax = x[i]
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "statkit: building scatter")
	}
	scatter.Color = lineColor
	p.Add(scatter)

	fit, err := plotter.NewLine(plotter.XYs{
		{X: xMin, Y: intercept + slope*xMin},
		{X: xMax, Y: intercept + slope*xMax},
	})
	if err != nil {
		return errors.Wrap(err, "statkit: building fit line")
	}
	fit.Color = accentColor
	fit.Width = vg.Points(2)
	p.Add(fit)
	p.Legend.Add("fit", fit)

	if err := p.Save(7*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "statkit: saving plot to %s", path)
	}
	return nil
}

// ResidualPlot draws residuals against fitted values with a zero reference
// line. A fit with no structure left shows an even band around zero.
func ResidualPlot(fitted, residuals *mat.VecDense, title, path string) error {
	if fitted == nil || residuals == nil {
		return errors.NewValueError("ResidualPlot", "fitted and residuals must be non-nil")
	}
	if fitted.Len() == 0 || fitted.Len() != residuals.Len() {
		return errors.NewValueError("ResidualPlot", "fitted and residuals must be non-empty and equal length")
	}

	n := fitted.Len()
	pts := make(plotter.XYs, n)
	xMin, xMax := fitted.AtVec(0), fitted.AtVec(0)
	for i := 0; i < n; i++ {
		v := fitted.AtVec(i)
		pts[i].X = v
		pts[i].Y = residuals.AtVec(i)
		if v < xMin {
			xMin = v
		}
		if v > xMax {
			xMax = v
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "fitted values"
	p.Y.Label.Text = "residuals"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "statkit: building residual scatter")
	}
	scatter.Color = lineColor
	p.Add(scatter)

	zero, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: 0}, {X: xMax, Y: 0}})
	if err != nil {
		return errors.Wrap(err, "statkit: building zero line")
	}
	zero.Color = accentColor
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)

	if err := p.Save(7*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "statkit: saving plot to %s", path)
	}
	return nil
}
