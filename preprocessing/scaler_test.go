package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/pkg/errors"
)

const tol = 1e-9

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error: %v", err)
	}

	// Each column of the output must have mean 0 and population std 1.
	r, c := scaled.Dims()
	for j := 0; j < c; j++ {
		var mean float64
		for i := 0; i < r; i++ {
			mean += scaled.At(i, j)
		}
		mean /= float64(r)
		if math.Abs(mean) > tol {
			t.Errorf("column %d mean = %g, want 0", j, mean)
		}

		var ss float64
		for i := 0; i < r; i++ {
			d := scaled.At(i, j) - mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(r))
		if math.Abs(std-1) > tol {
			t.Errorf("column %d std = %g, want 1", j, std)
		}
	}
}

func TestStandardScalerUsesTrainingStatisticsOnly(t *testing.T) {
	train := mat.NewDense(2, 1, []float64{0, 2}) // mean 1, population std 1
	test := mat.NewDense(2, 1, []float64{3, 5})

	scaler := NewStandardScalerDefault()
	if err := scaler.Fit(train); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	scaled, err := scaler.Transform(test)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}

	// (3-1)/1 = 2 and (5-1)/1 = 4: test rows scaled with the training stats.
	if math.Abs(scaled.At(0, 0)-2) > tol || math.Abs(scaled.At(1, 0)-4) > tol {
		t.Errorf("test data not scaled by training statistics: got (%g, %g)",
			scaled.At(0, 0), scaled.At(1, 0))
	}
}

func TestStandardScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{7, 7, 7})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if math.Abs(scaled.At(i, 0)) > tol {
			t.Errorf("constant column should center to zero, got %g", scaled.At(i, 0))
		}
	}
}

func TestStandardScalerInverseTransformRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.5, -2,
		0.5, 4,
		2.5, 9,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error: %v", err)
	}
	back, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(back.At(i, j)-X.At(i, j)) > 1e-9 {
				t.Errorf("round trip mismatch at (%d,%d): %g vs %g", i, j, back.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScalerDefault()

	if _, err := scaler.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform before Fit should fail")
	} else {
		var nfe *errors.NotFittedError
		if !errors.As(err, &nfe) {
			t.Errorf("expected NotFittedError, got %T", err)
		}
	}

	if err := scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	if _, err := scaler.Transform(mat.NewDense(2, 3, nil)); err == nil {
		t.Error("Transform with the wrong column count should fail")
	} else {
		var de *errors.DimensionError
		if !errors.As(err, &de) {
			t.Errorf("expected DimensionError, got %T", err)
		}
	}
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, 100,
		5, 150,
		10, 200,
	})

	scaler := NewMinMaxScalerDefault()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error: %v", err)
	}

	want := [][]float64{{0, 0}, {0.5, 0.5}, {1, 1}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(scaled.At(i, j)-want[i][j]) > tol {
				t.Errorf("scaled(%d,%d) = %g, want %g", i, j, scaled.At(i, j), want[i][j])
			}
		}
	}

	back, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error: %v", err)
	}
	if math.Abs(back.At(1, 1)-150) > tol {
		t.Errorf("inverse transform mismatch: got %g, want 150", back.At(1, 1))
	}
}

func TestMinMaxScalerInvalidRange(t *testing.T) {
	scaler := NewMinMaxScaler([2]float64{1, 1})
	if err := scaler.Fit(mat.NewDense(2, 1, []float64{1, 2})); err == nil {
		t.Error("degenerate feature range should fail validation")
	}
}
