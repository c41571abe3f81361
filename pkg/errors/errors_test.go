package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("KNNClassifier", "Predict")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError, got %T", err)
	}
	if nfe.ModelName != "KNNClassifier" || nfe.Method != "Predict" {
		t.Errorf("unexpected fields: %+v", nfe)
	}
	if !strings.Contains(err.Error(), "not fitted yet") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name     string
		axis     int
		wantWord string
	}{
		{name: "feature axis", axis: 1, wantWord: "features"},
		{name: "row axis", axis: 0, wantWord: "rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("StandardScaler.Transform", 13, 12, tt.axis)

			var de *DimensionError
			if !As(err, &de) {
				t.Fatalf("expected DimensionError, got %T", err)
			}
			if de.Expected != 13 || de.Got != 12 {
				t.Errorf("unexpected fields: %+v", de)
			}
			if !strings.Contains(err.Error(), tt.wantWord) {
				t.Errorf("message %q should mention %q", err.Error(), tt.wantWord)
			}
		})
	}
}

func TestModelErrorUnwrap(t *testing.T) {
	err := NewModelError("OLS.Fit", "singular matrix", ErrSingularMatrix)
	if !Is(err, ErrSingularMatrix) {
		t.Error("ModelError should unwrap to ErrSingularMatrix")
	}
}

func TestWarnUsesHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewUndefinedMetricWarning("r2", "constant target", 0.0)
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not called")
	}
	if !strings.Contains(captured.Error(), "ill-defined") {
		t.Errorf("unexpected warning message: %s", captured.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("n_neighbors", "must be >= 1", 0)

	var ve *ValidationError
	if !As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.ParamName != "n_neighbors" {
		t.Errorf("unexpected param name: %s", ve.ParamName)
	}
}
