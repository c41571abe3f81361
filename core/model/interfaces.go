package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for supervised estimators.
type Fitter interface {
	// Fit trains the estimator on X with targets y (an n x 1 matrix).
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for estimators that produce predictions.
type Predictor interface {
	// Predict returns predictions for X as an n x 1 matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for estimators that can evaluate themselves.
// Classifiers report accuracy; regressors report R^2.
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// Transformer is the interface for stateless-API data transformations that
// learn their parameters from the data given to Fit.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Classifier combines the interfaces of classification estimators.
type Classifier interface {
	Fitter
	Predictor
	Scorer

	// PredictProba returns per-class probability estimates, one column per
	// class in the order reported by Classes.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the unique class labels seen during fitting.
	Classes() []int
}

// ParameterGetter is the interface for estimators that expose their
// hyperparameters, used by grid search to report results.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
