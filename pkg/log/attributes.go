// Package log defines standard attribute keys for statistical operations.
//
// Using these keys keeps log output consistent across the estimator packages
// and makes pipeline runs easy to filter: every fit, transform, and scoring
// step reports the same vocabulary of dataset shapes and result metrics.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "KNNClassifier", "StandardScaler", "OLS"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "grid_search"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "neighbors", "preprocessing", "stats", "modelselection"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// DatasetKey names the bundled dataset in use ("wine", "houses").
	DatasetKey = "data.dataset"

	// SamplesKey indicates the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) being processed.
	FeaturesKey = "data.features"
)

// Model selection and results.
const (
	// FoldsKey indicates the number of cross-validation folds.
	FoldsKey = "cv.folds"

	// ParamKey names the hyperparameter being searched.
	ParamKey = "cv.param"

	// BestParamKey reports the selected grid point.
	BestParamKey = "cv.best_param"

	// BestScoreKey reports the best mean validation score.
	BestScoreKey = "cv.best_score"

	// SeedKey reports the random seed used for splits and shuffles.
	SeedKey = "cv.seed"

	// AccuracyKey reports classification accuracy.
	AccuracyKey = "metric.accuracy"

	// R2Key reports the coefficient of determination.
	R2Key = "metric.r2"

	// DurationMsKey reports elapsed wall time in milliseconds.
	DurationMsKey = "duration_ms"
)
