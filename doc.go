// Package statkit provides classical statistical learning for Go: nearest
// neighbor classification with cross-validated model selection, and linear
// regression with the full inference table.
//
// The API follows the scikit-learn conventions that most practitioners
// already know: estimators expose Fit, Predict, and Score over gonum
// matrices, transformers expose Fit, Transform, and FitTransform, and every
// operation returns an explicit error.
//
// # Quick Start
//
// Tune and evaluate a KNN classifier on the bundled wine dataset:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/gostatlab/statkit/dataset"
//	    "github.com/gostatlab/statkit/modelselection"
//	    "github.com/gostatlab/statkit/neighbors"
//	    "github.com/gostatlab/statkit/preprocessing"
//	)
//
//	func main() {
//	    wine, err := dataset.LoadWine()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    split, err := modelselection.StratifiedTrainTestSplit(wine.X, wine.YMatrix(), 0.2, 42)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    scaler := preprocessing.NewStandardScalerDefault()
//	    XTrain, err := scaler.FitTransform(split.XTrain)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    gs := modelselection.NewGridSearchCV("n_neighbors", modelselection.IntRange(1, 50),
//	        func(k int) modelselection.Estimator {
//	            return neighbors.NewKNNClassifier(neighbors.WithNNeighbors(k))
//	        }, modelselection.NewStratifiedKFold(5, true, 42))
//	    if err := gs.Fit(XTrain, split.YTrain); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    bestK, err := gs.BestParam()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("best k:", bestK)
//	}
//
// Fit a regression with standard errors, t-statistics, and intervals:
//
//	ols := stats.NewOLS(stats.WithFeatureNames([]string{"area_sqm"}))
//	if err := ols.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	summary, _ := ols.Summary()
//	fmt.Println(summary)
//
// # Packages
//
//   - dataset: bundled wine and housing datasets
//   - preprocessing: StandardScaler, MinMaxScaler, OneHotEncoder
//   - modelselection: train/test splits, KFold, StratifiedKFold, GridSearchCV
//   - neighbors: KNNClassifier with uniform and inverse-distance voting
//   - stats: OLS regression with the inference table and F-test
//   - metrics: accuracy, confusion matrix, MSE, RMSE, MAE, R²
//   - visualization: validation curves, fit and residual plots
//   - core/model: estimator interfaces and fitted-state tracking
//   - core/parallel: CPU-parallel work splitting
//
// # Performance
//
// Distance computation and cross-validation folds run in parallel across CPU
// cores once the data is large enough to benefit. All estimators are safe to
// read concurrently after Fit returns.
package statkit
