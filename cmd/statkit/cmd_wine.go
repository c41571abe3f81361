package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gostatlab/statkit/dataset"
	"github.com/gostatlab/statkit/metrics"
	"github.com/gostatlab/statkit/modelselection"
	"github.com/gostatlab/statkit/neighbors"
	"github.com/gostatlab/statkit/pkg/log"
	"github.com/gostatlab/statkit/preprocessing"
	"github.com/gostatlab/statkit/visualization"
)

var wineCmd = &cobra.Command{
	Use:   "wine-cv",
	Short: "Cross-validate a KNN classifier on the wine dataset",
	Long: `Splits the wine dataset with stratification, standardizes the
features on the training fold, searches k over a grid with stratified
k-fold cross-validation, then reports held-out accuracy, the confusion
matrix, and an accuracy-versus-k plot.`,
	RunE: runWineCV,
}

func init() {
	wineCmd.Flags().Float64Var(&wineTestSize, "test-size", 0.2, "held-out fraction")
	wineCmd.Flags().IntVar(&wineFolds, "folds", 5, "number of cross-validation folds")
	wineCmd.Flags().IntVar(&wineKMax, "k-max", 50, "largest k in the search grid")
	wineCmd.Flags().StringVar(&wineWeights, "weights", "uniform", "vote weighting (uniform or distance)")
}

var (
	wineTestSize float64
	wineFolds    int
	wineKMax     int
	wineWeights  string
)

func runWineCV(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("test-size") {
		cfg.Wine.TestSize = wineTestSize
	}
	if cmd.Flags().Changed("folds") {
		cfg.Wine.Folds = wineFolds
	}
	if cmd.Flags().Changed("k-max") {
		cfg.Wine.KMax = wineKMax
	}
	if cmd.Flags().Changed("weights") {
		cfg.Wine.Weights = wineWeights
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	wine, err := dataset.LoadWine()
	if err != nil {
		return err
	}
	rows, cols := wine.X.Dims()
	slog.Info("dataset loaded",
		slog.String(log.DatasetKey, "wine"),
		slog.Int(log.SamplesKey, rows),
		slog.Int(log.FeaturesKey, cols))

	split, err := modelselection.StratifiedTrainTestSplit(wine.X, wine.YMatrix(), cfg.Wine.TestSize, cfg.Seed)
	if err != nil {
		return err
	}

	scaler := preprocessing.NewStandardScalerDefault()
	XTrain, err := scaler.FitTransform(split.XTrain)
	if err != nil {
		return err
	}
	XTest, err := scaler.Transform(split.XTest)
	if err != nil {
		return err
	}

	opts := []neighbors.KNNOption{neighbors.WithWeights(cfg.Wine.Weights)}
	gs := modelselection.NewGridSearchCV("n_neighbors",
		modelselection.IntRange(cfg.Wine.KMin, cfg.Wine.KMax),
		func(k int) modelselection.Estimator {
			return neighbors.NewKNNClassifier(append(opts, neighbors.WithNNeighbors(k))...)
		}, modelselection.NewStratifiedKFold(cfg.Wine.Folds, true, cfg.Seed))

	if err := gs.Fit(XTrain, split.YTrain); err != nil {
		return err
	}

	best, err := gs.BestEstimator()
	if err != nil {
		return err
	}
	clf := best.(*neighbors.KNNClassifier)

	bestK, err := gs.BestParam()
	if err != nil {
		return err
	}
	bestScore, err := gs.BestScore()
	if err != nil {
		return err
	}

	acc, err := clf.Score(XTest, split.YTest)
	if err != nil {
		return err
	}
	slog.Info("held-out evaluation",
		slog.Int(log.BestParamKey, bestK),
		slog.Float64(log.AccuracyKey, acc))

	fmt.Printf("Best k: %d (mean CV accuracy %.4f)\n", bestK, bestScore)
	fmt.Printf("Held-out accuracy: %.4f\n\n", acc)

	pred, err := clf.Predict(XTest)
	if err != nil {
		return err
	}
	cm, classes, err := metrics.ConfusionMatrix(split.YTest, pred)
	if err != nil {
		return err
	}
	fmt.Println("Confusion matrix (rows = true class):")
	fmt.Printf("%8s", "")
	for _, c := range classes {
		fmt.Printf("%8d", c)
	}
	fmt.Println()
	for i, row := range cm {
		fmt.Printf("%8d", classes[i])
		for _, v := range row {
			fmt.Printf("%8d", v)
		}
		fmt.Println()
	}

	results, err := gs.Results()
	if err != nil {
		return err
	}
	params := make([]int, len(results))
	scores := make([]float64, len(results))
	for i, r := range results {
		params[i] = r.Param
		scores[i] = r.MeanScore
	}
	if err := visualization.ValidationCurve(params, scores,
		"KNN accuracy vs number of neighbors", "n_neighbors", cfg.Wine.PlotPath); err != nil {
		return err
	}
	fmt.Printf("\nSaved %s\n", cfg.Wine.PlotPath)
	return nil
}
