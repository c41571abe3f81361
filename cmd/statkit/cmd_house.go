package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/dataset"
	"github.com/gostatlab/statkit/pkg/log"
	"github.com/gostatlab/statkit/preprocessing"
	"github.com/gostatlab/statkit/stats"
	"github.com/gostatlab/statkit/visualization"
)

var houseCmd = &cobra.Command{
	Use:   "house-ols",
	Short: "Fit house-price regressions with full inference",
	Long: `Fits three least-squares models on the housing dataset: price on
floor area, price on all numeric features, and price with one-hot district
indicators. Prints the R-style summary for each and saves a scatter-with-fit
plot and a residual plot.`,
	RunE: runHouseOLS,
}

var houseConfLevel float64

func init() {
	houseCmd.Flags().Float64Var(&houseConfLevel, "confidence-level", 0.95, "confidence level for intervals")
}

func runHouseOLS(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("confidence-level") {
		cfg.House.ConfidenceLevel = houseConfLevel
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	houses, err := dataset.LoadHouses()
	if err != nil {
		return err
	}
	n, p := houses.X.Dims()
	slog.Info("dataset loaded",
		slog.String(log.DatasetKey, "houses"),
		slog.Int(log.SamplesKey, n),
		slog.Int(log.FeaturesKey, p))

	price := houses.PriceMatrix()
	level := stats.WithConfidenceLevel(cfg.House.ConfidenceLevel)

	// Simple model on floor area.
	area, err := houses.Column("area_sqm")
	if err != nil {
		return err
	}
	simple := stats.NewOLS(level, stats.WithFeatureNames([]string{"area_sqm"}))
	if err := simple.Fit(area, price); err != nil {
		return err
	}
	if err := printSummary("Simple regression: price ~ area", simple); err != nil {
		return err
	}

	coefs, err := simple.Coefficients()
	if err != nil {
		return err
	}
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = area.At(i, 0)
		y[i] = price.At(i, 0)
	}
	fitPath := filepath.Join(cfg.House.PlotDir, "house_price_vs_area.png")
	if err := visualization.ScatterWithFit(x, y, coefs[0].Estimate, coefs[1].Estimate,
		"Price vs floor area", "area (sqm)", "price (k)", fitPath); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n\n", fitPath)

	// All numeric features.
	multi := stats.NewOLS(level, stats.WithFeatureNames(houses.FeatureNames))
	if err := multi.Fit(houses.X, price); err != nil {
		return err
	}
	if err := printSummary("Multivariable regression", multi); err != nil {
		return err
	}

	fitted, err := multi.FittedValues()
	if err != nil {
		return err
	}
	residuals, err := multi.Residuals()
	if err != nil {
		return err
	}
	residPath := filepath.Join(cfg.House.PlotDir, "house_residuals.png")
	if err := visualization.ResidualPlot(fitted, residuals, "Residuals vs fitted", residPath); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n\n", residPath)

	// Numeric features plus district indicators.
	enc := preprocessing.NewOneHotEncoder(true)
	indicators, err := enc.FitTransform(houses.District)
	if err != nil {
		return err
	}
	var design mat.Dense
	design.Augment(houses.X, indicators)

	names := append([]string(nil), houses.FeatureNames...)
	names = append(names, enc.FeatureNames("district")...)

	district := stats.NewOLS(level, stats.WithFeatureNames(names))
	if err := district.Fit(&design, price); err != nil {
		return err
	}
	if err := printSummary("Regression with district indicators", district); err != nil {
		return err
	}

	slog.Info("regressions complete", slog.Float64(log.R2Key, district.RSquared()))
	return nil
}

func printSummary(title string, ols *stats.OLS) error {
	summary, err := ols.Summary()
	if err != nil {
		return err
	}
	fmt.Printf("--- %s ---\n%s\n", title, summary)
	return nil
}
