// Command statkit runs the bundled analysis workflows: cross-validated KNN
// classification on the wine dataset and OLS regression with inference on
// the housing dataset.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gostatlab/statkit/pkg/log"
)

var (
	cfgPath  string
	logLevel string
	seed     int
	cfg      *Config
)

var rootCmd = &cobra.Command{
	Use:   "statkit",
	Short: "Statistical learning workflows on the bundled datasets",
	Long: `statkit runs two reference workflows:

  wine-cv    tune a k-nearest-neighbors classifier with stratified
             cross-validation and report held-out accuracy
  house-ols  fit house-price regressions and print the inference tables

Settings come from defaults, then --config (YAML), then flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(cfgPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		return log.SetupLogger(cfg.LogLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&seed, "seed", 42, "random seed for splits and shuffling")

	rootCmd.AddCommand(wineCmd)
	rootCmd.AddCommand(houseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
