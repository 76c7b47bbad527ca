// Package commands holds the aptprice command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aptprice/config"
	"aptprice/logger"
	"aptprice/ml"
	"aptprice/pricing"
)

var (
	configPath string
	modelPath  string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aptprice",
		Short:         "HCMC apartment price estimator",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if modelPath != "" {
				loaded.ML.ModelPath = modelPath
			}
			if logLevel != "" {
				loaded.Log.Level = logLevel
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded

			log, err = logger.New(logger.Options{
				Level:   cfg.Log.Level,
				File:    cfg.Log.File,
				Console: cfg.Log.Console,
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config.yaml")
	root.PersistentFlags().StringVarP(&modelPath, "model", "m", "", "model artifact, relative to the binary unless absolute")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(serveCmd(), predictCmd(), districtsCmd(), inspectCmd())
	return root
}

// loadModel resolves, loads and schema-checks the configured artifact.
func loadModel() (ml.Regressor, string, error) {
	path, err := ml.ResolvePath(cfg.ML.ModelPath)
	if err != nil {
		return nil, "", err
	}
	model, err := ml.LoadModel(cfg.ML.ModelType, path)
	if err != nil {
		return nil, path, fmt.Errorf("load model %s: %w", path, err)
	}
	checked, err := ml.ValidateSchema(model, pricing.FeatureNames())
	if err != nil {
		return nil, path, fmt.Errorf("model %s: %w", path, err)
	}
	if !checked {
		log.Warn("model artifact has no feature names, column order is not verified", zap.String("path", path))
	}
	return model, path, nil
}
