package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aptprice/db"
	qhttp "aptprice/http"
	"aptprice/ml"
	"aptprice/pricing"
)

func serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the estimate form over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				cfg.Http.Port = port
			}

			model, path, err := loadModel()
			if err != nil {
				return err
			}
			log.Info("model loaded", zap.String("path", path), zap.Int("features", pricing.FeatureWidth))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.ML.WatchArtifact {
				if err := ml.WatchArtifact(ctx, path, log); err != nil {
					log.Warn("model watcher disabled", zap.Error(err))
				}
			}

			var store *db.Store
			if cfg.Database.Path != "" {
				store, err = db.Open(cfg.Database.Path)
				if err != nil {
					return err
				}
				defer store.Close()
				log.Info("estimate log enabled", zap.String("path", cfg.Database.Path))
			}

			flashes, err := qhttp.NewFlashStore(cfg.Http.FlashCapacity)
			if err != nil {
				return err
			}
			handlers := qhttp.NewHandlers(pricing.NewEstimator(model), store, flashes, log)
			server := qhttp.NewServer(qhttp.ServerConfig{
				Port:           cfg.Http.Port,
				Timeout:        cfg.Http.Timeout,
				MaxRequestSize: cfg.Http.MaxRequestSize,
			}, handlers, log)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			log.Info("shutting down")
			if err := server.Stop(); err != nil {
				log.Error("server forced to shutdown", zap.Error(err))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	return cmd
}
