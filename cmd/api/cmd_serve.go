package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"MentalHealthSentiment_WebProject/internal/analysis"
	"MentalHealthSentiment_WebProject/internal/auth"
	"MentalHealthSentiment_WebProject/internal/config"
	"MentalHealthSentiment_WebProject/internal/handler"
	"MentalHealthSentiment_WebProject/internal/middleware"
	"MentalHealthSentiment_WebProject/internal/sentiment"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.UsingDefaultJWTSecret {
		logger.Warn("runServe(): JWT_SECRET_KEY is not set, using the default key")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer store.Close()

	pipeline := loadPipeline(ctx, cfg, logger)
	svc := analysis.New(pipeline, store, logger, cfg.Retention())
	h := handler.New(store, svc, auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), logger)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(h, handler.RouterConfig{
		CORSOrigins:    cfg.Server.CORSOrigins,
		InviteCode:     cfg.Auth.SignupInviteCode,
		LoginRateLimit: cfg.Auth.LoginRateLimit,
		Readiness: map[string]middleware.HealthChecker{
			"database": middleware.CheckerFunc(store.Ping),
			"model": middleware.CheckerFunc(func(context.Context) error {
				if !svc.ModelAvailable() {
					return sentiment.ErrModelUnavailable
				}
				return nil
			}),
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("runServe(): listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return (&analysis.Pruner{Service: svc, Interval: cfg.History.PruneInterval}).Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("runServe(): shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// loadPipeline returns nil when the artifacts are missing or broken; the server still
// starts and reports the model as unavailable.
func loadPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) *sentiment.Pipeline {
	if cfg.ModelStoreEnabled() {
		ms, err := newModelStore(cfg, logger)
		if err == nil {
			err = ms.Fetch(ctx, cfg.Model.Dir)
		}
		if err != nil {
			logger.Warn("loadPipeline(): model store fetch failed, using local artifacts", zap.Error(err))
		}
	}

	pipeline, err := sentiment.LoadPipeline(cfg.Model.Dir)
	if err != nil {
		if errors.Is(err, sentiment.ErrModelUnavailable) {
			logger.Warn("loadPipeline(): model files not found, analysis disabled", zap.String("dir", cfg.Model.Dir), zap.Error(err))
		} else {
			logger.Error("loadPipeline(): invalid model artifacts, analysis disabled", zap.String("dir", cfg.Model.Dir), zap.Error(err))
		}
		return nil
	}
	logger.Info("loadPipeline(): model loaded", zap.String("dir", cfg.Model.Dir), zap.Int("features", pipeline.NumFeatures()))
	return pipeline
}
