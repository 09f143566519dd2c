package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"MentalHealthSentiment_WebProject/internal/config"
	"MentalHealthSentiment_WebProject/internal/logging"
	"MentalHealthSentiment_WebProject/internal/modelstore"
	"MentalHealthSentiment_WebProject/internal/storage"
)

// bootstrap loads config and builds the logger shared by every command.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.ConsoleLogging())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openStore connects to DATABASE_URL and applies pending migrations.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, migrate bool) (*storage.Store, error) {
	store, err := storage.Open(ctx, cfg.Database.URL, logger)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := store.MigrateUp(); err != nil {
			store.Close()
			return nil, err
		}
	}
	return store, nil
}

func newModelStore(cfg *config.Config, logger *zap.Logger) (*modelstore.Store, error) {
	if !cfg.ModelStoreEnabled() {
		return nil, fmt.Errorf("model store is not configured (set MODEL_STORE_ENDPOINT and MODEL_STORE_BUCKET)")
	}
	ms := cfg.ModelStore
	return modelstore.New(modelstore.Options{
		Endpoint:  ms.Endpoint,
		AccessKey: ms.AccessKey,
		SecretKey: ms.SecretKey,
		Bucket:    ms.Bucket,
		Prefix:    ms.Prefix,
		Region:    ms.Region,
		UseSSL:    ms.UseSSL,
	}, logger)
}
