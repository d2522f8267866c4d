package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/modabuy/storefront-backend/internal/catalog"
	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/pubsub"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-indexer",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	searchRepo, err := catalog.NewSearchRepository(cfg.Catalog, logg)
	if err != nil {
		logg.Error(ctx, "connect elasticsearch", err)
		os.Exit(1)
	}

	psClient, err := pubsub.NewClient(ctx, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "connect pubsub", err)
		os.Exit(1)
	}
	if err := psClient.EnsureSubscription(ctx, cfg.PubSub.CatalogSubscription); err != nil {
		logg.Error(ctx, "verify subscription", err)
		os.Exit(1)
	}

	svc := newIndexerService(searchRepo, logg)

	logg.Info(ctx, "indexer started")
	err = svc.Run(ctx, psClient.Subscriber(cfg.PubSub.CatalogSubscription))
	if err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "indexer stopped", err)
	}

	if err := psClient.Close(); err != nil {
		logg.Error(ctx, "shutdown incomplete", err)
		os.Exit(1)
	}
}
