package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/db"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/outbox"
	"github.com/modabuy/storefront-backend/pkg/pubsub"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-outbox-publisher",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbClient, err := db.NewClient(cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "connect database", err)
		os.Exit(1)
	}

	psClient, err := pubsub.NewClient(ctx, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "connect pubsub", err)
		os.Exit(1)
	}
	for _, topic := range []string{cfg.PubSub.OrdersTopic, cfg.PubSub.CatalogTopic} {
		if err := psClient.EnsureTopic(ctx, topic); err != nil {
			logg.Error(ctx, "verify topic", err)
			os.Exit(1)
		}
	}

	svc := newPublisherService(
		outbox.NewRepository(dbClient.DB()),
		newPubsubSender(psClient),
		cfg.Outbox,
		cfg.PubSub,
		logg,
	)

	logg.Info(ctx, "outbox publisher started")
	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "outbox publisher stopped", err)
	}

	closeErr := multierr.Append(psClient.Close(), dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown incomplete", closeErr)
		os.Exit(1)
	}
}
