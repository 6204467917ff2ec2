package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airops/config"
	"github.com/Domenick1991/airops/internal/bootstrap"
	"github.com/Domenick1991/airops/internal/email"
	"github.com/Domenick1991/airops/internal/events"
	"github.com/Domenick1991/airops/internal/logger"
	"github.com/Domenick1991/airops/internal/service/notifications"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		logger.Error().Err(err).Msg("worker failed")
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Configure(logger.Config{Level: logger.LogLevel(cfg.Logging.Level), Pretty: cfg.Logging.Pretty})
	if cfg.Logging.Level != string(logger.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := events.NewConsumer(cfg.Events)
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}
	defer consumer.Close()

	notifySvc := notifications.NewNotificationService(
		email.NewSender(logger.With("component", "email")),
		cfg.Worker.FeedSize,
	)

	go func() {
		err := consumer.Consume(ctx, notifySvc.Handle)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("consumer stopped")
			stop()
		}
	}()

	logger.Info().Str("driver", cfg.Events.Driver).Str("topic", cfg.Events.Topic).Msg("worker started")
	if err := bootstrap.Run(ctx, cfg, notifySvc); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info().Msg("worker stopped")
	return nil
}
