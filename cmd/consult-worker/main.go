package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediconsult/platform/pkg/bootstrap"
	"github.com/mediconsult/platform/pkg/common/config"
	"github.com/mediconsult/platform/pkg/common/kafka"
	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/mediconsult/platform/pkg/consultation"
)

func main() {
	logger.Init("consult-worker")
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build consultation pipeline")
	}
	defer app.Close()
	app.StartRetention(ctx, cfg.RetentionPeriod, time.Hour)

	if !cfg.EventsEnabled {
		logger.Log.Warn("EVENTS_ENABLED is false, results will not be published")
	}

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.ConsultationRequestTopic, cfg.KafkaGroupID)
	defer consumer.Close()

	worker := consultation.NewWorker(app.Service)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down Consult Worker...")
		cancel()
	}()

	logger.Log.WithFields(map[string]interface{}{
		"topic":    cfg.ConsultationRequestTopic,
		"group_id": cfg.KafkaGroupID,
	}).Info("Consult Worker started")

	if err := consumer.Consume(ctx, worker.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.WithError(err).Error("Consumer stopped")
	}

	logger.Log.Info("Consult Worker stopped")
}
