package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/config"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/infra/queue"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/notifications"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/metrics"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if !cfg.Queue.Enabled {
		log.Fatal("Queue is disabled: notifications are dispatched by the API process, notifier is not needed")
	}

	log.Info("Starting notification worker...")

	var metricsCollector *metrics.Metrics
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled && cfg.Notifier.MetricsPort > 0 {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName + "_notifier")

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Notifier.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			log.Info("Metrics endpoint exposed at %s%s", metricsSrv.Addr, cfg.Metrics.Path)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server failed: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := queue.NewSQSClient(ctx, cfg.Queue.Region, cfg.Queue.Endpoint)
	if err != nil {
		log.Fatal("Failed to create SQS client: %v", err)
	}

	dispatcher := notifications.NewDispatcherFromConfig(cfg, metricsCollector, log)
	consumer := queue.NewConsumer(
		client,
		cfg.Queue.URL,
		dispatcher,
		cfg.Queue.WaitTimeSeconds,
		cfg.Queue.MaxMessages,
		log,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Run(ctx)
	}()

	<-ctx.Done()
	log.Info("Shutting down notification worker...")

	// Текущая пачка дочитывается; недоставленные сообщения вернутся в очередь
	wg.Wait()

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("Metrics server forced to shutdown: %v", err)
		}
	}

	log.Info("Notification worker stopped")
}
