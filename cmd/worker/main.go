package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/legistra/internal/bootstrap"
	"github.com/kirillkom/legistra/internal/config"
	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/observability/logging"
	"github.com/kirillkom/legistra/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Logger:               logger,
		Observer:             workerMetrics.Analysis,
		OnBreakerStateChange: workerMetrics.Analysis.ObserveBreakerTransition,
	})
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           workerMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject, "metrics_port", cfg.WorkerMetricsPort)
	err = app.Queue.SubscribeAnalysisRequested(ctx, func(handlerCtx context.Context, request domain.AnalysisRequest) error {
		if !request.QueuedAt.IsZero() {
			workerMetrics.ObserveQueueLag(time.Since(request.QueuedAt))
		}

		workerMetrics.StartTask()
		err := app.AnalyzeUC.ProcessByID(handlerCtx, request.DocumentID, request.Mode)
		workerMetrics.FinishTask(err)
		return err
	})
	if err != nil {
		logger.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}
