package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claimsight/claimsight/internal/bootstrap"
	"github.com/claimsight/claimsight/internal/config"
	"github.com/claimsight/claimsight/internal/observability/logging"
	"github.com/claimsight/claimsight/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	app.ProcessUC.SetStageObserver(func(stage string, err error) {
		workerMetrics.RecordStage("worker", stage, err)
	})

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", workerMetrics.Handler())
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsMux,
	}
	go func() {
		slog.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeClaimReceived(ctx, func(handlerCtx context.Context, claimID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		if claim, err := app.Repo.GetByID(processCtx, claimID); err == nil {
			workerMetrics.ObserveQueueLag("worker", time.Since(claim.CreatedAt))
		}

		workerMetrics.StartClaim()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, claimID)
		workerMetrics.FinishClaim("worker", time.Since(start), processErr)

		if processErr != nil {
			slog.Error("claim processing failed", "claim_id", claimID, "error", processErr)
		} else {
			slog.Info("claim processed", "claim_id", claimID, "duration_ms", time.Since(start).Milliseconds())
		}
		return processErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
