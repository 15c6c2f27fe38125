package bootstrap

import (
	"context"
	"fmt"

	"github.com/claimsight/claimsight/internal/config"
	"github.com/claimsight/claimsight/internal/core/ports"
	"github.com/claimsight/claimsight/internal/core/usecase"
	"github.com/claimsight/claimsight/internal/infrastructure/llm/foundry"
	"github.com/claimsight/claimsight/internal/infrastructure/pdftext"
	"github.com/claimsight/claimsight/internal/infrastructure/policy"
	"github.com/claimsight/claimsight/internal/infrastructure/queue/nats"
	"github.com/claimsight/claimsight/internal/infrastructure/repository/postgres"
	"github.com/claimsight/claimsight/internal/infrastructure/resilience"
	"github.com/claimsight/claimsight/internal/infrastructure/results/jsonfile"
	"github.com/claimsight/claimsight/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Repo      ports.ClaimRepository
	IngestUC  ports.ClaimIngestor
	ProcessUC *usecase.ProcessClaimUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewClaimRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	// Model calls run once per claim unless retries are explicitly enabled.
	llmConfig := resilience.SingleShotConfig()
	if cfg.LLMRetryEnabled {
		llmConfig = resilience.DefaultConfig()
	}
	client := foundry.New(cfg.FoundryEndpoint, cfg.FoundryAPIKey, cfg.FoundryAPIVersion).
		WithExecutor(resilience.NewExecutor(llmConfig))
	recognizer := foundry.NewRecognizer(client, cfg.OCRDeployment)
	structurer := foundry.NewStructurer(client, cfg.ChatDeployment)
	evaluator := foundry.NewEvaluator(client, cfg.ChatDeployment)

	library, err := policy.LoadManifest(cfg.PolicyManifestPath)
	if err != nil {
		return nil, fmt.Errorf("load policy library: %w", err)
	}

	writer := jsonfile.New(cfg.OCRResultsDir, cfg.StructuredResultsDir)

	extractionUC := usecase.NewTextExtractionUseCase(recognizer, pdftext.New(), writer, cfg.OCRDeployment)
	structuringUC := usecase.NewStructuringUseCase(structurer, writer, cfg.ChatDeployment)
	evaluationUC := usecase.NewEvaluatePolicyUseCase(library, evaluator, cfg.PolicyTopK)

	ingestUC := usecase.NewIngestClaimUseCase(repo, storage, queue)
	processUC := usecase.NewProcessClaimUseCase(repo, storage, extractionUC, structuringUC, evaluationUC, writer)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
