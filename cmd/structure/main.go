package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/claimsight/claimsight/internal/config"
	"github.com/claimsight/claimsight/internal/core/domain"
	"github.com/claimsight/claimsight/internal/core/usecase"
	"github.com/claimsight/claimsight/internal/infrastructure/llm/foundry"
	"github.com/claimsight/claimsight/internal/infrastructure/results/jsonfile"
	"github.com/claimsight/claimsight/internal/observability/logging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: structure <ocr_result.json> [more files...]")
		fmt.Fprintln(os.Stderr, "\nWrites <base>_structured.json into STRUCTURED_RESULTS_DIR for each input.")
		os.Exit(2)
	}

	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("structure", cfg.LogLevel))

	client := foundry.New(cfg.FoundryEndpoint, cfg.FoundryAPIKey, cfg.FoundryAPIVersion)
	structurer := foundry.NewStructurer(client, cfg.ChatDeployment)
	writer := jsonfile.New(cfg.OCRResultsDir, cfg.StructuredResultsDir)
	uc := usecase.NewStructuringUseCase(structurer, writer, cfg.ChatDeployment)

	ctx := context.Background()
	exitCode := 0
	for _, path := range os.Args[1:] {
		res, resultPath, err := uc.RunFile(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			exitCode = 1
			continue
		}

		if res.Status == domain.ResultSuccess {
			fmt.Printf("%s: document_type=%s confidence=%s -> %s\n",
				path, res.Record.DocumentType, res.Record.Confidence, resultPath)
		} else {
			fmt.Printf("%s: structuring failed (%s) -> %s\n", path, res.Error, resultPath)
		}
	}
	os.Exit(exitCode)
}
