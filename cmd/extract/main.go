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
	"github.com/claimsight/claimsight/internal/infrastructure/pdftext"
	"github.com/claimsight/claimsight/internal/infrastructure/results/jsonfile"
	"github.com/claimsight/claimsight/internal/observability/logging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: extract <image-or-pdf> [more files...]")
		fmt.Fprintln(os.Stderr, "\nWrites <base>_ocr_result.json into OCR_RESULTS_DIR for each input.")
		os.Exit(2)
	}

	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("extract", cfg.LogLevel))

	client := foundry.New(cfg.FoundryEndpoint, cfg.FoundryAPIKey, cfg.FoundryAPIVersion)
	recognizer := foundry.NewRecognizer(client, cfg.OCRDeployment)
	writer := jsonfile.New(cfg.OCRResultsDir, cfg.StructuredResultsDir)
	uc := usecase.NewTextExtractionUseCase(recognizer, pdftext.New(), writer, cfg.OCRDeployment)

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
			fmt.Printf("%s: extracted %d characters -> %s\n", path, res.CharCount, resultPath)
		} else {
			fmt.Printf("%s: extraction failed (%s) -> %s\n", path, res.Error, resultPath)
		}
	}
	os.Exit(exitCode)
}
