package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/claimsight/claimsight/internal/core/domain"
	"github.com/claimsight/claimsight/internal/core/ports"
)

// StructuringUseCase turns OCR text into a structured claim record. Model
// output that fails to parse is surfaced as an error result with the raw
// reply preserved, never silently corrected.
type StructuringUseCase struct {
	structurer ports.ClaimStructurer
	writer     ports.ResultWriter
	model      string
}

func NewStructuringUseCase(structurer ports.ClaimStructurer, writer ports.ResultWriter, model string) *StructuringUseCase {
	return &StructuringUseCase{
		structurer: structurer,
		writer:     writer,
		model:      model,
	}
}

func (uc *StructuringUseCase) FromOCR(ctx context.Context, ocr *domain.OCRResult) *domain.StructuredResult {
	if ocr.Status != domain.ResultSuccess {
		return domain.NewStructuredError(ocr.FilePath, "OCR processing failed: "+ocr.Error, "")
	}
	if ocr.Text == "" {
		return domain.NewStructuredError(ocr.FilePath, "no text extracted from OCR", "")
	}

	hint := DetectDocumentType(ocr.Text)
	record, raw, err := uc.structurer.Structure(ctx, ocr.Text, hint)
	if err != nil {
		res := domain.NewStructuredError(ocr.FilePath, err.Error(), "")
		if domain.IsKind(err, domain.ErrUnparsableResponse) {
			res.Error = "JSON parsing failed"
			res.RawResponse = raw
		}
		res.Metadata.Model = uc.model
		return res
	}

	return &domain.StructuredResult{
		Status: domain.ResultSuccess,
		Record: record,
		Metadata: domain.RecordMetadata{
			SourceFile:          ocr.FilePath,
			ProcessingTimestamp: time.Now().UTC(),
			Model:               uc.model,
			OriginalTextLength:  len(ocr.Text),
		},
	}
}

// RunFile loads an OCR result file, structures its text and persists the
// structured result file next to the usual naming convention.
func (uc *StructuringUseCase) RunFile(ctx context.Context, ocrPath string) (*domain.StructuredResult, string, error) {
	var res *domain.StructuredResult

	data, err := os.ReadFile(ocrPath)
	if err != nil {
		res = domain.NewStructuredError(ocrPath, fmt.Sprintf("read OCR result: %v", err), "")
	} else {
		var ocr domain.OCRResult
		if err := json.Unmarshal(data, &ocr); err != nil {
			res = domain.NewStructuredError(ocrPath, fmt.Sprintf("invalid OCR result JSON: %v", err), "")
		} else {
			if ocr.FilePath == "" {
				ocr.FilePath = ocrPath
			}
			res = uc.FromOCR(ctx, &ocr)
		}
	}

	resultPath, err := uc.writer.WriteStructuredResult(res.Metadata.SourceFile, res)
	if err != nil {
		return res, "", fmt.Errorf("write structured result: %w", err)
	}
	return res, resultPath, nil
}
