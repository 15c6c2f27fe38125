package ports

import (
	"context"

	"github.com/claimsight/claimsight/internal/core/domain"
)

// Pipeline stage contracts. Each stage is single-shot: it consumes its
// input once and reports the outcome on the result record itself.

// TextExtractionStage produces an OCR result for raw document bytes.
type TextExtractionStage interface {
	FromBytes(ctx context.Context, sourceFile, mimeType string, data []byte) *domain.OCRResult
}

// StructuringStage produces a structured result from an OCR result.
type StructuringStage interface {
	FromOCR(ctx context.Context, ocr *domain.OCRResult) *domain.StructuredResult
}

// EvaluationStage attaches a policy evaluation to a structured record.
type EvaluationStage interface {
	Evaluate(ctx context.Context, record *domain.ClaimRecord) (*domain.PolicyEvaluation, error)
}
