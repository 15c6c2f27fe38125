package ports

import (
	"context"
	"io"

	"github.com/claimsight/claimsight/internal/core/domain"
)

// ClaimRepository persists and reads claim state.
type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) error
	GetByID(ctx context.Context, id string) (*domain.Claim, error)
	UpdateStatus(ctx context.Context, id string, status domain.ClaimStatus, errMessage string) error
	SaveOCRResult(ctx context.Context, id string, ocr *domain.OCRResult) error
	SaveRecord(ctx context.Context, id string, record *domain.ClaimRecord) error
	SaveEvaluation(ctx context.Context, id string, eval *domain.PolicyEvaluation) error
}

// ObjectStorage stores uploaded statement documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes claim intake events.
type MessageQueue interface {
	PublishClaimReceived(ctx context.Context, claimID string) error
	SubscribeClaimReceived(ctx context.Context, handler func(context.Context, string) error) error
}

// TextRecognizer extracts text from a statement image via the remote
// document-understanding endpoint.
type TextRecognizer interface {
	RecognizeImage(ctx context.Context, mimeType string, data []byte) (string, error)
}

// PDFTextExtractor reads the text layer of a PDF document locally.
type PDFTextExtractor interface {
	Extract(r io.ReaderAt, size int64) (string, error)
}

// ClaimStructurer turns OCR text into a structured claim record. The raw
// model reply is returned alongside so parse failures can be surfaced.
type ClaimStructurer interface {
	Structure(ctx context.Context, text string, hint domain.DocumentType) (*domain.ClaimRecord, string, error)
}

// PolicyEvaluator assesses coverage, liability and validity for a record
// against retrieved policy documents.
type PolicyEvaluator interface {
	Evaluate(ctx context.Context, record *domain.ClaimRecord, policies []domain.PolicyDocument) (*domain.PolicyEvaluation, string, error)
}

// PolicyLibrary retrieves policy documents relevant to a claim.
type PolicyLibrary interface {
	Search(query string, limit int) ([]domain.PolicyDocument, error)
}

// ResultWriter persists pipeline outputs as JSON files in the results
// directories, keyed by the source file's base name.
type ResultWriter interface {
	WriteOCRResult(res *domain.OCRResult) (string, error)
	WriteStructuredResult(sourceFile string, res *domain.StructuredResult) (string, error)
}
