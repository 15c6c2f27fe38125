package domain

import "time"

type ClaimStatus string

const (
	ClaimReceived   ClaimStatus = "received"
	ClaimProcessing ClaimStatus = "processing"
	ClaimReady      ClaimStatus = "ready"
	ClaimFailed     ClaimStatus = "failed"
)

// Claim tracks one uploaded statement document through the pipeline.
type Claim struct {
	ID           string            `json:"id"`
	Filename     string            `json:"filename"`
	MimeType     string            `json:"mime_type"`
	StoragePath  string            `json:"storage_path"`
	Status       ClaimStatus       `json:"status"`
	Error        string            `json:"error,omitempty"`
	DocumentType DocumentType      `json:"document_type,omitempty"`
	Confidence   string            `json:"confidence,omitempty"`
	OCR          *OCRResult        `json:"ocr_result,omitempty"`
	Record       *ClaimRecord      `json:"record,omitempty"`
	Evaluation   *PolicyEvaluation `json:"policy_evaluation,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
