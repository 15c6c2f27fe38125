package domain

import "time"

type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// OCRResult is the immutable output of one text extraction run. Exactly one
// of success/error applies; an error result carries no guaranteed text.
type OCRResult struct {
	Status    ResultStatus `json:"status"`
	Text      string       `json:"text,omitempty"`
	FilePath  string       `json:"file_path"`
	MimeType  string       `json:"mime_type,omitempty"`
	Model     string       `json:"model,omitempty"`
	CharCount int          `json:"char_count,omitempty"`
	Error     string       `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewOCRError(filePath, message string) *OCRResult {
	return &OCRResult{
		Status:    ResultError,
		FilePath:  filePath,
		Error:     message,
		Timestamp: time.Now().UTC(),
	}
}
