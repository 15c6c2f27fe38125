package usecase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claimsight/claimsight/internal/core/domain"
	"github.com/claimsight/claimsight/internal/core/ports"
)

// TextExtractionUseCase turns one statement document into an OCR result.
// Failures surface as error-status results, never as panics or partial files.
type TextExtractionUseCase struct {
	recognizer ports.TextRecognizer
	pdfText    ports.PDFTextExtractor
	writer     ports.ResultWriter
	model      string
}

func NewTextExtractionUseCase(
	recognizer ports.TextRecognizer,
	pdfText ports.PDFTextExtractor,
	writer ports.ResultWriter,
	model string,
) *TextExtractionUseCase {
	return &TextExtractionUseCase{
		recognizer: recognizer,
		pdfText:    pdfText,
		writer:     writer,
		model:      model,
	}
}

func (uc *TextExtractionUseCase) FromBytes(ctx context.Context, sourceFile, mimeType string, data []byte) *domain.OCRResult {
	var text string
	var err error

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		text, err = uc.recognizer.RecognizeImage(ctx, mimeType, data)
	case mimeType == "application/pdf":
		text, err = uc.pdfText.Extract(bytes.NewReader(data), int64(len(data)))
	default:
		err = domain.WrapError(domain.ErrUnsupportedDocument, "extract text", fmt.Errorf("mime type %q", mimeType))
	}
	if err != nil {
		return domain.NewOCRError(sourceFile, err.Error())
	}
	// Scanned PDFs without a text layer extract to nothing; that is an
	// extraction failure, not an empty success.
	if mimeType == "application/pdf" && text == "" {
		return domain.NewOCRError(sourceFile, "no text layer in PDF")
	}

	return &domain.OCRResult{
		Status:    domain.ResultSuccess,
		Text:      text,
		FilePath:  sourceFile,
		MimeType:  mimeType,
		Model:     uc.model,
		CharCount: len(text),
		Timestamp: time.Now().UTC(),
	}
}

// RunFile processes a document from disk and persists the OCR result file.
// The returned result always reflects what was written, error status included.
func (uc *TextExtractionUseCase) RunFile(ctx context.Context, path string) (*domain.OCRResult, string, error) {
	var res *domain.OCRResult

	data, err := os.ReadFile(path)
	if err != nil {
		res = domain.NewOCRError(path, fmt.Sprintf("read file: %v", err))
	} else {
		res = uc.FromBytes(ctx, path, DetectMIMEType(path), data)
	}

	resultPath, err := uc.writer.WriteOCRResult(res)
	if err != nil {
		return res, "", fmt.Errorf("write ocr result: %w", err)
	}
	return res, resultPath, nil
}

// DetectMIMEType maps a file extension to the MIME type the extraction
// pipeline understands. Unknown extensions come back empty.
func DetectMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".pdf":
		return "application/pdf"
	default:
		return ""
	}
}
