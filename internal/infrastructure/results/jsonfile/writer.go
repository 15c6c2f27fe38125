package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/claimsight/claimsight/internal/core/domain"
)

// Writer persists pipeline outputs as pretty-printed JSON files next to the
// naming convention downstream tools expect: <base>_ocr_result.json and
// <base>_structured.json.
type Writer struct {
	ocrDir        string
	structuredDir string
}

func New(ocrDir, structuredDir string) *Writer {
	if ocrDir == "" {
		ocrDir = "./ocr_results"
	}
	if structuredDir == "" {
		structuredDir = "./structured_results"
	}
	return &Writer{ocrDir: ocrDir, structuredDir: structuredDir}
}

func (w *Writer) WriteOCRResult(res *domain.OCRResult) (string, error) {
	path := filepath.Join(w.ocrDir, baseName(res.FilePath)+"_ocr_result.json")
	if err := writeJSON(path, res); err != nil {
		return "", err
	}
	return path, nil
}

func (w *Writer) WriteStructuredResult(sourceFile string, res *domain.StructuredResult) (string, error) {
	path := filepath.Join(w.structuredDir, baseName(sourceFile)+"_structured.json")
	if err := writeJSON(path, res); err != nil {
		return "", err
	}
	return path, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	// OCR result files feed the structuring stage; strip their suffix so
	// both stages key off the original document name.
	base = strings.TrimSuffix(base, "_ocr_result")
	if base == "" || base == "." {
		base = "result"
	}
	return base
}

func writeJSON(path string, payload any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
