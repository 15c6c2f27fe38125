package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/claimsight/claimsight/internal/core/domain"
)

func TestWriteOCRResultUsesSourceBaseName(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, dir)

	res := &domain.OCRResult{
		Status:    domain.ResultSuccess,
		Text:      "CLAIM NUMBER: CL-123",
		FilePath:  "/statements/front_page.png",
		CharCount: 20,
		Timestamp: time.Now().UTC(),
	}
	path, err := w.WriteOCRResult(res)
	if err != nil {
		t.Fatalf("WriteOCRResult() error = %v", err)
	}
	if filepath.Base(path) != "front_page_ocr_result.json" {
		t.Fatalf("unexpected result file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	var decoded domain.OCRResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if decoded.Status != domain.ResultSuccess || decoded.Text != res.Text {
		t.Fatalf("unexpected decoded result: %+v", decoded)
	}
}

func TestWriteStructuredResultStripsOCRSuffix(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, dir)

	res := &domain.StructuredResult{
		Status: domain.ResultSuccess,
		Record: &domain.ClaimRecord{DocumentType: domain.DocStatementFront},
		Metadata: domain.RecordMetadata{
			SourceFile:          "front_page_ocr_result.json",
			ProcessingTimestamp: time.Now().UTC(),
		},
	}
	path, err := w.WriteStructuredResult("front_page_ocr_result.json", res)
	if err != nil {
		t.Fatalf("WriteStructuredResult() error = %v", err)
	}
	if filepath.Base(path) != "front_page_structured.json" {
		t.Fatalf("unexpected result file name: %s", path)
	}
}

func TestWriteCreatesMissingDirectories(t *testing.T) {
	root := t.TempDir()
	w := New(filepath.Join(root, "nested", "ocr"), filepath.Join(root, "nested", "structured"))

	if _, err := w.WriteOCRResult(domain.NewOCRError("scan.pdf", "unreadable")); err != nil {
		t.Fatalf("WriteOCRResult() error = %v", err)
	}
	if _, err := w.WriteStructuredResult("scan.pdf", domain.NewStructuredError("scan.pdf", "no text", "")); err != nil {
		t.Fatalf("WriteStructuredResult() error = %v", err)
	}
}
