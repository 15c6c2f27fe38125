package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claimsight/claimsight/internal/core/domain"
)

type recognizerFake struct {
	text     string
	err      error
	mimeType string
}

func (f *recognizerFake) RecognizeImage(_ context.Context, mimeType string, _ []byte) (string, error) {
	f.mimeType = mimeType
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type pdfTextFake struct {
	text   string
	err    error
	called bool
}

func (f *pdfTextFake) Extract(io.ReaderAt, int64) (string, error) {
	f.called = true
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type resultWriterFake struct {
	ocrResults        []*domain.OCRResult
	structuredResults []*domain.StructuredResult
	structuredSources []string
	err               error
}

func (f *resultWriterFake) WriteOCRResult(res *domain.OCRResult) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.ocrResults = append(f.ocrResults, res)
	return "ocr_results/" + res.FilePath + "_ocr_result.json", nil
}

func (f *resultWriterFake) WriteStructuredResult(sourceFile string, res *domain.StructuredResult) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.structuredResults = append(f.structuredResults, res)
	f.structuredSources = append(f.structuredSources, sourceFile)
	return "structured_results/" + sourceFile + "_structured.json", nil
}

func TestFromBytesRecognizesImage(t *testing.T) {
	rec := &recognizerFake{text: "CLAIM NUMBER: CL-123"}
	uc := NewTextExtractionUseCase(rec, &pdfTextFake{}, &resultWriterFake{}, "gpt-4.1-mini")

	res := uc.FromBytes(context.Background(), "front.png", "image/png", []byte{0x89})
	if res.Status != domain.ResultSuccess {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Text != "CLAIM NUMBER: CL-123" || res.CharCount != len(res.Text) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Model != "gpt-4.1-mini" {
		t.Fatalf("expected model recorded, got %q", res.Model)
	}
	if rec.mimeType != "image/png" {
		t.Fatalf("expected mime type forwarded, got %q", rec.mimeType)
	}
}

func TestFromBytesRoutesPDFToTextLayer(t *testing.T) {
	pdfFake := &pdfTextFake{text: "statement text"}
	uc := NewTextExtractionUseCase(&recognizerFake{}, pdfFake, &resultWriterFake{}, "gpt-4.1-mini")

	res := uc.FromBytes(context.Background(), "scan.pdf", "application/pdf", []byte("%PDF"))
	if res.Status != domain.ResultSuccess || res.Text != "statement text" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !pdfFake.called {
		t.Fatalf("expected pdf extractor called")
	}
}

func TestFromBytesEmptyPDFTextLayerProducesErrorResult(t *testing.T) {
	pdfFake := &pdfTextFake{text: ""}
	uc := NewTextExtractionUseCase(&recognizerFake{}, pdfFake, &resultWriterFake{}, "m")

	res := uc.FromBytes(context.Background(), "scan.pdf", "application/pdf", []byte("%PDF"))
	if res.Status != domain.ResultError {
		t.Fatalf("expected error result, got %+v", res)
	}
	if !strings.Contains(res.Error, "no text layer") {
		t.Fatalf("unexpected error message: %q", res.Error)
	}
	if !pdfFake.called {
		t.Fatalf("expected pdf extractor called")
	}
}

func TestFromBytesUnsupportedMimeProducesErrorResult(t *testing.T) {
	uc := NewTextExtractionUseCase(&recognizerFake{}, &pdfTextFake{}, &resultWriterFake{}, "m")

	res := uc.FromBytes(context.Background(), "notes.docx", "application/msword", []byte{0x1})
	if res.Status != domain.ResultError {
		t.Fatalf("expected error result, got %+v", res)
	}
	if !strings.Contains(res.Error, "unsupported document type") {
		t.Fatalf("unexpected error message: %q", res.Error)
	}
	if res.FilePath != "notes.docx" {
		t.Fatalf("expected file path preserved, got %q", res.FilePath)
	}
}

func TestFromBytesRecognizerFailureProducesErrorResult(t *testing.T) {
	uc := NewTextExtractionUseCase(&recognizerFake{err: errors.New("endpoint down")}, &pdfTextFake{}, &resultWriterFake{}, "m")

	res := uc.FromBytes(context.Background(), "front.png", "image/png", []byte{0x1})
	if res.Status != domain.ResultError {
		t.Fatalf("expected error result, got %+v", res)
	}
	if !strings.Contains(res.Error, "endpoint down") {
		t.Fatalf("unexpected error message: %q", res.Error)
	}
}

func TestRunFileWritesResultForMissingFile(t *testing.T) {
	writer := &resultWriterFake{}
	uc := NewTextExtractionUseCase(&recognizerFake{}, &pdfTextFake{}, writer, "m")

	res, path, err := uc.RunFile(context.Background(), "/no/such/file.png")
	if err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if res.Status != domain.ResultError {
		t.Fatalf("expected error result, got %+v", res)
	}
	if len(writer.ocrResults) != 1 {
		t.Fatalf("expected result written, got %d", len(writer.ocrResults))
	}
	if path == "" {
		t.Fatalf("expected result path")
	}
}

func TestRunFileExtractsImageFromDisk(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "front.png")
	if err := os.WriteFile(imgPath, []byte{0x89, 0x50, 0x4e, 0x47}, 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	writer := &resultWriterFake{}
	uc := NewTextExtractionUseCase(&recognizerFake{text: "hello"}, &pdfTextFake{}, writer, "m")

	res, _, err := uc.RunFile(context.Background(), imgPath)
	if err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if res.Status != domain.ResultSuccess || res.Text != "hello" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.MimeType != "image/png" {
		t.Fatalf("expected detected mime type, got %q", res.MimeType)
	}
}

func TestDetectMIMEType(t *testing.T) {
	cases := map[string]string{
		"a.png":     "image/png",
		"b.JPG":     "image/jpeg",
		"c.jpeg":    "image/jpeg",
		"d.pdf":     "application/pdf",
		"e.tiff":    "image/tiff",
		"f.docx":    "",
		"noext":     "",
		"g.webp":    "image/webp",
		"dir/h.bmp": "image/bmp",
	}
	for path, want := range cases {
		if got := DetectMIMEType(path); got != want {
			t.Fatalf("DetectMIMEType(%q) = %q, want %q", path, got, want)
		}
	}
}
