package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/claimsight/claimsight/internal/core/domain"
)

func TestWriteClaimsReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.xlsx")

	valid := true
	claims := []domain.Claim{
		{
			ID:           "claim-1",
			Filename:     "front.png",
			Status:       domain.ClaimReady,
			DocumentType: domain.DocStatementFront,
			Confidence:   "high",
			Record: &domain.ClaimRecord{
				Policyholder: domain.PolicyholderInformation{Name: "Jane Doe"},
				Accident:     domain.AccidentInformation{DateOfIncident: "2026-08-01"},
				Damages:      []domain.DamageItem{{PartName: "front bumper"}},
			},
			Evaluation: &domain.PolicyEvaluation{
				Coverage:  domain.CoverageAssessment{CoverageApplicability: "covered"},
				Liability: domain.LiabilityAssessment{AtFaultParty: "third_party"},
				Validity:  domain.ClaimValidity{IsClaimValid: &valid},
			},
			CreatedAt: time.Now().UTC(),
		},
		{
			ID:       "claim-2",
			Filename: "back.png",
			Status:   domain.ClaimFailed,
			Error:    "ocr failed",
		},
	}

	if err := WriteClaimsReport(path, claims); err != nil {
		t.Fatalf("WriteClaimsReport() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(sheetName, "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "claim-1" {
		t.Fatalf("unexpected A2: %q", got)
	}
	got, err = f.GetCellValue(sheetName, "F2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "Jane Doe" {
		t.Fatalf("unexpected F2: %q", got)
	}
	got, err = f.GetCellValue(sheetName, "K2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "yes" {
		t.Fatalf("unexpected K2: %q", got)
	}
	got, err = f.GetCellValue(sheetName, "L3")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "ocr failed" {
		t.Fatalf("unexpected L3: %q", got)
	}
}
