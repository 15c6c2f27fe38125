package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/claimsight/claimsight/internal/core/domain"
)

const sheetName = "Claims"

var headers = []string{
	"Claim ID", "Filename", "Status", "Document Type", "Confidence",
	"Policy Holder", "Incident Date", "Damaged Parts", "Coverage", "At Fault", "Claim Valid", "Error",
}

// WriteClaimsReport writes a one-row-per-claim XLSX summary for adjusters.
func WriteClaimsReport(path string, claims []domain.Claim) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, claim := range claims {
		values := claimRow(claim)
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write claim row: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func claimRow(claim domain.Claim) []any {
	row := []any{
		claim.ID, claim.Filename, string(claim.Status), string(claim.DocumentType), claim.Confidence,
		"", "", 0, "", "", "", claim.Error,
	}
	if claim.Record != nil {
		row[5] = claim.Record.Policyholder.Name
		row[6] = claim.Record.Accident.DateOfIncident
		row[7] = len(claim.Record.Damages)
	}
	if claim.Evaluation != nil {
		row[8] = claim.Evaluation.Coverage.CoverageApplicability
		row[9] = claim.Evaluation.Liability.AtFaultParty
		if claim.Evaluation.Validity.IsClaimValid != nil {
			if *claim.Evaluation.Validity.IsClaimValid {
				row[10] = "yes"
			} else {
				row[10] = "no"
			}
		}
	}
	return row
}
