package usecase

import (
	"strings"

	"github.com/claimsight/claimsight/internal/core/domain"
)

// Statement forms are two-sided: the front carries policyholder, vehicle and
// accident fields; the back carries the incident narrative, damages, witness
// and signature blocks.
var (
	frontCues = []string{
		"policy number", "policyholder", "policy holder", "claimant id",
		"vehicle information", "vin:", "license plate", "date of incident",
	}
	backCues = []string{
		"description of incident", "description of damages", "witness",
		"police report", "signature", "printed name",
	}
)

// DetectDocumentType guesses front vs. back from textual cues. An empty
// result means the text matched neither side, or matched both equally.
func DetectDocumentType(text string) domain.DocumentType {
	lower := strings.ToLower(text)

	front := 0
	for _, cue := range frontCues {
		if strings.Contains(lower, cue) {
			front++
		}
	}
	back := 0
	for _, cue := range backCues {
		if strings.Contains(lower, cue) {
			back++
		}
	}

	switch {
	case front == back:
		return ""
	case back > front:
		return domain.DocStatementBack
	default:
		return domain.DocStatementFront
	}
}
