package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimsight/claimsight/internal/core/domain"
	"github.com/claimsight/claimsight/internal/core/ports"
)

// EvaluatePolicyUseCase grounds the adjuster model with the most relevant
// policy documents and attaches its assessment to a structured record.
type EvaluatePolicyUseCase struct {
	library   ports.PolicyLibrary
	evaluator ports.PolicyEvaluator
	topK      int
}

func NewEvaluatePolicyUseCase(library ports.PolicyLibrary, evaluator ports.PolicyEvaluator, topK int) *EvaluatePolicyUseCase {
	if topK <= 0 {
		topK = 5
	}
	return &EvaluatePolicyUseCase{
		library:   library,
		evaluator: evaluator,
		topK:      topK,
	}
}

func (uc *EvaluatePolicyUseCase) Evaluate(ctx context.Context, record *domain.ClaimRecord) (*domain.PolicyEvaluation, error) {
	policies, err := uc.library.Search(buildPolicyQuery(record), uc.topK)
	if err != nil {
		return nil, fmt.Errorf("search policy library: %w", err)
	}

	eval, raw, err := uc.evaluator.Evaluate(ctx, record, policies)
	if err != nil {
		if domain.IsKind(err, domain.ErrUnparsableResponse) {
			return domain.FallbackPolicyEvaluation(raw), nil
		}
		return nil, fmt.Errorf("evaluate policy: %w", err)
	}
	return eval, nil
}

func buildPolicyQuery(record *domain.ClaimRecord) string {
	var parts []string
	if record.Vehicle.Year != "" || record.Vehicle.Make != "" || record.Vehicle.Model != "" {
		parts = append(parts, strings.TrimSpace(record.Vehicle.Year+" "+record.Vehicle.Make+" "+record.Vehicle.Model))
	}
	if record.Incident.Description != "" {
		parts = append(parts, record.Incident.Description)
	}
	for _, damage := range record.Damages {
		if damage.PartName != "" {
			parts = append(parts, damage.PartName)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "auto insurance claim")
	}
	return strings.Join(parts, " ")
}
