package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/claimsight/claimsight/internal/core/domain"
)

type libraryFake struct {
	docs  []domain.PolicyDocument
	err   error
	query string
	limit int
}

func (f *libraryFake) Search(query string, limit int) ([]domain.PolicyDocument, error) {
	f.query = query
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

type evaluatorFake struct {
	eval     *domain.PolicyEvaluation
	raw      string
	err      error
	policies []domain.PolicyDocument
}

func (f *evaluatorFake) Evaluate(_ context.Context, _ *domain.ClaimRecord, policies []domain.PolicyDocument) (*domain.PolicyEvaluation, string, error) {
	f.policies = policies
	if f.err != nil {
		return nil, f.raw, f.err
	}
	return f.eval, f.raw, nil
}

func TestEvaluateSearchesWithClaimTerms(t *testing.T) {
	library := &libraryFake{docs: []domain.PolicyDocument{{ID: "pol-1"}}}
	evaluator := &evaluatorFake{eval: &domain.PolicyEvaluation{}}
	uc := NewEvaluatePolicyUseCase(library, evaluator, 3)

	record := &domain.ClaimRecord{
		Vehicle:  domain.VehicleInformation{Year: "2021", Make: "Toyota", Model: "Camry"},
		Incident: domain.IncidentDescription{Description: "rear-ended at a stop light"},
		Damages:  []domain.DamageItem{{PartName: "rear bumper"}},
	}
	if _, err := uc.Evaluate(context.Background(), record); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if library.limit != 3 {
		t.Fatalf("expected topK 3, got %d", library.limit)
	}
	for _, term := range []string{"Toyota", "rear-ended", "rear bumper"} {
		if !strings.Contains(library.query, term) {
			t.Fatalf("expected %q in search query %q", term, library.query)
		}
	}
	if len(evaluator.policies) != 1 {
		t.Fatalf("expected retrieved policies forwarded, got %d", len(evaluator.policies))
	}
}

func TestEvaluateFallsBackOnUnparsableResponse(t *testing.T) {
	library := &libraryFake{}
	evaluator := &evaluatorFake{
		raw: "not json at all",
		err: domain.WrapError(domain.ErrUnparsableResponse, "parse policy evaluation", errors.New("bad json")),
	}
	uc := NewEvaluatePolicyUseCase(library, evaluator, 5)

	eval, err := uc.Evaluate(context.Background(), &domain.ClaimRecord{})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.Coverage.CoverageApplicability != "unclear" {
		t.Fatalf("expected fallback coverage unclear, got %+v", eval.Coverage)
	}
	if eval.RawResponse != "not json at all" {
		t.Fatalf("expected raw response preserved, got %q", eval.RawResponse)
	}
	if eval.Validity.Confidence != "low" {
		t.Fatalf("expected fallback low confidence, got %q", eval.Validity.Confidence)
	}
}

func TestEvaluatePropagatesTransportError(t *testing.T) {
	library := &libraryFake{}
	evaluator := &evaluatorFake{err: errors.New("endpoint down")}
	uc := NewEvaluatePolicyUseCase(library, evaluator, 5)

	_, err := uc.Evaluate(context.Background(), &domain.ClaimRecord{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "endpoint down") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvaluateLibraryErrorIsFatal(t *testing.T) {
	library := &libraryFake{err: errors.New("manifest missing")}
	uc := NewEvaluatePolicyUseCase(library, &evaluatorFake{}, 5)

	_, err := uc.Evaluate(context.Background(), &domain.ClaimRecord{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "search policy library") {
		t.Fatalf("unexpected error: %v", err)
	}
}
