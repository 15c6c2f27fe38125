package domain

// PolicyDocument is one entry of the local policy library used as grounding
// material for coverage and liability evaluation.
type PolicyDocument struct {
	ID      string  `json:"id" yaml:"id"`
	Title   string  `json:"title" yaml:"title"`
	Path    string  `json:"-" yaml:"path"`
	Content string  `json:"-" yaml:"-"`
	Score   float64 `json:"score,omitempty" yaml:"-"`
}

// PolicyEvaluation is the adjuster model's assessment of a structured claim.
type PolicyEvaluation struct {
	MatchedPolicy MatchedPolicy       `json:"matched_policy"`
	Coverage      CoverageAssessment  `json:"coverage_assessment"`
	Liability     LiabilityAssessment `json:"liability_assessment"`
	Validity      ClaimValidity       `json:"claim_validity"`
	Notes         string              `json:"notes,omitempty"`
	RawResponse   string              `json:"_raw_response,omitempty"`
}

type MatchedPolicy struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Score                float64 `json:"score"`
	Summary              string  `json:"summary"`
	RawDocumentReference string  `json:"raw_document_reference"`
}

type CoverageAssessment struct {
	CoverageApplicability           string  `json:"coverage_applicability"`
	EstimatedCompanyLiabilityAmount float64 `json:"estimated_company_liability_amount"`
	DeductibleApplicable            bool    `json:"deductible_applicable"`
	DeductibleAmount                float64 `json:"deductible_amount"`
	LimitsMayBeExceeded             bool    `json:"limits_may_be_exceeded"`
	RelevantPolicySections          string  `json:"relevant_policy_sections"`
}

type LiabilityAssessment struct {
	AtFaultParty        string     `json:"at_fault_party"`
	EstimatedFaultSplit FaultSplit `json:"estimated_fault_split"`
	KeyFactors          string     `json:"key_factors"`
}

type FaultSplit struct {
	PolicyholderPercent float64 `json:"policyholder_percent"`
	ThirdPartyPercent   float64 `json:"third_party_percent"`
}

type ClaimValidity struct {
	IsClaimValid   *bool  `json:"is_claim_valid"`
	PrimaryReasons string `json:"primary_reasons"`
	Confidence     string `json:"confidence"`
}

// FallbackPolicyEvaluation keeps downstream readers working when the model's
// reply cannot be parsed as JSON. Mirrors the conservative defaults used for
// human review: unclear coverage, unclear fault, low confidence.
func FallbackPolicyEvaluation(rawResponse string) *PolicyEvaluation {
	return &PolicyEvaluation{
		MatchedPolicy: MatchedPolicy{
			Summary: "Policy evaluation failed to return valid JSON.",
		},
		Coverage: CoverageAssessment{
			CoverageApplicability:  "unclear",
			RelevantPolicySections: "No details; parsing error.",
		},
		Liability: LiabilityAssessment{
			AtFaultParty: "unclear",
			KeyFactors:   "Could not parse model response.",
		},
		Validity: ClaimValidity{
			PrimaryReasons: "Model response could not be parsed.",
			Confidence:     "low",
		},
		Notes:       "Generated by a fallback handler after JSON parsing failed.",
		RawResponse: rawResponse,
	}
}
