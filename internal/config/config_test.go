package config

import "testing"

func TestLoadUsesPipelineDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("OCR_DEPLOYMENT_NAME", "")
	t.Setenv("MODEL_DEPLOYMENT_NAME", "")
	t.Setenv("POLICY_TOP_K", "")
	t.Setenv("LLM_RETRY_ENABLED", "")

	cfg := Load()
	if cfg.NATSSubject != "claims.received" {
		t.Fatalf("expected default subject claims.received, got %q", cfg.NATSSubject)
	}
	if cfg.OCRDeployment != "gpt-4.1-mini" {
		t.Fatalf("expected default ocr deployment, got %q", cfg.OCRDeployment)
	}
	if cfg.ChatDeployment != "gpt-4o-mini" {
		t.Fatalf("expected default chat deployment, got %q", cfg.ChatDeployment)
	}
	if cfg.PolicyTopK != 5 {
		t.Fatalf("expected default policy top k 5, got %d", cfg.PolicyTopK)
	}
	if cfg.LLMRetryEnabled {
		t.Fatalf("expected llm retries disabled by default")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("POLICY_TOP_K", "3")
	t.Setenv("LLM_RETRY_ENABLED", "true")
	t.Setenv("OCR_RESULTS_DIR", "/tmp/ocr")

	cfg := Load()
	if cfg.PolicyTopK != 3 {
		t.Fatalf("expected policy top k 3, got %d", cfg.PolicyTopK)
	}
	if !cfg.LLMRetryEnabled {
		t.Fatalf("expected llm retries enabled")
	}
	if cfg.OCRResultsDir != "/tmp/ocr" {
		t.Fatalf("expected ocr results dir override, got %q", cfg.OCRResultsDir)
	}
}

func TestLoadFallsBackOnUnparsableInt(t *testing.T) {
	t.Setenv("POLICY_TOP_K", "not-a-number")

	cfg := Load()
	if cfg.PolicyTopK != 5 {
		t.Fatalf("expected fallback policy top k 5, got %d", cfg.PolicyTopK)
	}
}
