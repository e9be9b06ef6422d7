package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "expands env var",
			input:  "${TEST_VAR}",
			expect: "test-value",
		},
		{
			name:   "keeps unset var",
			input:  "${UNSET_VAR}",
			expect: "${UNSET_VAR}",
		},
		{
			name:   "expands in string",
			input:  "https://${TEST_VAR}.example.com",
			expect: "https://test-value.example.com",
		},
		{
			name:   "no vars",
			input:  "plain string",
			expect: "plain string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnvVars(tt.input)
			if result != tt.expect {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, result, tt.expect)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")

	content := `
llm:
  provider: "openai"
  model: "gpt-4o-mini"
  api_key: "test-key"

qdrant:
  url: "http://localhost:6334"

detection:
  similarity_threshold: 0.9
`

	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLM.APIKey != "test-key" {
		t.Errorf("LLM.APIKey = %v, want test-key", cfg.LLM.APIKey)
	}

	if cfg.Qdrant.URL != "http://localhost:6334" {
		t.Errorf("Qdrant.URL = %v, want http://localhost:6334", cfg.Qdrant.URL)
	}
	if !cfg.Stateful() {
		t.Errorf("Stateful() = false with qdrant url set")
	}

	if cfg.Detection.SimilarityThreshold != 0.9 {
		t.Errorf("SimilarityThreshold = %v, want 0.9", cfg.Detection.SimilarityThreshold)
	}

	// Embedding inherits the LLM key when unset
	if cfg.Embedding.Primary.APIKey != "test-key" {
		t.Errorf("Embedding.Primary.APIKey = %v, want test-key", cfg.Embedding.Primary.APIKey)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Detection.SimilarityThreshold != 0.85 {
		t.Errorf("SimilarityThreshold = %v, want 0.85", cfg.Detection.SimilarityThreshold)
	}

	if cfg.Detection.MaxCandidates != 20 {
		t.Errorf("MaxCandidates = %v, want 20", cfg.Detection.MaxCandidates)
	}

	if cfg.Embedding.Primary.Dimensions != 1536 {
		t.Errorf("Dimensions = %v, want 1536", cfg.Embedding.Primary.Dimensions)
	}

	if cfg.Review.ReadyThreshold != 80 {
		t.Errorf("ReadyThreshold = %v, want 80", cfg.Review.ReadyThreshold)
	}

	if cfg.Labels.Duplicate != "possible-duplicate" {
		t.Errorf("Labels.Duplicate = %v, want possible-duplicate", cfg.Labels.Duplicate)
	}
	if cfg.Labels.NeedsTests != "needs-tests" {
		t.Errorf("Labels.NeedsTests = %v, want needs-tests", cfg.Labels.NeedsTests)
	}
	if cfg.Labels.HighRisk != "high-risk" {
		t.Errorf("Labels.HighRisk = %v, want high-risk", cfg.Labels.HighRisk)
	}
	if cfg.Labels.Ready != "ready-for-review" {
		t.Errorf("Labels.Ready = %v, want ready-for-review", cfg.Labels.Ready)
	}

	if !cfg.DetectionEnabled() {
		t.Errorf("DetectionEnabled() = false by default")
	}
	if !cfg.ReviewEnabled() {
		t.Errorf("ReviewEnabled() = false by default")
	}
	if cfg.Stateful() {
		t.Errorf("Stateful() = true without qdrant url")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name: "missing api key",
			mutate: func(cfg *Config) {
				cfg.LLM.APIKey = ""
				cfg.Embedding.Primary.APIKey = ""
			},
			wantErr: true,
		},
		{
			name: "threshold out of range",
			mutate: func(cfg *Config) {
				cfg.Detection.SimilarityThreshold = 1.5
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			mutate: func(cfg *Config) {
				cfg.LLM.Provider = "llamafarm"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LLM: LLMConfig{Provider: "openai", APIKey: "k"}}
			applyDefaults(cfg)
			tt.mutate(cfg)

			errs := Validate(cfg)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}
