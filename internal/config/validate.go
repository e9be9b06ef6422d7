package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors. A non-empty result is
// fatal: the run fails before any comment or label is written.
func Validate(cfg *Config) []error {
	var errs []error

	if cfg.LLM.APIKey == "" {
		errs = append(errs, ValidationError{"llm.api_key", "required"})
	}
	if cfg.LLM.Provider != "openai" && cfg.LLM.Provider != "gemini" {
		errs = append(errs, ValidationError{"llm.provider", "must be 'openai' or 'gemini'"})
	}

	if p := cfg.Embedding.Primary.Provider; p != "openai" && p != "gemini" {
		errs = append(errs, ValidationError{"embedding.primary.provider", "must be 'openai' or 'gemini'"})
	}
	if cfg.Embedding.Primary.APIKey == "" {
		errs = append(errs, ValidationError{"embedding.primary.api_key", "required"})
	}

	if cfg.Detection.SimilarityThreshold < 0 || cfg.Detection.SimilarityThreshold > 1 {
		errs = append(errs, ValidationError{"detection.similarity_threshold", "must be between 0 and 1"})
	}
	if cfg.Detection.MaxCandidates < 1 {
		errs = append(errs, ValidationError{"detection.max_candidates", "must be at least 1"})
	}

	if cfg.Review.ReadyThreshold < 0 || cfg.Review.ReadyThreshold > 100 {
		errs = append(errs, ValidationError{"review.ready_threshold", "must be between 0 and 100"})
	}

	return errs
}
