package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	Detection DetectionConfig `yaml:"detection"`
	Review    ReviewConfig    `yaml:"review"`
	Labels    LabelsConfig    `yaml:"labels"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
}

// LLMConfig contains chat completion provider settings
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// EmbeddingConfig contains embedding provider settings
type EmbeddingConfig struct {
	Primary  ProviderConfig `yaml:"primary"`
	Fallback ProviderConfig `yaml:"fallback"`
}

// ProviderConfig contains settings for an embedding provider
type ProviderConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Dimensions int    `yaml:"dimensions"`
}

// QdrantConfig contains vector store connection settings.
// An empty URL leaves the bot in stateless mode.
type QdrantConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// DetectionConfig contains duplicate detection settings
type DetectionConfig struct {
	Enabled             *bool   `yaml:"enabled"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MaxCandidates       int     `yaml:"max_candidates"`
}

// ReviewConfig contains pull request review settings
type ReviewConfig struct {
	Enabled        *bool `yaml:"enabled"`
	ReadyThreshold int   `yaml:"ready_threshold"`
}

// LabelsConfig contains the label names the bot applies
type LabelsConfig struct {
	Duplicate  string `yaml:"duplicate"`
	NeedsTests string `yaml:"needs_tests"`
	HighRisk   string `yaml:"high_risk"`
	Ready      string `yaml:"ready"`
}

// DefaultsConfig contains default behavior settings
type DefaultsConfig struct {
	CommentCooldownHours int `yaml:"comment_cooldown_hours"`
}

// Load reads and parses config from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// FindConfigPath looks for config in common locations
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	paths := []string{
		".github/sift.yaml",
		".github/sift.yml",
		"sift.yaml",
		"sift.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".config", "gh-sift", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return ""
}

// DetectionEnabled reports whether duplicate detection is on (default true)
func (cfg *Config) DetectionEnabled() bool {
	return cfg.Detection.Enabled == nil || *cfg.Detection.Enabled
}

// ReviewEnabled reports whether PR review is on (default true)
func (cfg *Config) ReviewEnabled() bool {
	return cfg.Review.Enabled == nil || *cfg.Review.Enabled
}

// Stateful reports whether a vector store connection is configured
func (cfg *Config) Stateful() bool {
	return cfg.Qdrant.URL != ""
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.Embedding.Primary.Provider == "" {
		cfg.Embedding.Primary.Provider = cfg.LLM.Provider
	}
	if cfg.Embedding.Primary.APIKey == "" {
		cfg.Embedding.Primary.APIKey = cfg.LLM.APIKey
	}
	if cfg.Embedding.Primary.Dimensions == 0 {
		cfg.Embedding.Primary.Dimensions = 1536
	}
	if cfg.Embedding.Fallback.Dimensions == 0 {
		cfg.Embedding.Fallback.Dimensions = 1536
	}

	if cfg.Detection.SimilarityThreshold == 0 {
		cfg.Detection.SimilarityThreshold = 0.85
	}
	if cfg.Detection.MaxCandidates == 0 {
		cfg.Detection.MaxCandidates = 20
	}

	if cfg.Review.ReadyThreshold == 0 {
		cfg.Review.ReadyThreshold = 80
	}

	if cfg.Labels.Duplicate == "" {
		cfg.Labels.Duplicate = "possible-duplicate"
	}
	if cfg.Labels.NeedsTests == "" {
		cfg.Labels.NeedsTests = "needs-tests"
	}
	if cfg.Labels.HighRisk == "" {
		cfg.Labels.HighRisk = "high-risk"
	}
	if cfg.Labels.Ready == "" {
		cfg.Labels.Ready = "ready-for-review"
	}

	if cfg.Defaults.CommentCooldownHours == 0 {
		cfg.Defaults.CommentCooldownHours = 1
	}
}
