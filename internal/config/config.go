// Package config loads and validates wikigen configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = ".wikigen.yaml"

// DataDirName is the per-project data directory holding the page database
// and locks.
const DataDirName = ".wikigen"

// Config is the complete wikigen configuration.
type Config struct {
	Version    int              `yaml:"version"`
	Search     SearchConfig     `yaml:"search"`
	Embeddings EmbeddingsConfig `yaml:"embeddings"`
	Log        LogConfig        `yaml:"log"`
}

// SearchConfig configures hybrid search defaults.
type SearchConfig struct {
	// KeywordWeight scales the TF-IDF component of fused scores.
	KeywordWeight float64 `yaml:"keyword_weight"`
	// SemanticWeight scales the cosine component of fused scores.
	SemanticWeight float64 `yaml:"semantic_weight"`
	// Threshold drops fused results scoring below it; <= 0 disables.
	Threshold float64 `yaml:"threshold"`
	// MaxResults is the default result list length.
	MaxResults int `yaml:"max_results"`
	// BatchSize bounds concurrent embedding calls while indexing.
	BatchSize int `yaml:"batch_size"`
}

// EmbeddingsConfig configures the embedding provider.
type EmbeddingsConfig struct {
	// Provider selects the embedder: "remote" or "random".
	Provider string `yaml:"provider"`
	// Host is the embedding API base URL (remote provider).
	Host string `yaml:"host"`
	// Model is the embedding model name (remote provider).
	Model string `yaml:"model"`
	// Dimensions is the embedding dimension; 0 means autodetect.
	Dimensions int `yaml:"dimensions"`
	// CacheSize is the LRU embedding cache capacity.
	CacheSize int `yaml:"cache_size"`
	// Timeout is the per-request provider timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// File is the log file path; empty selects the default location.
	File string `yaml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Search: SearchConfig{
			KeywordWeight:  0.4,
			SemanticWeight: 0.6,
			Threshold:      0,
			MaxResults:     10,
			BatchSize:      100,
		},
		Embeddings: EmbeddingsConfig{
			Provider:   "random",
			Host:       "http://localhost:8642",
			Model:      "text-embedding-3-small",
			Dimensions: 1536,
			CacheSize:  1000,
			Timeout:    60 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, overlaying defaults, then applies
// environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads ROOT/.wikigen.yaml when present, otherwise defaults
// with environment overrides applied.
func LoadOrDefault(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	cfg := Default()
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies WIKIGEN_* environment variables, which take
// priority over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WIKIGEN_KEYWORD_WEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Search.KeywordWeight = f
		}
	}
	if v := os.Getenv("WIKIGEN_SEMANTIC_WEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Search.SemanticWeight = f
		}
	}
	if v := os.Getenv("WIKIGEN_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv("WIKIGEN_EMBED_PROVIDER"); v != "" {
		c.Embeddings.Provider = v
	}
	if v := os.Getenv("WIKIGEN_EMBED_HOST"); v != "" {
		c.Embeddings.Host = v
	}
	if v := os.Getenv("WIKIGEN_EMBED_MODEL"); v != "" {
		c.Embeddings.Model = v
	}
	if v := os.Getenv("WIKIGEN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Search.KeywordWeight < 0 || c.Search.SemanticWeight < 0 {
		return fmt.Errorf("search weights must be non-negative")
	}
	if c.Search.KeywordWeight == 0 && c.Search.SemanticWeight == 0 {
		return fmt.Errorf("at least one search weight must be positive")
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.Search.BatchSize)
	}
	switch c.Embeddings.Provider {
	case "remote", "random", "":
	default:
		return fmt.Errorf("unknown embeddings provider %q", c.Embeddings.Provider)
	}
	return nil
}

// DataDir returns the data directory under root, creating it if needed.
func DataDir(root string) (string, error) {
	dir := filepath.Join(root, DataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}
