package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 0.4, cfg.Search.KeywordWeight)
	assert.Equal(t, 0.6, cfg.Search.SemanticWeight)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, 100, cfg.Search.BatchSize)
	assert.Equal(t, "random", cfg.Embeddings.Provider)
	assert.Equal(t, 1536, cfg.Embeddings.Dimensions)
	assert.Equal(t, 60*time.Second, cfg.Embeddings.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	// Given: a partial config file
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  keyword_weight: 0.7
  semantic_weight: 0.3
embeddings:
  provider: remote
  host: http://embed.internal:9000
`), 0o644))

	// When: loading
	cfg, err := Load(path)
	require.NoError(t, err)

	// Then: set fields override, unset fields keep defaults
	assert.Equal(t, 0.7, cfg.Search.KeywordWeight)
	assert.Equal(t, 0.3, cfg.Search.SemanticWeight)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, "remote", cfg.Embeddings.Provider)
	assert.Equal(t, "http://embed.internal:9000", cfg.Embeddings.Host)
	assert.Equal(t, "text-embedding-3-small", cfg.Embeddings.Model)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("search: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadOrDefault(t *testing.T) {
	// Without a file, defaults apply.
	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0.4, cfg.Search.KeywordWeight)

	// With a file, it is loaded.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`
search:
  max_results: 25
`), 0o644))
	cfg, err = LoadOrDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Search.MaxResults)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WIKIGEN_KEYWORD_WEIGHT", "0.9")
	t.Setenv("WIKIGEN_SEMANTIC_WEIGHT", "0.1")
	t.Setenv("WIKIGEN_MAX_RESULTS", "42")
	t.Setenv("WIKIGEN_EMBED_PROVIDER", "remote")
	t.Setenv("WIKIGEN_EMBED_HOST", "http://other:1234")
	t.Setenv("WIKIGEN_EMBED_MODEL", "custom-model")
	t.Setenv("WIKIGEN_LOG_LEVEL", "debug")

	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Search.KeywordWeight)
	assert.Equal(t, 0.1, cfg.Search.SemanticWeight)
	assert.Equal(t, 42, cfg.Search.MaxResults)
	assert.Equal(t, "remote", cfg.Embeddings.Provider)
	assert.Equal(t, "http://other:1234", cfg.Embeddings.Host)
	assert.Equal(t, "custom-model", cfg.Embeddings.Model)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesBeatFileValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`
search:
  max_results: 5
`), 0o644))
	t.Setenv("WIKIGEN_MAX_RESULTS", "50")

	cfg, err := LoadOrDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Search.MaxResults)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"negative keyword weight", func(c *Config) { c.Search.KeywordWeight = -0.1 }, "non-negative"},
		{"negative semantic weight", func(c *Config) { c.Search.SemanticWeight = -1 }, "non-negative"},
		{"both weights zero", func(c *Config) {
			c.Search.KeywordWeight = 0
			c.Search.SemanticWeight = 0
		}, "at least one"},
		{"zero max results", func(c *Config) { c.Search.MaxResults = 0 }, "max_results"},
		{"zero batch size", func(c *Config) { c.Search.BatchSize = 0 }, "batch_size"},
		{"bad provider", func(c *Config) { c.Embeddings.Provider = "llama" }, "provider"},
		{"empty provider allowed", func(c *Config) { c.Embeddings.Provider = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDataDir(t *testing.T) {
	root := t.TempDir()

	dir, err := DataDir(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DataDirName), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Creating twice is a no-op.
	again, err := DataDir(root)
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}
