package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input), "level %q", tt.input)
	}
}

func TestSetup_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	logger, cleanup, err := Setup(Config{Level: "info", FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	require.NoError(t, err)

	logger.Info("indexing complete", slog.Int("pages", 12))
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.SplitN(string(data), "\n", 2)[0]), &entry))
	assert.Equal(t, "indexing complete", entry["msg"])
	assert.Equal(t, float64(12), entry["pages"])
}

func TestSetup_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	logger, cleanup, err := Setup(Config{Level: "warn", FilePath: path})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestRotatingWriter_RotatesAtSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	w, err := NewRotatingWriter(path, 1, 3)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	// Force the size limit down to trigger rotation quickly.
	w.maxSize = 64

	line := []byte(strings.Repeat("x", 40) + "\n")
	for i := 0; i < 4; i++ {
		_, err := w.Write(line)
		require.NoError(t, err)
	}

	_, err = os.Stat(path)
	assert.NoError(t, err, "current file exists")
	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "rotated file exists")
}

func TestRotatingWriter_DropsOldestBeyondMaxFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	w.maxSize = 10

	// Each write exceeds the limit, so every call after the first rotates.
	for i := 0; i < 6; i++ {
		_, err := w.Write([]byte("0123456789AB"))
		require.NoError(t, err)
	}

	_, err = os.Stat(path + ".2")
	assert.NoError(t, err, "keeps maxFiles rotated logs")
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err), "oldest beyond maxFiles is dropped")
}

func TestNewRotatingWriter_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logs", "app.log")

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}
