package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmiths/wikigen/internal/config"
)

// withRootDir points the CLI at dir for the duration of the test.
func withRootDir(t *testing.T, dir string) {
	t.Helper()
	prev := rootDir
	rootDir = dir
	t.Cleanup(func() { rootDir = prev })
}

func runInit(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newInitCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestInitCmd_WritesTemplateMatchingDefaults(t *testing.T) {
	// Given an empty project root
	dir := t.TempDir()
	withRootDir(t, dir)

	// When init runs
	out := runInit(t)

	// Then the template exists and loads back as the default configuration
	assert.Contains(t, out, "Wrote")
	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestInitCmd_RefusesToOverwriteWithoutForce(t *testing.T) {
	// Given a root with an existing configuration
	dir := t.TempDir()
	withRootDir(t, dir)
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	// When init runs without --force
	out := runInit(t)

	// Then the existing file is untouched
	assert.Contains(t, out, "already exists")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	// Given a root with an existing configuration
	dir := t.TempDir()
	withRootDir(t, dir)
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	// When init runs with --force
	runInit(t, "--force")

	// Then the template replaces the old file
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keyword_weight")
}
