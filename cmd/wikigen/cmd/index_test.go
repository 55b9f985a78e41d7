package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectPages(t *testing.T) {
	// Given: a docs tree with markdown, non-markdown, and a dot directory
	dir := t.TempDir()
	writeTestFile(t, dir, "readme.md", "# Readme\n\nTop level page.")
	writeTestFile(t, dir, "guides/setup.md", "# Setup Guide\n\nInstall steps.")
	writeTestFile(t, dir, "guides/deep/advanced.md", "No heading here.")
	writeTestFile(t, dir, "guides/notes.txt", "not markdown")
	writeTestFile(t, dir, ".hidden/secret.md", "# Secret")

	// When: collecting
	pages, err := collectPages(dir)
	require.NoError(t, err)

	// Then: only visible markdown files become pages
	require.Len(t, pages, 3)
	ids := make(map[string]bool)
	for _, p := range pages {
		ids[p.ID] = true
	}
	assert.True(t, ids["readme.md"])
	assert.True(t, ids["guides/setup.md"])
	assert.True(t, ids["guides/deep/advanced.md"])
}

func TestLoadPage(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "guides/setup.md", "# Setup Guide\n\nInstall steps.")

	page, err := loadPage(dir, filepath.Join(dir, "guides", "setup.md"))
	require.NoError(t, err)

	assert.Equal(t, "guides/setup.md", page.ID)
	assert.Equal(t, "Setup Guide", page.Title)
	assert.Equal(t, "guides", page.Category)
	assert.Equal(t, []string{"guides"}, page.Tags)
	assert.Equal(t, "markdown", page.Language)
	assert.Contains(t, page.Content, "Install steps.")
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "My Page", pageTitle("# My Page\n\nBody", "dir/file.md"))
	assert.Equal(t, "Later Heading", pageTitle("intro text\n# Later Heading\n", "x.md"))
	assert.Equal(t, "file", pageTitle("no heading at all", "dir/file.md"))
	assert.Equal(t, "Indented", pageTitle("   # Indented\n", "x.md"))
}

func TestPageTags(t *testing.T) {
	assert.Nil(t, pageTags("top.md"))
	assert.Equal(t, []string{"guides"}, pageTags("guides/setup.md"))
	assert.Equal(t, []string{"guides", "deep"}, pageTags("guides/deep/page.md"))
}
