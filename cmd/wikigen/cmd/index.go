package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/docsmiths/wikigen/internal/config"
	wikierrors "github.com/docsmiths/wikigen/internal/errors"
	"github.com/docsmiths/wikigen/internal/ignore"
	"github.com/docsmiths/wikigen/internal/output"
	"github.com/docsmiths/wikigen/internal/store"
)

// indexLockName guards the data directory against concurrent indexers.
const indexLockName = "index.lock"

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index <dir>",
		Short: "Ingest markdown pages into the wiki index",
		Long: `Scan a directory for markdown files, store them as wiki pages,
and build the hybrid search index.

Examples:
  wikigen index docs/
  wikigen index . --root /path/to/project`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd.Context(), cmd, args[0])
		},
	}
}

func runIndex(ctx context.Context, cmd *cobra.Command, dir string) error {
	out := output.New(cmd.OutOrStdout())

	dataDir, err := config.DataDir(rootDir)
	if err != nil {
		return err
	}

	// One indexer at a time; readers are unaffected.
	lock := flock.New(filepath.Join(dataDir, indexLockName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire index lock: %w", err)
	}
	if !locked {
		return wikierrors.New(wikierrors.ErrCodeIndexLocked,
			fmt.Sprintf("another indexer holds the lock at %s", lock.Path()), nil).
			WithSuggestion("wait for the running wikigen index to finish and retry")
	}
	defer func() { _ = lock.Unlock() }()

	pages, err := collectPages(dir)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		out.Println("No markdown pages found.")
		return nil
	}

	e, err := openEnv(ctx, false)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.pages.SavePages(ctx, pages); err != nil {
		return err
	}

	docs := make([]*store.Document, len(pages))
	for i, p := range pages {
		docs[i] = p.Document()
	}
	start := time.Now()
	if err := e.engine.Index(ctx, docs); err != nil {
		return err
	}

	out.Successf("Indexed %d pages in %s", len(pages), time.Since(start).Round(time.Millisecond))
	return nil
}

// collectPages walks dir for markdown files and converts them to pages.
// Exclusions come from the directory's .wikigenignore plus the built-in
// defaults.
func collectPages(dir string) ([]*store.Page, error) {
	rules, err := ignore.Load(dir)
	if err != nil {
		return nil, err
	}

	var pages []*store.Page
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if rules.Match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") || rules.Match(rel, false) {
			return nil
		}

		page, err := loadPage(dir, path)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return pages, nil
}

// loadPage reads one markdown file into a page. The page ID is the path
// relative to the scanned directory; the category is its first path
// element.
func loadPage(dir, path string) (*store.Page, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	category := ""
	if i := strings.Index(rel, "/"); i > 0 {
		category = rel[:i]
	}

	return &store.Page{
		ID:        rel,
		Title:     pageTitle(string(content), rel),
		Category:  category,
		Tags:      pageTags(rel),
		Content:   string(content),
		FilePath:  rel,
		Language:  "markdown",
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// pageTitle extracts the first markdown heading, falling back to the file
// name without extension.
func pageTitle(content, rel string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	base := filepath.Base(rel)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// pageTags derives tags from the page's directory path elements.
func pageTags(rel string) []string {
	parts := strings.Split(rel, "/")
	if len(parts) <= 1 {
		return nil
	}
	return parts[:len(parts)-1]
}
