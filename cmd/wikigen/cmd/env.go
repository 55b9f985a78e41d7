package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/docsmiths/wikigen/internal/config"
	"github.com/docsmiths/wikigen/internal/embed"
	wikierrors "github.com/docsmiths/wikigen/internal/errors"
	"github.com/docsmiths/wikigen/internal/search"
	"github.com/docsmiths/wikigen/internal/store"
)

// pageDBName is the page database file inside the data directory.
const pageDBName = "pages.db"

// env bundles the open resources a command needs.
type env struct {
	cfg    *config.Config
	pages  *store.PageStore
	engine *search.Engine

	embedder embed.Embedder
}

// close releases the environment's resources.
func (e *env) close() {
	if e.embedder != nil {
		_ = e.embedder.Close()
	}
	if e.pages != nil {
		_ = e.pages.Close()
	}
}

// openEnv loads configuration, opens the page store, and builds the search
// engine. When index is true, all stored pages are loaded into the engine.
func openEnv(ctx context.Context, index bool) (*env, error) {
	cfg, err := config.LoadOrDefault(rootDir)
	if err != nil {
		return nil, err
	}

	dataDir, err := config.DataDir(rootDir)
	if err != nil {
		return nil, err
	}

	pages, err := store.NewPageStore(filepath.Join(dataDir, pageDBName))
	if err != nil {
		return nil, wikierrors.StorageError("open page database", err).
			WithSuggestion("check that the data directory is writable")
	}

	embedder, err := embed.New(ctx, cfg.Embeddings)
	if err != nil {
		_ = pages.Close()
		return nil, err
	}

	e := &env{
		cfg:      cfg,
		pages:    pages,
		embedder: embedder,
		engine:   search.NewEngine(embedder, search.WithBatchSize(cfg.Search.BatchSize)),
	}

	if index {
		stored, err := pages.ListPages(ctx)
		if err != nil {
			e.close()
			return nil, err
		}
		docs := make([]*store.Document, len(stored))
		for i, p := range stored {
			docs[i] = p.Document()
		}
		if err := e.engine.Index(ctx, docs); err != nil {
			e.close()
			return nil, fmt.Errorf("index stored pages: %w", err)
		}
	}

	return e, nil
}
