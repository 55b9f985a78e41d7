package embed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docsmiths/wikigen/internal/config"
)

// New builds the embedder chain from configuration.
//
// Provider "remote" connects to the LLM embedding API and wraps it in the
// LRU cache; if the endpoint is unreachable the random fallback is used so
// indexing keeps working with degraded embeddings. Provider "random" (or
// empty) uses the fallback directly.
func New(ctx context.Context, cfg config.EmbeddingsConfig) (Embedder, error) {
	switch cfg.Provider {
	case "remote":
		remote, err := NewRemoteEmbedder(ctx, RemoteConfig{
			Host:       cfg.Host,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Timeout:    cfg.Timeout,
		})
		if err != nil {
			slog.Warn("embedding endpoint unavailable, falling back to random embeddings",
				slog.String("host", cfg.Host),
				slog.String("error", err.Error()))
			return NewRandomEmbedder(cfg.Dimensions, nil), nil
		}
		return NewCachedEmbedder(remote, cfg.CacheSize), nil

	case "random", "":
		return NewRandomEmbedder(cfg.Dimensions, nil), nil

	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
