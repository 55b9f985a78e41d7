// Package embed provides the embedding provider boundary: a remote HTTP
// provider for the toolchain's LLM API, a seedable random fallback, and an
// LRU caching wrapper.
package embed

import (
	"context"
	"math"
	"time"
)

const (
	// DefaultDimensions is the embedding dimension assumed when no provider
	// reports one.
	DefaultDimensions = 1536

	// DefaultBatchSize bounds concurrent provider calls during indexing.
	DefaultBatchSize = 100

	// DefaultTimeout is the per-request timeout for remote embedding calls.
	DefaultTimeout = 60 * time.Second

	// DefaultCacheSize is the default number of cached embeddings.
	DefaultCacheSize = 1000
)

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding dimension.
	Dimensions() int

	// ModelName returns the model identifier.
	ModelName() string

	// Available checks if the embedder is ready.
	Available(ctx context.Context) bool

	// Close releases resources.
	Close() error
}

// normalizeVector scales a vector to unit length. Zero vectors are returned
// unchanged.
func normalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return v
	}

	normalized := make([]float32, len(v))
	for i, val := range v {
		normalized[i] = float32(float64(val) / magnitude)
	}
	return normalized
}
