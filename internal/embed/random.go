package embed

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// RandomEmbedder produces pseudo-random unit vectors. It is the fallback
// used when no provider is configured or a provider call fails: documents
// still get an embedding of the right shape so the indexing pipeline keeps
// moving, at the cost of semantic quality.
//
// With the default time-based seed, output is not reproducible across runs.
// Tests inject a fixed rand.Source via NewRandomEmbedder.
type RandomEmbedder struct {
	dims int

	mu  sync.Mutex
	rng *rand.Rand
}

var _ Embedder = (*RandomEmbedder)(nil)

// NewRandomEmbedder creates a random embedder with the given dimension and
// source. A nil source is seeded from the current time; dims <= 0 falls back
// to DefaultDimensions.
func NewRandomEmbedder(dims int, src rand.Source) *RandomEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomEmbedder{
		dims: dims,
		rng:  rand.New(src),
	}
}

// Embed returns an L2-normalized random vector. The text argument only
// matters for the interface; the output does not depend on it.
func (e *RandomEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vec := make([]float32, e.dims)
	for i := range vec {
		vec[i] = float32(e.rng.Float64()*2 - 1)
	}
	return normalizeVector(vec), nil
}

// EmbedBatch returns one random unit vector per input text.
func (e *RandomEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i := range texts {
		vec, err := e.Embed(ctx, "")
		if err != nil {
			return nil, err
		}
		results[i] = vec
	}
	return results, nil
}

// Dimensions returns the embedding dimension.
func (e *RandomEmbedder) Dimensions() int { return e.dims }

// ModelName returns the model identifier.
func (e *RandomEmbedder) ModelName() string { return "random" }

// Available always reports true.
func (e *RandomEmbedder) Available(context.Context) bool { return true }

// Close is a no-op.
func (e *RandomEmbedder) Close() error { return nil }
