package embed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedEmbedder wraps an Embedder with an LRU cache so repeated texts
// (typically queries) do not hit the provider twice.
type CachedEmbedder struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

var _ Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder creates a cached embedder wrapping inner. size <= 0
// falls back to DefaultCacheSize.
func NewCachedEmbedder(inner Embedder, size int) *CachedEmbedder {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, []float32](size)
	return &CachedEmbedder{inner: inner, cache: cache}
}

// cacheKey hashes text together with the model name so a model switch never
// serves stale vectors.
func (c *CachedEmbedder) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text + "\x00" + c.inner.ModelName()))
	return hex.EncodeToString(sum[:])
}

// Embed returns the cached embedding when present, otherwise computes and
// caches it.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.cacheKey(text)
	if vec, ok := c.cache.Get(key); ok {
		return vec, nil
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, vec)
	return vec, nil
}

// EmbedBatch checks the cache per text and batches only the misses to the
// inner embedder.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	results := make([][]float32, len(texts))
	missIndices := make([]int, 0, len(texts))
	missTexts := make([]string, 0, len(texts))

	for i, text := range texts {
		if vec, ok := c.cache.Get(c.cacheKey(text)); ok {
			results[i] = vec
		} else {
			missIndices = append(missIndices, i)
			missTexts = append(missTexts, text)
		}
	}
	if len(missTexts) == 0 {
		return results, nil
	}

	vecs, err := c.inner.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	for i, vec := range vecs {
		idx := missIndices[i]
		results[idx] = vec
		c.cache.Add(c.cacheKey(texts[idx]), vec)
	}
	return results, nil
}

// Dimensions returns the inner embedder's dimension.
func (c *CachedEmbedder) Dimensions() int { return c.inner.Dimensions() }

// ModelName returns the inner embedder's model identifier.
func (c *CachedEmbedder) ModelName() string { return c.inner.ModelName() }

// Available reports the inner embedder's availability.
func (c *CachedEmbedder) Available(ctx context.Context) bool { return c.inner.Available(ctx) }

// Close closes the inner embedder.
func (c *CachedEmbedder) Close() error { return c.inner.Close() }
