package embed

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	return math.Sqrt(sum)
}

func TestRandomEmbedder_ProducesUnitVectors(t *testing.T) {
	e := NewRandomEmbedder(64, rand.NewSource(1))

	vec, err := e.Embed(context.Background(), "any text")
	require.NoError(t, err)
	require.Len(t, vec, 64)
	assert.InDelta(t, 1.0, vectorNorm(vec), 1e-5)
}

func TestRandomEmbedder_SeededOutputIsReproducible(t *testing.T) {
	a := NewRandomEmbedder(8, rand.NewSource(42))
	b := NewRandomEmbedder(8, rand.NewSource(42))

	va, err := a.Embed(context.Background(), "text")
	require.NoError(t, err)
	vb, err := b.Embed(context.Background(), "text")
	require.NoError(t, err)

	assert.Equal(t, va, vb)
}

func TestRandomEmbedder_OutputIgnoresText(t *testing.T) {
	// Successive calls advance the random stream, so even identical texts
	// get different vectors. The content never influences the output.
	e := NewRandomEmbedder(8, rand.NewSource(7))

	first, err := e.Embed(context.Background(), "same text")
	require.NoError(t, err)
	second, err := e.Embed(context.Background(), "same text")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRandomEmbedder_EmbedBatch(t *testing.T) {
	e := NewRandomEmbedder(16, rand.NewSource(3))

	vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	for _, v := range vecs {
		assert.Len(t, v, 16)
		assert.InDelta(t, 1.0, vectorNorm(v), 1e-5)
	}
}

func TestRandomEmbedder_Defaults(t *testing.T) {
	e := NewRandomEmbedder(0, nil)

	assert.Equal(t, DefaultDimensions, e.Dimensions())
	assert.Equal(t, "random", e.ModelName())
	assert.True(t, e.Available(context.Background()))
	assert.NoError(t, e.Close())
}
