package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmiths/wikigen/internal/store"
)

func lexResults(pairs ...any) []*store.LexicalResult {
	results := make([]*store.LexicalResult, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		results = append(results, &store.LexicalResult{
			DocID: pairs[i].(string),
			Score: pairs[i+1].(float64),
		})
	}
	return results
}

func vecResults(pairs ...any) []*store.VectorResult {
	results := make([]*store.VectorResult, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		results = append(results, &store.VectorResult{
			DocID: pairs[i].(string),
			Score: pairs[i+1].(float64),
		})
	}
	return results
}

func fusedByID(results []*FusedResult) map[string]*FusedResult {
	m := make(map[string]*FusedResult, len(results))
	for _, r := range results {
		m[r.DocID] = r
	}
	return m
}

func TestFuse_WeightedSum(t *testing.T) {
	// Given: A in both lists, B lexical only, C semantic only
	lex := lexResults("A", 2.0, "B", 1.0)
	vec := vecResults("A", 0.9, "C", 0.8)
	fusion := NewWeightedFusion()

	// When: fusing with explicit weights
	results := fusion.Fuse(lex, vec, 0.4, 0.6)

	// Then: scores are the weighted sums, missing components default to 0
	require.Len(t, results, 3)
	byID := fusedByID(results)
	assert.InDelta(t, 2.0*0.4+0.9*0.6, byID["A"].Score, 1e-9)
	assert.InDelta(t, 1.0*0.4, byID["B"].Score, 1e-9)
	assert.InDelta(t, 0.8*0.6, byID["C"].Score, 1e-9)
}

func TestFuse_PresenceDeterminesType(t *testing.T) {
	lex := lexResults("both", 1.0, "lexonly", 1.0)
	vec := vecResults("both", 0.5, "veconly", 0.5)

	byID := fusedByID(NewWeightedFusion().Fuse(lex, vec, 0.5, 0.5))

	assert.Equal(t, SearchTypeHybrid, byID["both"].Type())
	assert.Equal(t, SearchTypeLexical, byID["lexonly"].Type())
	assert.Equal(t, SearchTypeSemantic, byID["veconly"].Type())
}

func TestFuse_NoCrossScaleNormalization(t *testing.T) {
	// A large TF-IDF score dominates a perfect cosine score under equal
	// weights. The two scales are combined as-is.
	lex := lexResults("tfidf", 10.0)
	vec := vecResults("cosine", 1.0)

	results := NewWeightedFusion().Fuse(lex, vec, 0.5, 0.5)

	require.Len(t, results, 2)
	assert.Equal(t, "tfidf", results[0].DocID)
	assert.InDelta(t, 5.0, results[0].Score, 1e-9)
	assert.InDelta(t, 0.5, results[1].Score, 1e-9)
}

func TestFuse_ScoreMonotonicity(t *testing.T) {
	// Raising one component score never lowers the fused score.
	base := NewWeightedFusion().Fuse(lexResults("A", 1.0), vecResults("A", 0.2), 0.4, 0.6)
	higherLex := NewWeightedFusion().Fuse(lexResults("A", 2.0), vecResults("A", 0.2), 0.4, 0.6)
	higherVec := NewWeightedFusion().Fuse(lexResults("A", 1.0), vecResults("A", 0.9), 0.4, 0.6)

	assert.Greater(t, higherLex[0].Score, base[0].Score)
	assert.Greater(t, higherVec[0].Score, base[0].Score)
}

func TestFuse_KeywordWeightPreservesLexicalOrder(t *testing.T) {
	// With equal semantic scores, raising the keyword weight never lets a
	// lexically weaker document overtake a stronger one.
	lex := lexResults("strong", 3.0, "weak", 1.0)
	vec := vecResults("strong", 0.5, "weak", 0.5)

	for _, kw := range []float64{0.1, 0.5, 1.0, 2.0} {
		results := NewWeightedFusion().Fuse(lex, vec, kw, 0.6)
		require.Len(t, results, 2)
		assert.Equal(t, "strong", results[0].DocID, "keywordWeight=%v", kw)
	}
}

func TestFuse_TieBreaks(t *testing.T) {
	// Given: three documents engineered to the same fused score under
	// equal weights
	lex := lexResults("both", 1.0, "lexhigh", 2.0, "lexlow", 2.0)
	vec := vecResults("both", 1.0)
	// both: 0.5*1 + 0.5*1 = 1.0; lexhigh: 0.5*2 = 1.0; lexlow: 0.5*2 = 1.0

	results := NewWeightedFusion().Fuse(lex, vec, 0.5, 0.5)

	// Then: presence in both lists wins, then lexical score, then ID
	require.Len(t, results, 3)
	assert.Equal(t, "both", results[0].DocID)
	assert.Equal(t, "lexhigh", results[1].DocID)
	assert.Equal(t, "lexlow", results[2].DocID)
}

func TestFuse_EmptyInputs(t *testing.T) {
	fusion := NewWeightedFusion()

	assert.Empty(t, fusion.Fuse(nil, nil, 0.4, 0.6))

	onlyLex := fusion.Fuse(lexResults("A", 1.0), nil, 1.0, 0.0)
	require.Len(t, onlyLex, 1)
	assert.Equal(t, SearchTypeLexical, onlyLex[0].Type())

	onlyVec := fusion.Fuse(nil, vecResults("A", 0.7), 0.0, 1.0)
	require.Len(t, onlyVec, 1)
	assert.Equal(t, SearchTypeSemantic, onlyVec[0].Type())
}

func TestFuse_ZeroWeights(t *testing.T) {
	// Zero weights are honored as given; the option layer, not fusion,
	// owns defaulting.
	results := NewWeightedFusion().Fuse(lexResults("A", 3.0), vecResults("A", 0.9), 0, 0)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Score)
}
