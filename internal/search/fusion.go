package search

import (
	"sort"

	"github.com/docsmiths/wikigen/internal/store"
)

// FusedResult is a single result after weighted score fusion, before
// filtering and enrichment.
type FusedResult struct {
	DocID      string
	Score      float64 // keywordWeight*lexical + semanticWeight*semantic
	LexScore   float64
	VecScore   float64
	InLexical  bool
	InSemantic bool
}

// Type returns the search type implied by which lists the document
// appeared in.
func (r *FusedResult) Type() SearchType {
	switch {
	case r.InLexical && r.InSemantic:
		return SearchTypeHybrid
	case r.InSemantic:
		return SearchTypeSemantic
	default:
		return SearchTypeLexical
	}
}

// WeightedFusion merges a lexical and a semantic ranked list by weighted
// score combination.
//
// The TF-IDF range (unbounded, >= 0) and the cosine range ([-1,1]) are
// combined without cross-scale normalization. Downstream callers depend on
// the resulting ranking, so this scale mismatch is kept as-is.
type WeightedFusion struct{}

// NewWeightedFusion creates a fusion instance.
func NewWeightedFusion() *WeightedFusion {
	return &WeightedFusion{}
}

// Fuse builds a combined score per document ID: lexical scores first (with
// the semantic component defaulted to 0), then semantic scores overlaid,
// creating entries for IDs not seen lexically. The final score is
// lex*keywordWeight + vec*semanticWeight, sorted descending.
func (f *WeightedFusion) Fuse(
	lex []*store.LexicalResult,
	vec []*store.VectorResult,
	keywordWeight, semanticWeight float64,
) []*FusedResult {
	if len(lex) == 0 && len(vec) == 0 {
		return []*FusedResult{}
	}

	combined := make(map[string]*FusedResult, len(lex)+len(vec))
	for _, r := range lex {
		combined[r.DocID] = &FusedResult{
			DocID:     r.DocID,
			LexScore:  r.Score,
			InLexical: true,
		}
	}
	for _, r := range vec {
		entry, ok := combined[r.DocID]
		if !ok {
			entry = &FusedResult{DocID: r.DocID}
			combined[r.DocID] = entry
		}
		entry.VecScore = r.Score
		entry.InSemantic = true
	}

	results := make([]*FusedResult, 0, len(combined))
	for _, entry := range combined {
		entry.Score = entry.LexScore*keywordWeight + entry.VecScore*semanticWeight
		results = append(results, entry)
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		// Tie-breaks keep ranking deterministic: both lists beats one,
		// then lexical score, then ID.
		aBoth := a.InLexical && a.InSemantic
		bBoth := b.InLexical && b.InSemantic
		if aBoth != bBoth {
			return aBoth
		}
		if a.LexScore != b.LexScore {
			return a.LexScore > b.LexScore
		}
		return a.DocID < b.DocID
	})

	return results
}
