// Package search implements the hybrid retrieval engine: TF-IDF lexical
// search and brute-force semantic search fused by weighted score
// combination, with filtering, highlighting, suggestions, related-document
// lookup, and k-means clustering.
package search

import (
	"encoding/json"
	"fmt"

	"github.com/docsmiths/wikigen/internal/store"
)

// SearchType tags the retrieval path that produced a result.
type SearchType int

const (
	// SearchTypeLexical marks results found only by the TF-IDF index.
	SearchTypeLexical SearchType = iota
	// SearchTypeSemantic marks results found only by the vector index.
	SearchTypeSemantic
	// SearchTypeHybrid marks results found by both.
	SearchTypeHybrid
)

// String returns the wire name of the search type.
func (t SearchType) String() string {
	switch t {
	case SearchTypeLexical:
		return "lexical"
	case SearchTypeSemantic:
		return "semantic"
	case SearchTypeHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("SearchType(%d)", int(t))
	}
}

// MarshalJSON encodes the search type as its string name.
func (t SearchType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Span is a character offset range within document content.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Highlight is a context snippet around a matched query term.
type Highlight struct {
	Field     string `json:"field"`
	Snippet   string `json:"snippet"`
	Positions []Span `json:"positions,omitempty"`
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	Document   *store.Document `json:"document"`
	Score      float64         `json:"score"`
	Type       SearchType      `json:"searchType"`
	Highlights []Highlight     `json:"highlights,omitempty"`
}

// Default search option values, applied by the engine when unset.
const (
	DefaultMaxResults     = 10
	DefaultKeywordWeight  = 0.4
	DefaultSemanticWeight = 0.6
)

// SearchOptions controls a single search call. Zero weights for both
// components select the engine defaults.
type SearchOptions struct {
	MaxResults        int
	Threshold         float64
	IncludeHighlights bool
	KeywordWeight     float64
	SemanticWeight    float64
	Filters           []Filter
}

// withDefaults fills unset option fields.
func (o SearchOptions) withDefaults() SearchOptions {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.KeywordWeight == 0 && o.SemanticWeight == 0 {
		o.KeywordWeight = DefaultKeywordWeight
		o.SemanticWeight = DefaultSemanticWeight
	}
	return o
}
