package search

import "strings"

const (
	// snippetContext is the number of characters kept on each side of a
	// matched term.
	snippetContext = 50

	// fallbackSnippetLen is the snippet length used when no query term
	// matches the content.
	fallbackSnippetLen = 100
)

// BuildHighlights extracts one context snippet for the first query term
// that matches the content (case-insensitive, terms tried in order). The
// span records the absolute offset of the matched term within the content.
// When nothing matches, the first 100 characters serve as the snippet with
// no spans.
func BuildHighlights(content string, queryTerms []string) []Highlight {
	lower := strings.ToLower(content)

	for _, term := range queryTerms {
		if term == "" {
			continue
		}
		idx := strings.Index(lower, strings.ToLower(term))
		if idx < 0 {
			continue
		}

		start := idx - snippetContext
		if start < 0 {
			start = 0
		}
		end := idx + len(term) + snippetContext
		if end > len(content) {
			end = len(content)
		}

		return []Highlight{{
			Field:     "content",
			Snippet:   content[start:end],
			Positions: []Span{{Start: idx, End: idx + len(term)}},
		}}
	}

	end := fallbackSnippetLen
	if end > len(content) {
		end = len(content)
	}
	return []Highlight{{
		Field:   "content",
		Snippet: content[:end],
	}}
}
