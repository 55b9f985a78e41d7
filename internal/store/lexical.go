package store

import (
	"math"
	"sort"
	"strings"
)

// LexicalIndex is an inverted index with per-document term frequencies,
// scored with TF-IDF. Scores are averaged over the query terms rather than
// normalized by document length; downstream ranking depends on that policy.
//
// The index is not safe for concurrent mutation; the owning engine
// serializes writers.
type LexicalIndex struct {
	postings map[string]map[string]struct{} // term -> doc IDs containing it
	termFreq map[string]map[string]int      // doc ID -> term -> occurrences
}

// NewLexicalIndex creates an empty lexical index.
func NewLexicalIndex() *LexicalIndex {
	return &LexicalIndex{
		postings: make(map[string]map[string]struct{}),
		termFreq: make(map[string]map[string]int),
	}
}

// Add tokenizes the document content and records postings and term
// frequencies. Adding an ID that is already indexed replaces its previous
// state, so re-indexing is idempotent.
func (x *LexicalIndex) Add(doc *Document) {
	if doc == nil || doc.ID == "" {
		return
	}
	if _, exists := x.termFreq[doc.ID]; exists {
		x.Remove(doc.ID)
	}

	freq := make(map[string]int)
	for _, term := range Tokenize(doc.Content) {
		freq[term]++
	}
	x.termFreq[doc.ID] = freq

	for term := range freq {
		posting, ok := x.postings[term]
		if !ok {
			posting = make(map[string]struct{})
			x.postings[term] = posting
		}
		posting[doc.ID] = struct{}{}
	}
}

// Remove deletes the document from every posting set it appears in and drops
// its term-frequency table. Terms whose posting set becomes empty are
// removed entirely. Unknown IDs are a no-op.
func (x *LexicalIndex) Remove(id string) {
	freq, ok := x.termFreq[id]
	if !ok {
		return
	}
	for term := range freq {
		posting := x.postings[term]
		delete(posting, id)
		if len(posting) == 0 {
			delete(x.postings, term)
		}
	}
	delete(x.termFreq, id)
}

// Contains reports whether the document ID is indexed.
func (x *LexicalIndex) Contains(id string) bool {
	_, ok := x.termFreq[id]
	return ok
}

// Clear drops all postings and term frequencies.
func (x *LexicalIndex) Clear() {
	x.postings = make(map[string]map[string]struct{})
	x.termFreq = make(map[string]map[string]int)
}

// DocumentCount returns the number of indexed documents.
func (x *LexicalIndex) DocumentCount() int {
	return len(x.termFreq)
}

// Stats returns index size statistics.
func (x *LexicalIndex) Stats() IndexStats {
	return IndexStats{
		DocumentCount: len(x.termFreq),
		TermCount:     len(x.postings),
	}
}

// Search scores candidate documents against the query terms.
//
// Per query term t and candidate d the contribution is tf(t,d) * idf(t)
// with idf(t) = ln(N / df(t)). Per-document sums are divided by the number
// of query terms. A term present in every document contributes nothing
// (idf = 0); unseen terms yield no candidates. An empty corpus or empty
// query returns no results.
func (x *LexicalIndex) Search(queryTerms []string, limit int) []*LexicalResult {
	if len(queryTerms) == 0 || len(x.termFreq) == 0 {
		return nil
	}

	total := float64(len(x.termFreq))
	sums := make(map[string]float64)
	for _, term := range queryTerms {
		posting := x.postings[term]
		if len(posting) == 0 {
			continue
		}
		idf := math.Log(total / float64(len(posting)))
		for id := range posting {
			sums[id] += float64(x.termFreq[id][term]) * idf
		}
	}

	queryLen := float64(len(queryTerms))
	results := make([]*LexicalResult, 0, len(sums))
	for id, sum := range sums {
		results = append(results, &LexicalResult{DocID: id, Score: sum / queryLen})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// MatchingTerms returns up to max vocabulary terms that start with prefix
// and are strictly longer than it. Iteration order of the posting map
// decides which terms are returned first; callers must not assume sorted
// output.
func (x *LexicalIndex) MatchingTerms(prefix string, max int) []string {
	if prefix == "" || max <= 0 {
		return nil
	}
	var terms []string
	for term := range x.postings {
		if len(term) > len(prefix) && strings.HasPrefix(term, prefix) {
			terms = append(terms, term)
			if len(terms) >= max {
				break
			}
		}
	}
	return terms
}
