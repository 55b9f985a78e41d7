package store

import (
	"math"
	"sort"
)

// VectorIndex stores one embedding per document ID and answers top-k queries
// with an exact brute-force cosine scan, O(N*dim) per query. No approximate
// structure is used. Like LexicalIndex it relies on the owning engine to
// serialize writers.
type VectorIndex struct {
	vectors map[string][]float32
}

// NewVectorIndex creates an empty vector index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{vectors: make(map[string][]float32)}
}

// Add stores the embedding for id, replacing any previous one.
func (x *VectorIndex) Add(id string, embedding []float32) {
	if id == "" || len(embedding) == 0 {
		return
	}
	x.vectors[id] = embedding
}

// Remove deletes the embedding for id. Unknown IDs are a no-op.
func (x *VectorIndex) Remove(id string) {
	delete(x.vectors, id)
}

// Vector returns the stored embedding for id.
func (x *VectorIndex) Vector(id string) ([]float32, bool) {
	v, ok := x.vectors[id]
	return v, ok
}

// Contains reports whether id has a stored embedding.
func (x *VectorIndex) Contains(id string) bool {
	_, ok := x.vectors[id]
	return ok
}

// Count returns the number of stored embeddings.
func (x *VectorIndex) Count() int {
	return len(x.vectors)
}

// Clear drops all embeddings.
func (x *VectorIndex) Clear() {
	x.vectors = make(map[string][]float32)
}

// Search returns the top-k documents by cosine similarity to the query
// embedding, scanning every stored vector.
func (x *VectorIndex) Search(query []float32, limit int) []*VectorResult {
	if len(query) == 0 || len(x.vectors) == 0 {
		return nil
	}

	results := make([]*VectorResult, 0, len(x.vectors))
	for id, vec := range x.vectors {
		results = append(results, &VectorResult{
			DocID: id,
			Score: CosineSimilarity(query, vec),
		})
	}

	sortVectorResults(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// FindSimilar runs Search with the stored embedding of id as the query,
// excluding id itself. Returns nil if id has no embedding.
func (x *VectorIndex) FindSimilar(id string, limit int) []*VectorResult {
	query, ok := x.vectors[id]
	if !ok {
		return nil
	}

	results := make([]*VectorResult, 0, len(x.vectors))
	for otherID, vec := range x.vectors {
		if otherID == id {
			continue
		}
		results = append(results, &VectorResult{
			DocID: otherID,
			Score: CosineSimilarity(query, vec),
		})
	}

	sortVectorResults(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// sortVectorResults orders by descending similarity with the document ID as
// a deterministic tie-break.
func sortVectorResults(results []*VectorResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})
}

// CosineSimilarity computes dot(a,b) / (|a|*|b|). Mismatched lengths and
// zero-magnitude vectors yield 0; the result is never NaN.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
