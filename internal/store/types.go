// Package store provides the in-memory retrieval indexes (lexical TF-IDF and
// dense vector) and SQLite-backed wiki page persistence. The indexes hold no
// durable state; the page store owns durability.
package store

// Metadata carries the descriptive fields attached to an indexed document.
type Metadata struct {
	PageID    string   `json:"pageId"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	WordCount int      `json:"wordCount"`
	FilePath  string   `json:"filePath,omitempty"`
	Language  string   `json:"language,omitempty"`
}

// Document is the unit of indexing and retrieval. Content is immutable per
// ID: re-indexing the same ID replaces the previous postings and embedding.
type Document struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// LexicalResult is a single TF-IDF scored hit from the lexical index.
type LexicalResult struct {
	DocID string
	Score float64
}

// VectorResult is a single cosine-similarity scored hit from the vector index.
type VectorResult struct {
	DocID string
	Score float64
}

// IndexStats reports the current size of the lexical index.
type IndexStats struct {
	DocumentCount int
	TermCount     int
}
