package search

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docsmiths/wikigen/internal/embed"
	"github.com/docsmiths/wikigen/internal/store"
)

// Engine is the hybrid search façade. It owns the document table, the
// lexical index, and the vector index behind one lock: a single logical
// writer (the ingestion pipeline) mutates, reads may interleave freely.
// The only asynchronous boundary is the embedding provider call.
type Engine struct {
	mu       sync.RWMutex
	docs     map[string]*store.Document
	lexical  *store.LexicalIndex
	vectors  *store.VectorIndex
	embedder embed.Embedder
	fallback *embed.RandomEmbedder
	fusion   *WeightedFusion

	batchSize int
	rng       *rand.Rand
}

// EngineStats reports the engine's current index sizes.
type EngineStats struct {
	DocumentCount int
	TermCount     int
	VectorCount   int
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithBatchSize bounds concurrent embedding calls per indexing batch.
func WithBatchSize(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithRand sets the random source used for k-means centroid initialization,
// so clustering can be made deterministic in tests.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithFallbackEmbedder replaces the random fallback used when a provider
// call fails, so tests can inject a seeded one.
func WithFallbackEmbedder(f *embed.RandomEmbedder) EngineOption {
	return func(e *Engine) {
		if f != nil {
			e.fallback = f
		}
	}
}

// NewEngine creates an engine around the given embedder. A nil embedder
// selects the random fallback for all embeddings, which keeps semantic
// search functional in shape while meaningless in ranking; lexical search
// is unaffected.
func NewEngine(embedder embed.Embedder, opts ...EngineOption) *Engine {
	dims := embed.DefaultDimensions
	if embedder != nil {
		dims = embedder.Dimensions()
	}

	e := &Engine{
		docs:      make(map[string]*store.Document),
		lexical:   store.NewLexicalIndex(),
		vectors:   store.NewVectorIndex(),
		embedder:  embedder,
		fallback:  embed.NewRandomEmbedder(dims, nil),
		fusion:    NewWeightedFusion(),
		batchSize: embed.DefaultBatchSize,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if e.embedder == nil {
		e.embedder = e.fallback
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index adds documents in batches. Embedding calls run concurrently within
// a batch, bounded by the batch size; results are committed to the shared
// maps sequentially once the batch resolves.
func (e *Engine) Index(ctx context.Context, docs []*store.Document) error {
	for start := 0; start < len(docs); start += e.batchSize {
		end := start + e.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := e.indexBatch(ctx, docs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// IndexDocument adds a single document. Re-indexing an existing ID replaces
// its previous postings and embedding.
func (e *Engine) IndexDocument(ctx context.Context, doc *store.Document) error {
	return e.Index(ctx, []*store.Document{doc})
}

// indexBatch embeds one batch concurrently, then commits under the lock.
func (e *Engine) indexBatch(ctx context.Context, batch []*store.Document) error {
	embeddings := make([][]float32, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range batch {
		i, doc := i, doc
		g.Go(func() error {
			embeddings[i] = e.embedOne(gctx, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i, doc := range batch {
		if doc == nil || doc.ID == "" {
			continue
		}
		e.lexical.Add(doc)
		if len(embeddings[i]) > 0 {
			e.vectors.Add(doc.ID, embeddings[i])
		} else {
			e.vectors.Remove(doc.ID)
		}
		e.docs[doc.ID] = doc
	}
	return nil
}

// embedOne embeds a document's content, falling back to a random unit
// vector on provider failure so one bad call never aborts the batch.
func (e *Engine) embedOne(ctx context.Context, doc *store.Document) []float32 {
	if doc == nil || doc.ID == "" {
		return nil
	}
	vec, err := e.embedder.Embed(ctx, doc.Content)
	if err != nil {
		slog.Warn("embedding failed, using random fallback",
			slog.String("doc_id", doc.ID),
			slog.String("error", err.Error()))
		vec, _ = e.fallback.Embed(ctx, doc.Content)
	}
	return vec
}

// Search runs the hybrid query: the query string is tokenized for the
// lexical index and embedded whole for the vector index, each capped at
// 2x max results, then fused, filtered, thresholded, truncated, and
// optionally highlighted.
func (e *Engine) Search(ctx context.Context, query string, opts SearchOptions) ([]*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	opts = opts.withDefaults()

	terms := store.Tokenize(query)
	candidates := 2 * opts.MaxResults

	var (
		lexResults []*store.LexicalResult
		vecResults []*store.VectorResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.mu.RLock()
		defer e.mu.RUnlock()
		lexResults = e.lexical.Search(terms, candidates)
		return nil
	})
	g.Go(func() error {
		queryVec, err := e.embedder.Embed(gctx, query)
		if err != nil {
			slog.Warn("query embedding failed, using random fallback",
				slog.String("error", err.Error()))
			queryVec, _ = e.fallback.Embed(gctx, query)
		}
		e.mu.RLock()
		defer e.mu.RUnlock()
		vecResults = e.vectors.Search(queryVec, candidates)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fused := e.fusion.Fuse(lexResults, vecResults, opts.KeywordWeight, opts.SemanticWeight)

	e.mu.RLock()
	results := make([]*SearchResult, 0, len(fused))
	for _, f := range fused {
		doc, ok := e.docs[f.DocID]
		if !ok {
			continue
		}
		results = append(results, &SearchResult{
			Document: doc,
			Score:    f.Score,
			Type:     f.Type(),
		})
	}
	e.mu.RUnlock()

	results = ApplyFilters(results, opts.Filters)

	if opts.Threshold > 0 {
		kept := results[:0]
		for _, r := range results {
			if r.Score >= opts.Threshold {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	if opts.IncludeHighlights {
		for _, r := range results {
			r.Highlights = BuildHighlights(r.Document.Content, terms)
		}
	}

	return results, nil
}

// RemoveDocument deletes a document from both indexes and the document
// table. Unknown IDs are a no-op.
func (e *Engine) RemoveDocument(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lexical.Remove(id)
	e.vectors.Remove(id)
	delete(e.docs, id)
}

// Clear drops all documents, postings, and embeddings.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lexical.Clear()
	e.vectors.Clear()
	e.docs = make(map[string]*store.Document)
}

// DocumentCount returns the number of indexed documents.
func (e *Engine) DocumentCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.docs)
}

// Stats returns the engine's index sizes.
func (e *Engine) Stats() EngineStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	stats := e.lexical.Stats()
	return EngineStats{
		DocumentCount: stats.DocumentCount,
		TermCount:     stats.TermCount,
		VectorCount:   e.vectors.Count(),
	}
}

// Suggestions returns up to max vocabulary terms extending the last token
// of the partial query. Order follows index iteration and is undefined
// beyond "first found".
func (e *Engine) Suggestions(partial string, max int) []string {
	terms := store.Tokenize(partial)
	if len(terms) == 0 {
		return nil
	}
	prefix := terms[len(terms)-1]

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lexical.MatchingTerms(prefix, max)
}

// RelatedDocuments returns the semantic nearest neighbors of an indexed
// document. Unknown IDs and documents without embeddings return nil.
func (e *Engine) RelatedDocuments(id string, max int) []*SearchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()

	neighbors := e.vectors.FindSimilar(id, max)
	results := make([]*SearchResult, 0, len(neighbors))
	for _, n := range neighbors {
		doc, ok := e.docs[n.DocID]
		if !ok {
			continue
		}
		results = append(results, &SearchResult{
			Document: doc,
			Score:    n.Score,
			Type:     SearchTypeSemantic,
		})
	}
	return results
}

// ClusterDocuments partitions all embedded documents into k clusters.
// Assignments are transient and recomputed on each call.
func (e *Engine) ClusterDocuments(k int) map[int][]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vectors.Cluster(k, e.rng)
}
