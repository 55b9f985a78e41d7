package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// RemoteConfig configures the remote embedding provider.
type RemoteConfig struct {
	// Host is the base URL of the embedding API.
	Host string
	// Model is the embedding model to request.
	Model string
	// Dimensions is the expected embedding dimension. Zero means detect from
	// the first response.
	Dimensions int
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// SkipHealthCheck skips the startup probe (used in tests).
	SkipHealthCheck bool
}

const (
	// DefaultRemoteHost is the default embedding API endpoint.
	DefaultRemoteHost = "http://localhost:8642"
	// DefaultRemoteModel is the default embedding model.
	DefaultRemoteModel = "text-embedding-3-small"

	remotePoolSize = 8
)

// RemoteEmbedder calls an OpenAI-compatible embeddings endpoint over HTTP.
// The engine imposes no retry or timeout of its own beyond the per-request
// context deadline configured here; a failed call surfaces to the caller,
// which falls back to a random embedding.
type RemoteEmbedder struct {
	client    *http.Client
	transport *http.Transport
	config    RemoteConfig
	dims      int

	mu     sync.RWMutex
	closed bool
}

var _ Embedder = (*RemoteEmbedder)(nil)

// embeddingRequest is the wire format of the embeddings call.
type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embeddingResponse is the wire format of the embeddings reply.
type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// NewRemoteEmbedder creates a remote embedder and, unless skipped, probes
// the endpoint to verify availability and detect the embedding dimension.
func NewRemoteEmbedder(ctx context.Context, cfg RemoteConfig) (*RemoteEmbedder, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultRemoteHost
	}
	if cfg.Model == "" {
		cfg.Model = DefaultRemoteModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	// No client-level timeout: per-request contexts carry the deadline so
	// callers can impose their own cancellation at the provider boundary.
	transport := &http.Transport{
		MaxIdleConns:        remotePoolSize,
		MaxIdleConnsPerHost: remotePoolSize,
		IdleConnTimeout:     10 * time.Second,
	}

	e := &RemoteEmbedder{
		client:    &http.Client{Transport: transport},
		transport: transport,
		config:    cfg,
		dims:      cfg.Dimensions,
	}

	if !cfg.SkipHealthCheck {
		probeCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		vecs, err := e.request(probeCtx, []string{"ping"})
		if err != nil {
			transport.CloseIdleConnections()
			return nil, fmt.Errorf("embedding endpoint unavailable: %w", err)
		}
		if e.dims == 0 && len(vecs) > 0 {
			e.dims = len(vecs[0])
		}
	}
	if e.dims == 0 {
		e.dims = DefaultDimensions
	}

	return e, nil
}

// Embed generates an embedding for a single text.
func (e *RemoteEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embedding response was empty")
	}
	return vecs[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one request.
func (e *RemoteEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, fmt.Errorf("embedder is closed")
	}
	e.mu.RUnlock()

	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()
	return e.request(reqCtx, texts)
}

// request performs a single embeddings call.
func (e *RemoteEmbedder) request(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.config.Model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("encode embedding request: %w", err)
	}

	url := e.config.Host + "/v1/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call embedding endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("embedding endpoint returned %d: %s", resp.StatusCode, string(msg))
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response had %d vectors for %d inputs", len(parsed.Data), len(texts))
	}

	// The API may reorder entries; the index field is authoritative.
	vecs := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(vecs) {
			return nil, fmt.Errorf("embedding response index %d out of range", d.Index)
		}
		vecs[d.Index] = d.Embedding
	}
	return vecs, nil
}

// Dimensions returns the embedding dimension.
func (e *RemoteEmbedder) Dimensions() int { return e.dims }

// ModelName returns the model identifier.
func (e *RemoteEmbedder) ModelName() string { return e.config.Model }

// Available probes the endpoint with a minimal request.
func (e *RemoteEmbedder) Available(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := e.request(probeCtx, []string{"ping"})
	return err == nil
}

// Close shuts down idle connections.
func (e *RemoteEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.transport.CloseIdleConnections()
	return nil
}
