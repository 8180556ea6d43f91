// Package ollama implements embed.Embedder against a local Ollama
// daemon's /api/embeddings endpoint, grounded in the
// pkg/ai/ollama provider, which also talks plain HTTP to a local
// inference process rather than a cloud SDK.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/kadegen/granolasync/internal/apperr"
)

// defaultTimeout bounds a single embedding request.
const defaultTimeout = 30 * time.Second

// Config configures the Ollama embedder.
type Config struct {
	BaseURL string // e.g. "http://localhost:11434"
	Model   string // e.g. "nomic-embed-text"
	Dim     int    // the model's known output dimension
}

// Embedder calls a local Ollama daemon for embeddings.
type Embedder struct {
	cfg    Config
	client *http.Client
}

// New creates an Ollama-backed embedder.
func New(cfg Config) *Embedder {
	return &Embedder{
		cfg:    cfg,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

func (e *Embedder) Dim() int { return e.cfg.Dim }

func (e *Embedder) EmbedPassage(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text)
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text)
}

type embeddingsRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingsResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *Embedder) embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingsRequest{Model: e.cfg.Model, Prompt: text})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEmbedding, "marshal ollama embeddings request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEmbedding, "build ollama embeddings request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEmbedding, "call ollama embeddings endpoint", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return nil, apperr.New(apperr.KindEmbedding, fmt.Sprintf("ollama embeddings returned %d: %s", resp.StatusCode, string(data)))
	}

	var parsed embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.KindEmbedding, "decode ollama embeddings response", err)
	}
	if len(parsed.Embedding) != e.cfg.Dim {
		return nil, apperr.New(apperr.KindEmbedding, fmt.Sprintf("ollama returned dimension %d, expected %d", len(parsed.Embedding), e.cfg.Dim))
	}

	return normalize(parsed.Embedding), nil
}

func normalize(v []float32) []float32 {
	var sumSquares float64
	for _, f := range v {
		sumSquares += float64(f) * float64(f)
	}
	if sumSquares == 0 {
		return v
	}
	norm := math.Sqrt(sumSquares)
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}
