// Package mock is a deterministic Embedder used by tests and by local
// development runs with no inference backend configured. It mirrors
// pkg/ai/mock.Provider's deterministic-embedding approach.
package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// Embedder deterministically derives a unit vector from the input
// text's hash, so the same text always embeds to the same vector
// (required: embedders must be idempotent for identical input).
type Embedder struct {
	dim int
}

// New creates a mock embedder of the given dimension.
func New(dim int) *Embedder {
	return &Embedder{dim: dim}
}

func (e *Embedder) Dim() int { return e.dim }

func (e *Embedder) EmbedPassage(_ context.Context, text string) ([]float32, error) {
	return e.vectorFor("passage:" + text), nil
}

func (e *Embedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return e.vectorFor("query:" + text), nil
}

// vectorFor expands a seed string into e.dim pseudo-random components
// via a simple counter-mode hash, then L2-normalizes the result.
func (e *Embedder) vectorFor(seed string) []float32 {
	v := make([]float32, e.dim)
	for i := range v {
		h := fnv.New32a()
		_, _ = h.Write([]byte(seed))
		_, _ = h.Write([]byte{byte(i), byte(i >> 8)})
		v[i] = float32(h.Sum32()%1000) / 1000.0
	}
	return normalize(v)
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
