// Package embed defines the pluggable Embedder capability: a mapping
// from a string to a fixed-dimension L2-normalized vector. Concrete
// backends live in sibling packages (bedrock, ollama, mock), each
// implementing this interface the same way pkg/ai.Provider is
// split across bedrock/ollama/mock.
package embed

import "context"

// Embedder produces normalized fixed-dimension vectors for passage and
// query strings. The two methods are kept distinct because some
// models require different instruction prefixes for indexing versus
// querying. Implementations must be idempotent for identical input and
// may truncate input to their maximum context.
type Embedder interface {
	// EmbedPassage embeds text being indexed (a rendered document body).
	EmbedPassage(ctx context.Context, text string) ([]float32, error)

	// EmbedQuery embeds a search query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dim returns this embedder's fixed output dimension.
	Dim() int
}
