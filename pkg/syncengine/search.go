package syncengine

import (
	"context"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/pkg/textindex"
	"github.com/kadegen/granolasync/pkg/vectorstore"
)

// SearchText runs a full-text query against the engine's text index.
func (e *Engine) SearchText(query string, topN int) ([]textindex.Hit, error) {
	if e.TextIndex == nil {
		return nil, apperr.New(apperr.KindIndexing, "no text index configured")
	}
	return e.TextIndex.Search(query, topN)
}

// SearchSemantic embeds query with the engine's embedder and returns
// the nearest stored passages by cosine similarity.
func (e *Engine) SearchSemantic(ctx context.Context, query string, topK int) ([]vectorstore.Hit, error) {
	if e.Vectors == nil || e.Embedder == nil {
		return nil, apperr.New(apperr.KindEmbedding, "no vector store/embedder configured")
	}
	v, err := e.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEmbedding, "embed query", err)
	}
	return e.Vectors.Search(v, topK)
}
