// Package vectorstore is the fixed-dimension dense-vector store behind
// semantic search: an in-memory array of unit vectors with cosine
// top-K retrieval and a two-artifact flat-file persistence format
// (a JSON metadata manifest plus a packed binary float array).
//
// This diverges from the pgvector/gorm-backed semantic
// search elsewhere in this codebase (grounded on pkg/search/vector.go's naming, not its storage):
// an offline single-process tool has no database to round-trip to, so
// persistence here is a self-contained pair of files under
// index/vectors/.
package vectorstore

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/kadegen/granolasync/internal/apperr"
)

// entry pairs a stored vector with its doc_id/path metadata, kept in
// insertion order (matching the on-disk manifest's documented order).
type entry struct {
	docID string
	path  string
}

// Store is a fixed-dimension vector store. All Store methods are safe
// for concurrent use, though the sync engine never calls them
// concurrently (spec: strictly sequential processing).
type Store struct {
	mu      sync.RWMutex
	dim     int
	entries []entry
	vectors [][]float32
	byDocID map[string]int
}

// Hit is one similarity search result, ordered by descending Score.
type Hit struct {
	DocID string
	Path  string
	Score float64
}

// New creates an empty store for dimension dim.
func New(dim int) *Store {
	return &Store{
		dim:     dim,
		byDocID: make(map[string]int),
	}
}

// Dim returns the store's fixed vector dimension.
func (s *Store) Dim() int {
	return s.dim
}

// Len returns the number of distinct doc_ids currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Add inserts or replaces the vector for docID. len(vector) must equal
// Dim(); otherwise the store is left unchanged and an Embedding-kind
// error is returned.
func (s *Store) Add(docID, path string, vector []float32) error {
	if len(vector) != s.dim {
		return apperr.New(apperr.KindEmbedding, fmt.Sprintf("vector length %d does not match store dimension %d", len(vector), s.dim))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]float32, len(vector))
	copy(stored, vector)

	if idx, ok := s.byDocID[docID]; ok {
		s.entries[idx] = entry{docID: docID, path: path}
		s.vectors[idx] = stored
		return nil
	}

	s.byDocID[docID] = len(s.entries)
	s.entries = append(s.entries, entry{docID: docID, path: path})
	s.vectors = append(s.vectors, stored)
	return nil
}

// Search returns the topK stored vectors with the largest cosine
// similarity against query, in descending score order.
func (s *Store) Search(query []float32, topK int) ([]Hit, error) {
	if len(query) != s.dim {
		return nil, apperr.New(apperr.KindEmbedding, fmt.Sprintf("query vector length %d does not match store dimension %d", len(query), s.dim))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]Hit, 0, len(s.entries))
	for i, e := range s.entries {
		scored = append(scored, Hit{
			DocID: e.docID,
			Path:  e.path,
			Score: cosineSimilarity(query, s.vectors[i]),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
