// Package textindex is the upsertable inverted full-text index over
// rendered documents. It wraps blevesearch/bleve the way the example
// it's grounded on wraps it: a thin schema + query-building layer on
// top of an open-or-create index handle.
package textindex

import "time"

// Record is one text-index entry, keyed by DocID.
type Record struct {
	DocID string
	Title string
	Body  string
	Date  time.Time
	Path  string
}

// Hit is one search result, ordered by descending Score.
type Hit struct {
	DocID string
	Title string
	Date  time.Time
	Path  string
	Score float64
}

// Index is the upsertable inverted index contract. Upsert is
// delete-by-doc_id then insert, batched across a pending set of
// upserts and made visible by Commit.
type Index interface {
	// Upsert stages a record for the next Commit. Multiple Upserts may
	// be batched and committed once.
	Upsert(rec Record) error

	// Commit makes all staged upserts durable and visible to Search.
	Commit() error

	// Search parses queryText over title and body and returns up to
	// topN hits ordered by descending relevance score.
	Search(queryText string, topN int) ([]Hit, error)

	// Healthy reports whether the index handle is still usable.
	Healthy() error

	// Close releases the underlying index handle.
	Close() error
}
