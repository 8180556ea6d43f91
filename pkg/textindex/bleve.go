package textindex

import (
	"fmt"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/kadegen/granolasync/internal/apperr"
)

// bleveIndex is the bleve-backed Index implementation, grounded on the
// document-index half of pkg/search's multi-index search adapter:
// mapping construction, batch upsert, and query building follow the
// same shape, narrowed to this index's fixed doc_id/title/body/date/path
// schema.
type bleveIndex struct {
	mu     sync.Mutex
	idx    bleve.Index
	path   string
	batch  *bleve.Batch
	logger hclog.Logger
}

// indexDocument is the flattened struct bleve actually indexes; it
// mirrors Record but gives bleve plain Go types to reflect over.
type indexDocument struct {
	DocID string `json:"doc_id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Date  string `json:"date"`
	Path  string `json:"path"`
}

// OpenOrCreate opens the index at dir if it already exists (a
// populated directory), or creates a new one with the fixed schema
// when dir is empty or absent. Reopening preserves all previously
// committed records.
func OpenOrCreate(dir string, logger hclog.Logger) (Index, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	idx, err := bleve.Open(dir)
	switch {
	case err == nil:
		logger.Debug("reopened existing text index", "path", dir)
	case err == bleve.ErrorIndexPathDoesNotExist || err == bleve.ErrorIndexMetaMissing:
		idx, err = bleve.New(dir, buildIndexMapping())
		if err != nil {
			return nil, apperr.Wrap(apperr.KindIndexing, fmt.Sprintf("create text index at %s", dir), err)
		}
		logger.Debug("created new text index", "path", dir)
	default:
		return nil, apperr.Wrap(apperr.KindIndexing, fmt.Sprintf("open text index at %s", dir), err)
	}

	return &bleveIndex{idx: idx, path: dir, logger: logger.Named("text-index")}, nil
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = "en"

	bodyField := bleve.NewTextFieldMapping()
	bodyField.Analyzer = "en"

	dateField := bleve.NewTextFieldMapping()
	dateField.Index = false
	dateField.Store = true
	dateField.IncludeInAll = false

	pathField := bleve.NewTextFieldMapping()
	pathField.Index = false
	pathField.Store = true
	pathField.IncludeInAll = false

	docIDField := bleve.NewTextFieldMapping()
	docIDField.Index = false
	docIDField.Store = true
	docIDField.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("title", titleField)
	doc.AddFieldMappingsAt("body", bodyField)
	doc.AddFieldMappingsAt("date", dateField)
	doc.AddFieldMappingsAt("path", pathField)
	doc.AddFieldMappingsAt("doc_id", docIDField)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultAnalyzer = "en"
	return m
}

func (b *bleveIndex) Upsert(rec Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.batch == nil {
		b.batch = b.idx.NewBatch()
	}

	// Delete-by-doc_id then insert: the underlying inverted index is
	// append-only, so upsert-by-primary-key requires an explicit
	// delete of any prior record before the new one is added. Using
	// DocID itself as the bleve document ID makes this a direct
	// Delete+Index pair rather than a term query.
	b.batch.Delete(rec.DocID)

	doc := indexDocument{
		DocID: rec.DocID,
		Title: rec.Title,
		Body:  rec.Body,
		Date:  rec.Date.UTC().Format("2006-01-02"),
		Path:  rec.Path,
	}
	if err := b.batch.Index(rec.DocID, doc); err != nil {
		return apperr.Wrap(apperr.KindIndexing, fmt.Sprintf("stage index for doc_id %s", rec.DocID), err)
	}
	return nil
}

func (b *bleveIndex) Commit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.batch == nil {
		return nil
	}
	if err := b.idx.Batch(b.batch); err != nil {
		return apperr.Wrap(apperr.KindIndexing, "commit text index batch", err)
	}
	b.batch = nil
	return nil
}

func (b *bleveIndex) Search(queryText string, topN int) ([]Hit, error) {
	titleMatch := bleve.NewMatchQuery(queryText)
	titleMatch.SetField("title")
	bodyMatch := bleve.NewMatchQuery(queryText)
	bodyMatch.SetField("body")
	q := bleve.NewDisjunctionQuery(titleMatch, bodyMatch)

	req := bleve.NewSearchRequestOptions(q, topN, 0, false)
	req.Fields = []string{"doc_id", "title", "date", "path"}

	result, err := b.idx.Search(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindIndexing, fmt.Sprintf("search %q", queryText), err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hits = append(hits, Hit{
			DocID: stringField(h.Fields, "doc_id"),
			Title: stringField(h.Fields, "title"),
			Path:  stringField(h.Fields, "path"),
			Score: h.Score,
			Date:  parseStoredDate(stringField(h.Fields, "date")),
		})
	}
	return hits, nil
}

func (b *bleveIndex) Healthy() error {
	if b.idx == nil {
		return apperr.New(apperr.KindIndexing, "text index not open")
	}
	if _, err := b.idx.DocCount(); err != nil {
		return apperr.Wrap(apperr.KindIndexing, "text index handle unhealthy", err)
	}
	return nil
}

func (b *bleveIndex) Close() error {
	var errs *multierror.Error
	if err := b.idx.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func parseStoredDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
