// Package syncengine is the orchestrator tying every other package
// together: it lists remote documents, decides per-document whether to
// create, update, or skip, and drives the raw write -> rendered write
// -> index upsert -> vector upsert pipeline in strict sequential order.
// Grounded on pkg/indexer/orchestrator.go and
// pipeline.go for the list-decide-fetch-persist shape, but REDESIGNED
// away from their worker-pool concurrency: this engine
// processes one document at a time, start to finish, before moving to
// the next.
package syncengine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/pkg/atomicfile"
	"github.com/kadegen/granolasync/pkg/convert"
	"github.com/kadegen/granolasync/pkg/embed"
	"github.com/kadegen/granolasync/pkg/frontmatter"
	"github.com/kadegen/granolasync/pkg/paths"
	"github.com/kadegen/granolasync/pkg/textindex"
	"github.com/kadegen/granolasync/pkg/vectorstore"
)

// RemoteClient is the subset of pkg/remote.Client the engine depends
// on, named here so tests can supply a fake without standing up an
// HTTP server.
type RemoteClient interface {
	ListDocuments(ctx context.Context) ([]convert.DocumentSummary, error)
	GetMetadata(ctx context.Context, docID string) (convert.DocumentMetadata, error)
	GetTranscript(ctx context.Context, docID string) (convert.RawTranscript, error)
}

// RunSummary tallies what a Run (or Reindex) did.
type RunSummary struct {
	Listed  int
	Created int
	Updated int
	Skipped int
}

// Engine holds every collaborator the sync algorithm needs. TextIndex
// and the vector pair are optional: a nil TextIndex or nil Vectors
// skips that stage entirely, per the documented "optional" collaborators.
type Engine struct {
	Remote    RemoteClient
	Paths     paths.Paths
	FS        afero.Fs
	TextIndex textindex.Index
	Vectors   *vectorstore.Store
	Embedder  embed.Embedder
	Generator string
	Logger    hclog.Logger
}

// New builds an Engine, defaulting Logger to a discard logger when the
// caller passes nil, so no caller is forced to construct one.
func New(e Engine) *Engine {
	if e.Logger == nil {
		e.Logger = hclog.NewNullLogger()
	}
	eng := e
	return &eng
}

// Run executes one full sync pass: list, decide, fetch, render,
// persist, index. The first fatal error aborts with no further
// documents processed; documents already written remain in place.
func (e *Engine) Run(ctx context.Context) (RunSummary, error) {
	var summary RunSummary

	if err := paths.EnsureDirs(e.FS, e.Paths); err != nil {
		return summary, apperr.Wrap(apperr.KindFilesystem, "ensure data directories", err)
	}

	docs, err := e.Remote.ListDocuments(ctx)
	if err != nil {
		return summary, err
	}
	summary.Listed = len(docs)
	e.Logger.Debug("listed remote documents", "count", len(docs))

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return summary, apperr.Wrap(apperr.KindNetwork, "run cancelled", err)
		}

		meta, err := e.Remote.GetMetadata(ctx, doc.DocID)
		if err != nil {
			return summary, err
		}

		createdAt, err := convert.ParseTimestamp(meta.CreatedAt)
		if err != nil {
			return summary, apperr.Wrap(apperr.KindParse, fmt.Sprintf("parse created_at for %s", meta.DocID), err)
		}

		baseName, err := paths.ResolveBaseName(e.FS, e.Paths, meta.DocID, createdAt, meta.Title)
		if err != nil {
			return summary, err
		}
		rawPath := e.Paths.RawPath(baseName)
		renderedPath := e.Paths.RenderedPath(baseName)

		action, err := decideAction(e.FS, renderedPath, meta)
		if err != nil {
			return summary, err
		}
		if action == ActionSkip {
			summary.Skipped++
			continue
		}

		raw, err := e.Remote.GetTranscript(ctx, doc.DocID)
		if err != nil {
			return summary, err
		}

		rendered, err := convert.Convert(meta, raw, e.Generator)
		if err != nil {
			return summary, err
		}

		rawBytes, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return summary, apperr.Wrap(apperr.KindParse, fmt.Sprintf("marshal raw transcript for %s", meta.DocID), err)
		}
		if err := atomicfile.Write(e.FS, rawPath, rawBytes); err != nil {
			return summary, err
		}

		renderedBytes := frontmatter.Write(rendered.Frontmatter, rendered.Body)
		if err := atomicfile.Write(e.FS, renderedPath, renderedBytes); err != nil {
			return summary, err
		}

		if err := e.indexDocument(ctx, meta.DocID, rendered, renderedPath); err != nil {
			return summary, err
		}

		switch action {
		case ActionCreate:
			summary.Created++
		case ActionUpdate:
			summary.Updated++
		}
		e.Logger.Info("synced document", "doc_id", meta.DocID, "action", actionName(action))
	}

	if e.TextIndex != nil {
		if err := e.TextIndex.Commit(); err != nil {
			return summary, apperr.Wrap(apperr.KindIndexing, "commit text index", err)
		}
	}
	if e.Vectors != nil {
		if err := vectorstore.Save(e.FS, e.Paths.IndexVectors, e.Vectors); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// indexDocument performs the optional text-index upsert and the
// optional embed-and-store step for one freshly rendered document.
func (e *Engine) indexDocument(ctx context.Context, docID string, rendered convert.Rendered, renderedPath string) error {
	if e.TextIndex != nil {
		if err := e.TextIndex.Upsert(textindex.Record{
			DocID: docID,
			Title: rendered.Frontmatter.Title,
			Body:  rendered.Body,
			Date:  rendered.Frontmatter.CreatedAt,
			Path:  renderedPath,
		}); err != nil {
			return apperr.Wrap(apperr.KindIndexing, fmt.Sprintf("upsert text index for %s", docID), err)
		}
	}

	if e.Vectors != nil && e.Embedder != nil {
		vector, err := e.Embedder.EmbedPassage(ctx, rendered.Body)
		if err != nil {
			return apperr.Wrap(apperr.KindEmbedding, fmt.Sprintf("embed passage for %s", docID), err)
		}
		if err := e.Vectors.Add(docID, renderedPath, vector); err != nil {
			return err
		}
	}

	return nil
}

func actionName(a Action) string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	default:
		return "skip"
	}
}
