package syncengine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/pkg/frontmatter"
	"github.com/kadegen/granolasync/pkg/textindex"
	"github.com/kadegen/granolasync/pkg/vectorstore"
)

// Reindex walks the existing rendered-document tree and performs the
// index/vector upserts using each file's on-disk frontmatter and body,
// without any remote calls. Used after restoring files from backup or
// after attaching an index to a data directory that predates it.
func (e *Engine) Reindex(ctx context.Context) (RunSummary, error) {
	var summary RunSummary

	entries, err := afero.ReadDir(e.FS, e.Paths.Rendered)
	if err != nil {
		if os.IsNotExist(err) {
			return summary, nil
		}
		return summary, apperr.Wrap(apperr.KindFilesystem, "list rendered documents", err)
	}

	names := make([]string, 0, len(entries))
	for _, info := range entries {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".md") {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)
	summary.Listed = len(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, apperr.Wrap(apperr.KindFilesystem, "reindex cancelled", err)
		}

		renderedPath := filepath.Join(e.Paths.Rendered, name)
		data, err := afero.ReadFile(e.FS, renderedPath)
		if err != nil {
			return summary, apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("read %s", renderedPath), err)
		}

		fm, body, err := frontmatter.Read(data)
		if err != nil {
			return summary, apperr.Wrap(apperr.KindParse, fmt.Sprintf("parse frontmatter for %s", renderedPath), err)
		}
		if fm == nil {
			// No provenance to index against; skip rather than guess a doc_id.
			summary.Skipped++
			continue
		}

		if e.TextIndex != nil {
			if err := e.TextIndex.Upsert(textindex.Record{
				DocID: fm.DocID,
				Title: fm.Title,
				Body:  body,
				Date:  fm.CreatedAt,
				Path:  renderedPath,
			}); err != nil {
				return summary, apperr.Wrap(apperr.KindIndexing, fmt.Sprintf("upsert text index for %s", fm.DocID), err)
			}
		}

		if e.Vectors != nil && e.Embedder != nil {
			vector, err := e.Embedder.EmbedPassage(ctx, body)
			if err != nil {
				return summary, apperr.Wrap(apperr.KindEmbedding, fmt.Sprintf("embed passage for %s", fm.DocID), err)
			}
			if err := e.Vectors.Add(fm.DocID, renderedPath, vector); err != nil {
				return summary, err
			}
		}

		summary.Updated++
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
