package paths

import (
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/pkg/frontmatter"
)

// maxCollisionAttempts bounds the suffix search; the 101st distinct
// doc_id sharing a date+slug (after the 100 that get stem, -2, ...,
// -100) fails with a Filesystem error, per the documented
// collision-resolution contract.
const maxCollisionAttempts = 100

// ResolveBaseName computes the base name for docID under the
// date/title canonicalization rule and resolves filename collisions
// against existing rendered documents' frontmatter doc_id.
//
// File absent -> use this name. File present with matching doc_id ->
// reuse this name. Otherwise increment a numeric suffix and retry, up
// to maxCollisionAttempts times.
func ResolveBaseName(fs afero.Fs, p Paths, docID string, createdAt time.Time, title string) (string, error) {
	stem := CanonicalBaseName(createdAt, title)

	for attempt := 0; attempt < maxCollisionAttempts; attempt++ {
		candidate := stem
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", stem, attempt+1)
		}

		renderedPath := p.RenderedPath(candidate)
		exists, err := afero.Exists(fs, renderedPath)
		if err != nil {
			return "", apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("stat %s", renderedPath), err)
		}
		if !exists {
			return candidate, nil
		}

		data, err := afero.ReadFile(fs, renderedPath)
		if err != nil {
			return "", apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("read %s", renderedPath), err)
		}
		fm, _, err := frontmatter.Read(data)
		if err != nil {
			// Malformed frontmatter cannot prove identity; treat as a
			// collision and keep searching rather than silently reusing it.
			continue
		}
		if fm != nil && fm.DocID == docID {
			return candidate, nil
		}
	}

	return "", apperr.New(apperr.KindFilesystem, fmt.Sprintf("filename collision unresolved for %q after %d attempts", stem, maxCollisionAttempts))
}
