// Package convert normalizes a raw remote transcript and its document
// metadata into a canonical rendered document: serialized frontmatter
// plus a human-readable body. It is the only component that sees the
// polymorphic segments/monologues shape; everything downstream reads
// the flat rendered form.
package convert

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/pkg/frontmatter"
)

// Rendered is the converter's output: the frontmatter to persist and
// the body text that follows it.
type Rendered struct {
	Frontmatter frontmatter.Frontmatter
	Body        string
}

// Convert builds a Rendered document from metadata and a raw
// transcript. generator is the tool-version string written to the
// frontmatter's generator field. Convert on identical inputs produces
// byte-identical output.
func Convert(meta DocumentMetadata, raw RawTranscript, generator string) (Rendered, error) {
	createdAt, err := ParseTimestamp(meta.CreatedAt)
	if err != nil {
		return Rendered{}, apperr.Wrap(apperr.KindParse, "parse document created_at", err)
	}

	var updatedAt time.Time
	if meta.UpdatedAt != "" {
		updatedAt, err = ParseTimestamp(meta.UpdatedAt)
		if err != nil {
			return Rendered{}, apperr.Wrap(apperr.KindParse, "parse document updated_at", err)
		}
	}

	utterances := Normalize(raw)
	body := renderBody(meta, utterances, createdAt.UTC().Format("2006-01-02"))

	fm := frontmatter.Frontmatter{
		DocID:           meta.DocID,
		Source:          "granola",
		CreatedAt:       createdAt,
		RemoteUpdatedAt: updatedAt,
		Title:           meta.Title,
		Participants:    meta.Participants,
		Generator:       generator,
	}
	if meta.DurationSeconds != nil {
		fm.DurationSeconds = *meta.DurationSeconds
	}
	if len(meta.Labels) > 0 {
		fm.Labels = meta.Labels
	}

	return Rendered{Frontmatter: fm, Body: body}, nil
}

// ParseTimestamp leniently parses the many timestamp shapes the
// remote service may emit (RFC3339, date-only, etc.), via dateparse
// rather than a fixed time.Parse layout list.
func ParseTimestamp(s string) (time.Time, error) {
	return dateparse.ParseAny(s)
}
