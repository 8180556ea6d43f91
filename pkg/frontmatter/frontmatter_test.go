package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrontmatter() Frontmatter {
	return Frontmatter{
		DocID:           "d1",
		Source:          "granola",
		CreatedAt:       time.Date(2025, 10, 28, 15, 4, 5, 0, time.UTC),
		RemoteUpdatedAt: time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC),
		Title:           "Weekly Sync",
		Participants:    []string{"Alice", "Bob"},
		DurationSeconds: 1800,
		Labels:          []string{"standup"},
		Generator:       "granolasync 1.0.0",
	}
}

func TestWriteReadRoundTripIsIdentity(t *testing.T) {
	fm := sampleFrontmatter()
	body := "# Weekly Sync\n\n**Alice (00:00:12):** Hello\n"

	data := Write(fm, body)
	got, gotBody, err := Read(data)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, fm.DocID, got.DocID)
	assert.Equal(t, fm.Source, got.Source)
	assert.True(t, fm.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, fm.RemoteUpdatedAt.Equal(got.RemoteUpdatedAt))
	assert.Equal(t, fm.Title, got.Title)
	assert.Equal(t, fm.Participants, got.Participants)
	assert.Equal(t, fm.DurationSeconds, got.DurationSeconds)
	assert.Equal(t, fm.Labels, got.Labels)
	assert.Equal(t, fm.Generator, got.Generator)
	assert.Equal(t, body, gotBody)
}

func TestReadAbsentFrontmatterReturnsNilNotError(t *testing.T) {
	fm, body, err := Read([]byte("# just a document\nno header here\n"))
	require.NoError(t, err)
	assert.Nil(t, fm)
	assert.Equal(t, "", body)
}

func TestReadUnterminatedHeaderIsParseError(t *testing.T) {
	_, _, err := Read([]byte("---\ndoc_id: d1\ntitle: Standup\n"))
	assert.Error(t, err)
}

func TestFreshnessTimestampFallsBackToCreatedAt(t *testing.T) {
	fm := Frontmatter{CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.True(t, fm.CreatedAt.Equal(fm.FreshnessTimestamp()))

	fm.RemoteUpdatedAt = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, fm.RemoteUpdatedAt.Equal(fm.FreshnessTimestamp()))
}
