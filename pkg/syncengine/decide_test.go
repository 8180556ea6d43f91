package syncengine

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadegen/granolasync/pkg/convert"
	"github.com/kadegen/granolasync/pkg/frontmatter"
)

func TestDecideActionCreateWhenFileAbsent(t *testing.T) {
	fs := afero.NewMemMapFs()
	meta := convert.DocumentMetadata{DocumentSummary: convert.DocumentSummary{DocID: "d1", CreatedAt: "2025-10-28T00:00:00Z"}}

	action, err := decideAction(fs, "/rendered/missing.md", meta)
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, action)
}

func TestDecideActionUpdateWhenFrontmatterAbsent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rendered/doc.md", []byte("# no header here\n"), 0o600))
	meta := convert.DocumentMetadata{DocumentSummary: convert.DocumentSummary{DocID: "d1", CreatedAt: "2025-10-28T00:00:00Z"}}

	action, err := decideAction(fs, "/rendered/doc.md", meta)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, action)
}

func TestDecideActionUpdateWhenFrontmatterMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rendered/doc.md", []byte("---\nno closing delimiter\n"), 0o600))
	meta := convert.DocumentMetadata{DocumentSummary: convert.DocumentSummary{DocID: "d1", CreatedAt: "2025-10-28T00:00:00Z"}}

	action, err := decideAction(fs, "/rendered/doc.md", meta)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, action)
}

func TestDecideActionSkipWhenRemoteNotNewer(t *testing.T) {
	fs := afero.NewMemMapFs()
	fm := frontmatter.Frontmatter{DocID: "d1", CreatedAt: mustParse(t, "2025-10-28T00:00:00Z"), Generator: "granolasync 1.0.0"}
	require.NoError(t, afero.WriteFile(fs, "/rendered/doc.md", frontmatter.Write(fm, "body"), 0o600))

	meta := convert.DocumentMetadata{DocumentSummary: convert.DocumentSummary{
		DocID: "d1", CreatedAt: "2025-10-28T00:00:00Z",
	}}

	action, err := decideAction(fs, "/rendered/doc.md", meta)
	require.NoError(t, err)
	assert.Equal(t, ActionSkip, action)
}

func TestDecideActionUpdateWhenRemoteNewer(t *testing.T) {
	fs := afero.NewMemMapFs()
	fm := frontmatter.Frontmatter{DocID: "d1", CreatedAt: mustParse(t, "2025-10-28T00:00:00Z"), Generator: "granolasync 1.0.0"}
	require.NoError(t, afero.WriteFile(fs, "/rendered/doc.md", frontmatter.Write(fm, "body"), 0o600))

	meta := convert.DocumentMetadata{DocumentSummary: convert.DocumentSummary{
		DocID: "d1", CreatedAt: "2025-10-28T00:00:00Z", UpdatedAt: "2025-10-29T00:00:00Z",
	}}

	action, err := decideAction(fs, "/rendered/doc.md", meta)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, action)
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := convert.ParseTimestamp(s)
	require.NoError(t, err)
	return parsed
}
