package paths

import (
	"strconv"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadegen/granolasync/pkg/frontmatter"
)

func TestSlugBasics(t *testing.T) {
	assert.Equal(t, "weekly-sync", Slug("Weekly Sync"))
	assert.Equal(t, "untitled", Slug(""))
	assert.Equal(t, "cafe-meeting", Slug("Café Meeting"))
	assert.Equal(t, "standup", Slug("  Standup!!  "))
}

func TestSlugStripsEmoji(t *testing.T) {
	assert.Equal(t, "launch-plan", Slug("🚀 Launch Plan 🚀"))
}

func TestSlugIsIdempotent(t *testing.T) {
	inputs := []string{"Weekly Sync", "", "🚀 Launch!!", "Café Meeting -- Q3"}
	for _, in := range inputs {
		once := Slug(in)
		twice := Slug(once)
		assert.Equal(t, once, twice, "slug not idempotent for %q", in)
	}
}

func TestCanonicalBaseName(t *testing.T) {
	created := time.Date(2025, 10, 28, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2025-10-28_weekly-sync", CanonicalBaseName(created, "Weekly Sync"))
	assert.Equal(t, "2025-10-28_untitled", CanonicalBaseName(created, ""))
}

func TestEnsureDirsCreatesLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New("/data")
	require.NoError(t, EnsureDirs(fs, p))

	for _, d := range []string{p.Base, p.Raw, p.Rendered, p.IndexText, p.IndexVectors, p.Models} {
		exists, err := afero.DirExists(fs, d)
		require.NoError(t, err)
		assert.True(t, exists, "expected directory %s to exist", d)
	}
}

func TestResolveBaseNameFreshCandidate(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New("/data")
	require.NoError(t, EnsureDirs(fs, p))

	created := time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)
	name, err := ResolveBaseName(fs, p, "d1", created, "Standup")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-28_standup", name)
}

func TestResolveBaseNameReusesMatchingDocID(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New("/data")
	require.NoError(t, EnsureDirs(fs, p))

	created := time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)
	existing := frontmatter.Frontmatter{DocID: "d1", CreatedAt: created, Generator: "granolasync test"}
	require.NoError(t, afero.WriteFile(fs, p.RenderedPath("2025-10-28_standup"), frontmatter.Write(existing, "body"), 0o600))

	name, err := ResolveBaseName(fs, p, "d1", created, "Standup")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-28_standup", name)
}

func TestResolveBaseNameIncrementsOnCollision(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New("/data")
	require.NoError(t, EnsureDirs(fs, p))

	created := time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)
	other := frontmatter.Frontmatter{DocID: "d1", CreatedAt: created, Generator: "granolasync test"}
	require.NoError(t, afero.WriteFile(fs, p.RenderedPath("2025-10-28_standup"), frontmatter.Write(other, "body"), 0o600))

	name, err := ResolveBaseName(fs, p, "d2", created, "Standup")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-28_standup-2", name)
}

func TestResolveBaseNameFailsAfterTooManyCollisions(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New("/data")
	require.NoError(t, EnsureDirs(fs, p))

	created := time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxCollisionAttempts; i++ {
		stem := "2025-10-28_standup"
		candidate := stem
		if i > 0 {
			candidate = stem + "-" + strconv.Itoa(i+1)
		}
		other := frontmatter.Frontmatter{DocID: "occupied", CreatedAt: created, Generator: "granolasync test"}
		require.NoError(t, afero.WriteFile(fs, p.RenderedPath(candidate), frontmatter.Write(other, "body"), 0o600))
	}

	_, err := ResolveBaseName(fs, p, "newcomer", created, "Standup")
	assert.Error(t, err)
}

