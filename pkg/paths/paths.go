// Package paths computes the on-disk data-directory layout and the
// canonical per-document filenames granolasync reads and writes, and
// resolves filename collisions against a document's frontmatter doc_id.
package paths

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// dataDirName is suffixed onto XDG_DATA_HOME (or its platform default)
// to form the tool's base directory.
const dataDirName = "granolasync"

// dirMode is the permission granted to every directory the resolver
// creates; user-only, matching the "owner full access" data-layout rule.
const dirMode = 0o700

// Paths is the resolved data-directory layout. Every field is an
// absolute path; callers may override any of them before calling
// EnsureDirs.
type Paths struct {
	Base         string
	Raw          string
	Rendered     string
	IndexText    string
	IndexVectors string
	Models       string
}

// Default resolves Paths rooted at the platform data-directory
// convention: $XDG_DATA_HOME/granolasync, falling back to
// $HOME/.local/share/granolasync when XDG_DATA_HOME is unset.
func Default() (Paths, error) {
	root := os.Getenv("XDG_DATA_HOME")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		root = filepath.Join(home, ".local", "share")
	}
	return New(filepath.Join(root, dataDirName)), nil
}

// New builds a Paths rooted at base with the standard subdirectory
// layout.
func New(base string) Paths {
	return Paths{
		Base:         base,
		Raw:          filepath.Join(base, "raw"),
		Rendered:     filepath.Join(base, "rendered"),
		IndexText:    filepath.Join(base, "index", "text"),
		IndexVectors: filepath.Join(base, "index", "vectors"),
		Models:       filepath.Join(base, "models"),
	}
}

// EnsureDirs creates every directory in p (and its parents) with
// user-only permissions, where the filesystem backend supports modes.
func EnsureDirs(fs afero.Fs, p Paths) error {
	dirs := []string{p.Base, p.Raw, p.Rendered, p.IndexText, p.IndexVectors, p.Models}
	for _, d := range dirs {
		if err := fs.MkdirAll(d, dirMode); err != nil {
			return err
		}
	}
	return nil
}

// RawPath returns the raw-transcript path for a given base name.
func (p Paths) RawPath(baseName string) string {
	return filepath.Join(p.Raw, baseName+".json")
}

// RenderedPath returns the rendered-document path for a given base name.
func (p Paths) RenderedPath(baseName string) string {
	return filepath.Join(p.Rendered, baseName+".md")
}

// CanonicalBaseName computes "{Y-M-D}_{slug(title)}" for a document
// created at createdAt with the given title (title may be empty, in
// which case the slug degrades to "untitled").
func CanonicalBaseName(createdAt time.Time, title string) string {
	return createdAt.UTC().Format("2006-01-02") + "_" + Slug(title)
}
