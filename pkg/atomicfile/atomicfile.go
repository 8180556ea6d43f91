// Package atomicfile provides durable write-then-rename file writes: a
// write either leaves the destination containing exactly the new bytes,
// or leaves it unchanged. No partial-write state is ever observable at
// the destination path.
package atomicfile

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/kadegen/granolasync/internal/apperr"
)

// fileMode is the permission applied to the written file; owner
// read/write only.
const fileMode = 0o600

// dirMode is the permission applied to any parent directory chain this
// package creates on the destination's behalf.
const dirMode = 0o700

// Write durably writes data to path: it creates path's parent directory
// chain if missing, writes data to a uniquely named temporary file in
// the same directory, sets its mode, and renames it onto path. Any
// early return during the sequence cleans up the temporary file so it
// never leaks into the destination's name.
func Write(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, dirMode); err != nil {
		return apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("create parent directory %s", dir), err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	if err := afero.WriteFile(fs, tmpPath, data, fileMode); err != nil {
		_ = fs.Remove(tmpPath)
		return apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("write temp file for %s", path), err)
	}

	if err := fs.Chmod(tmpPath, fileMode); err != nil {
		cleanupErr := fs.Remove(tmpPath)
		return apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("chmod temp file for %s", path), combine(err, cleanupErr))
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		cleanupErr := fs.Remove(tmpPath)
		return apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("rename temp file onto %s", path), combine(err, cleanupErr))
	}

	return nil
}

// combine folds an optional cleanup error into the primary error
// without masking it, using go-multierror so both are visible when
// both occur.
func combine(primary, cleanup error) error {
	if cleanup == nil {
		return primary
	}
	return multierror.Append(primary, cleanup)
}
