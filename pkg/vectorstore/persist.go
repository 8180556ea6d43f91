package vectorstore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/pkg/atomicfile"
)

const (
	metadataFileName = "metadata.json"
	vectorsFileName  = "vectors.bin"
)

// manifest is the on-disk metadata.json shape: the ordered (doc_id,
// path) pairs plus the dimension that named vectors.bin must be read
// against.
type manifestEntry struct {
	DocID string `json:"doc_id"`
	Path  string `json:"path"`
}

type manifest struct {
	Dim     int             `json:"dim"`
	Entries []manifestEntry `json:"entries"`
}

// Save persists the store as two artifacts under dir: metadata.json
// (ordered (doc_id,path) entries + dim) and vectors.bin (N*D
// little-endian float32, same order). The binary file is written
// before the manifest so a reader never observes a manifest that
// names more entries than the vector file actually holds. Each file is
// written atomically on its own; a crash between the two writes is not
// covered (Open detects the resulting size mismatch and errors rather
// than silently loading a truncated store).
func Save(fs afero.Fs, dir string, s *Store) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vecBytes := make([]byte, 0, len(s.vectors)*s.dim*4)
	buf := make([]byte, 4)
	for _, v := range s.vectors {
		for _, f := range v {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
			vecBytes = append(vecBytes, buf...)
		}
	}

	m := manifest{Dim: s.dim}
	for _, e := range s.entries {
		m.Entries = append(m.Entries, manifestEntry{DocID: e.docID, Path: e.path})
	}
	metaBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return apperr.Wrap(apperr.KindFilesystem, "marshal vector store manifest", err)
	}

	if err := atomicfile.Write(fs, filepath.Join(dir, vectorsFileName), vecBytes); err != nil {
		return apperr.Wrap(apperr.KindFilesystem, "write vectors.bin", err)
	}
	if err := atomicfile.Write(fs, filepath.Join(dir, metadataFileName), metaBytes); err != nil {
		return apperr.Wrap(apperr.KindFilesystem, "write metadata.json", err)
	}
	return nil
}

// Open reopens a store previously persisted with Save. When
// metadata.json is absent, Open returns an empty store of dimension defaultDim (the
// caller-supplied default, used the first time a data directory is
// initialized).
func Open(fs afero.Fs, dir string, defaultDim int) (*Store, error) {
	metaPath := filepath.Join(dir, metadataFileName)
	vecPath := filepath.Join(dir, vectorsFileName)

	exists, err := afero.Exists(fs, metaPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("stat %s", metaPath), err)
	}
	if !exists {
		return New(defaultDim), nil
	}

	metaBytes, err := afero.ReadFile(fs, metaPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("read %s", metaPath), err)
	}
	var m manifest
	if err := json.Unmarshal(metaBytes, &m); err != nil {
		return nil, apperr.Wrap(apperr.KindParse, fmt.Sprintf("parse %s", metaPath), err)
	}

	vecBytes, err := afero.ReadFile(fs, vecPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFilesystem, fmt.Sprintf("read %s", vecPath), err)
	}

	wantLen := len(m.Entries) * m.Dim * 4
	if len(vecBytes) != wantLen {
		return nil, apperr.New(apperr.KindParse, fmt.Sprintf("vectors.bin size %d does not match manifest (expected %d)", len(vecBytes), wantLen))
	}

	store := New(m.Dim)
	offset := 0
	for _, me := range m.Entries {
		vec := make([]float32, m.Dim)
		for i := 0; i < m.Dim; i++ {
			bits := binary.LittleEndian.Uint32(vecBytes[offset : offset+4])
			vec[i] = math.Float32frombits(bits)
			offset += 4
		}
		if err := store.Add(me.DocID, me.Path, vec); err != nil {
			return nil, err
		}
	}
	return store, nil
}
