// Package fs writes extraction archives out as directory trees.
package fs

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitepack"
)

// DirStore unpacks archives with atomic update semantics. Files are written
// to baseDir/name.tmp and moved to baseDir/name on Commit.
type DirStore struct {
	baseDir string
	name    string
}

// NewDirStore creates a new DirStore.
func NewDirStore(baseDir, name string) *DirStore {
	return &DirStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *DirStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the final directory.
func (s *DirStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Unpack writes every file of a zip archive into the temporary directory.
// Entries escaping the directory are rejected.
func (s *DirStore) Unpack(archive []byte) error {
	r, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return sitepack.Errorf(sitepack.EINVALID, "invalid archive: %v", err)
	}

	root := s.tempDir()
	if err := os.RemoveAll(root); err != nil {
		return err
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return sitepack.Errorf(sitepack.EINVALID, "archive entry %q escapes target directory", f.Name)
		}
		if err := writeEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(target, f.Modified, f.Modified)
}

// Commit replaces the final directory with the unpacked tree.
func (s *DirStore) Commit() error {
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.Dir())
}

// Abort removes the temporary directory.
func (s *DirStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
