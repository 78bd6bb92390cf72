package md2book

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// ChapterLoader reads chapter files relative to the book source root.
type ChapterLoader interface {
	// Load returns the raw text of the named file.
	// A missing file yields an error wrapping fs.ErrNotExist.
	Load(name string) (string, error)
}

// FSLoader loads chapters from an fs.FS.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader reading from fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewDirLoader creates a loader rooted at a directory on disk.
func NewDirLoader(dir string) *FSLoader {
	return NewFSLoader(os.DirFS(dir))
}

// Load reads name, a slash-separated path relative to the root. Names
// climbing above the root yield an error wrapping fs.ErrInvalid.
func (l *FSLoader) Load(name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if !fs.ValidPath(clean) {
		return "", fmt.Errorf("%q: %w", name, fs.ErrInvalid)
	}
	b, err := fs.ReadFile(l.fsys, clean)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// isNotExist reports whether err means the file does not exist.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Compile-time interface check.
var _ ChapterLoader = (*FSLoader)(nil)
