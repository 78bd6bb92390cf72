package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads styles and templates from an override directory
// laid out like the embedded one: styles/<name>.css and templates/<name>.
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader checks that dir is a readable directory.
// Returns ErrInvalidBasePath otherwise.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	if _, err := os.ReadDir(root); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, root)
		case !isDir(root):
			return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, root)
		default:
			return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
		}
	}

	return &FilesystemLoader{root: root}, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// LoadStyle reads styles/<name>.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := validateStyleName(name); err != nil {
		return "", err
	}
	return f.read(filepath.Join("styles", name+".css"), ErrStyleNotFound, name)
}

// LoadTemplate reads templates/<name>.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	return f.read(filepath.Join("templates", name), ErrTemplateNotFound, name)
}

// read loads rel under the root. A symlink resolving outside the root is
// ErrPathTraversal; a missing file is notFound.
func (f *FilesystemLoader) read(rel string, notFound error, name string) (string, error) {
	path := filepath.Join(f.root, rel)
	if err := f.contain(path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- contained in the asset directory
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// contain rejects paths whose real location is outside the root. Paths
// that do not exist yet are checked as written.
func (f *FilesystemLoader) contain(path string) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	rel, err := filepath.Rel(f.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, path, f.root)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
