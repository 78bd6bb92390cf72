package md2book

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestFSLoader_Load(t *testing.T) {
	t.Parallel()

	loader := NewFSLoader(fstest.MapFS{
		"SUMMARY.md":      {Data: []byte("* [A](a.md)\n")},
		"ch01/intro.md":   {Data: []byte("intro")},
		"getting-rust.md": {Data: []byte("rust")},
	})

	tests := []struct {
		name    string
		file    string
		want    string
		wantErr error
	}{
		{"top level", "getting-rust.md", "rust", nil},
		{"nested", "ch01/intro.md", "intro", nil},
		{"dot slash", "./ch01/intro.md", "intro", nil},
		{"backslash separator", `ch01\intro.md`, "intro", nil},
		{"missing", "missing.md", "", fs.ErrNotExist},
		{"escapes root", "../secret.md", "", fs.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.Load(tt.file)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Load(%q) error = %v, want %v", tt.file, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(%q) error = %v", tt.file, err)
			}
			if got != tt.want {
				t.Errorf("Load(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestNewDirLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewDirLoader(dir).Load("README.md")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Load() = %q", got)
	}
}
