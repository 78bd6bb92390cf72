package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	md2book "github.com/alnah/go-md2book"
	"github.com/alnah/go-md2book/internal/assets"
)

// releaseDay is the injected clock of every CLI test.
var releaseDay = time.Date(2017, 6, 12, 15, 4, 5, 0, time.UTC)

// stubRenderer renders "<target>:<bytes of doc>" without pandoc or Chrome.
type stubRenderer struct {
	err error
}

func (s *stubRenderer) Render(_ context.Context, _ string, target md2book.Target) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("rendered " + target.Name), nil
}

func (s *stubRenderer) Close() error { return nil }

// rendererRecorder is a rendererConstructor remembering the settings it saw.
type rendererRecorder struct {
	mu       sync.Mutex
	settings []rendererSettings
	err      error // returned by Render
}

func (r *rendererRecorder) construct(_ assets.AssetLoader, s rendererSettings) (md2book.Renderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = append(r.settings, s)
	return &stubRenderer{err: r.err}, nil
}

// testEnv returns an Environment with buffers, a fixed clock, the given
// environment variables and a stub renderer.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer, *rendererRecorder) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	rec := &rendererRecorder{}
	env := &Environment{
		Now:    func() time.Time { return releaseDay },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			kv := make([]string, 0, len(vars))
			for k, v := range vars {
				kv = append(kv, k+"="+v)
			}
			return kv
		},
		NewRenderer: rec.construct,
	}
	return env, stdout, stderr, rec
}

// defaultBook is a small book source.
var defaultBook = map[string]string{
	"SUMMARY.md":         "# Summary\n\n* [Getting Started](getting-started.md)\n* [Syntax](syntax.md)\n",
	"README.md":          "Welcome.\n",
	"getting-started.md": "% Getting Started\n\nSee [syntax](syntax.html).\n",
	"syntax.md":          "# Expressions\n\nText.\n",
}

// writeBook writes files into a new temp directory and returns it.
func writeBook(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// withFiles returns a copy of base with overrides applied.
func withFiles(base map[string]string, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
