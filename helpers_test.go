package md2book

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing/fstest"
	"time"

	"github.com/alnah/go-md2book/internal/toc"
)

// releaseDate is the injected release date used across tests.
var releaseDate = time.Date(2017, 6, 12, 0, 0, 0, 0, time.UTC)

const testManifest = `# Summary

* [Getting Started](getting-started.md)
    * [Installing Rust](installing-rust.md)
* [II: Syntax](syntax.md)
`

// testFS returns a small book: introduction, manifest and three chapters.
func testFS() fstest.MapFS {
	return fstest.MapFS{
		"SUMMARY.md":         {Data: []byte(testManifest)},
		"README.md":          {Data: []byte("% The Book\n\n# About\n\nSee [syntax](syntax.html).\n")},
		"getting-started.md": {Data: []byte("% Getting Started\n\nStart here.\n")},
		"installing-rust.md": {Data: []byte("# Setup\r\n\r\n```rust,ignore\r\n# fn main() {\r\nlet x = 1;\r\n# }\r\n```\r\n")},
		"syntax.md":          {Data: []byte("Read [the docs][std].\n\n[std]: ../std/index.html\n")},
	}
}

func testBook(fsys fstest.MapFS) Book {
	return Book{
		Manifest:     toc.Parse(testManifest),
		Introduction: DefaultIntroduction,
		Metadata:     DefaultMetadata(releaseDate),
		Loader:       NewFSLoader(fsys),
	}
}

// MockRunner records pandoc invocations.
type MockRunner struct {
	mu         sync.Mutex
	Stdout     string
	Stderr     string
	Err        error
	Output     []byte // written to the --output path when set
	CalledWith []string
	Stdin      string
	Calls      int
}

func (m *MockRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.CalledWith = append([]string{name}, args...)
	m.Stdin = stdin
	if m.Output != nil && m.Err == nil {
		for _, a := range args {
			if path, ok := cutOutputFlag(a); ok {
				if err := writeTestFile(path, m.Output); err != nil {
					return "", "", err
				}
			}
		}
	}
	return m.Stdout, m.Stderr, m.Err
}

// stubRenderer returns fixed bytes per format.
type stubRenderer struct {
	mu      sync.Mutex
	err     error
	renders []string
	closed  bool
}

func (s *stubRenderer) Render(ctx context.Context, doc string, target Target) ([]byte, error) {
	s.mu.Lock()
	s.renders = append(s.renders, target.Name)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return []byte(string(target.Format) + ":" + target.Variant), nil
}

func (s *stubRenderer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func cutOutputFlag(arg string) (string, bool) {
	return strings.CutPrefix(arg, "--output=")
}

func writeTestFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o600)
}
