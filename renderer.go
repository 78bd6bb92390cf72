package md2book

import (
	"context"
	"path"
	"strings"
)

// Engine names.
const (
	EnginePandoc = "pandoc"
	EngineNative = "native"
)

// Renderer turns a composite document into one target's bytes.
type Renderer interface {
	Render(ctx context.Context, doc string, target Target) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ Renderer = (*PandocRenderer)(nil)
	_ Renderer = (*NativeRenderer)(nil)
)

// outputExtension returns the last extension of the target suffix
// ("a4.pdf" -> "pdf"), falling back to the format name.
func outputExtension(t Target) string {
	if ext := strings.TrimPrefix(path.Ext("x."+t.Suffix), "."); ext != "" {
		return ext
	}
	return string(t.Format)
}
