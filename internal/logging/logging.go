// Package logging builds the slog logger used by md2book and holds the
// canonical attribute keys, so every package logs the same field names.
package logging

import (
	"io"
	"log/slog"
	"time"
)

// Canonical log field names.
const (
	KeyChapter    = "chapter"
	KeyTarget     = "target"
	KeyFormat     = "format"
	KeyVariant    = "variant"
	KeyPath       = "path"
	KeyEngine     = "engine"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Level returns the handler level for the CLI verbosity flags.
// Quiet wins over verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w.
func New(w io.Writer, verbose, quiet bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level(verbose, quiet)}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Attribute helpers, one per canonical key.
func Chapter(file string) slog.Attr { return slog.String(KeyChapter, file) }
func Target(name string) slog.Attr { return slog.String(KeyTarget, name) }
func Format(f string) slog.Attr { return slog.String(KeyFormat, f) }
func Variant(name string) slog.Attr { return slog.String(KeyVariant, name) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Engine(name string) slog.Attr { return slog.String(KeyEngine, name) }
func Duration(d time.Duration) slog.Attr {
	return slog.Int64(KeyDurationMS, d.Milliseconds())
}

// Error returns the error attribute; nil yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
