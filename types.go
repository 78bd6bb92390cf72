package md2book

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-md2book/internal/dateutil"
	"github.com/alnah/go-md2book/internal/pipeline"
)

// Format is an output document format.
type Format string

// Supported output formats.
const (
	FormatHTML  Format = "html"
	FormatEPUB  Format = "epub"
	FormatLaTeX Format = "latex"
	FormatPDF   Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatHTML, FormatEPUB, FormatLaTeX, FormatPDF}

// PageSize is the paper size of a typeset target.
type PageSize string

// Page size constants.
const (
	PageSizeA4     PageSize = "a4"
	PageSizeLetter PageSize = "letter"
)

// Paper returns the LaTeX paper name ("a4paper", "letterpaper").
func (p PageSize) Paper() string {
	return string(p) + "paper"
}

// MaxTOCDepth is the deepest table of contents level LaTeX understands here.
const MaxTOCDepth = 6

// Metadata is the book-level information written to the front matter.
type Metadata struct {
	Title          string
	Author         string
	Date           time.Time // release date, resolved once per run
	Language       string
	DocumentClass  string
	LinksAsNotes   bool
	VerbatimInNote bool
	TOCDepth       int
}

// DefaultMetadata returns the metadata of the Rust book.
func DefaultMetadata(date time.Time) Metadata {
	return Metadata{
		Title:          "The Rust Programming Language",
		Author:         "The Rust Project Developers",
		Date:           date,
		Language:       "en-US",
		DocumentClass:  "scrbook",
		LinksAsNotes:   true,
		VerbatimInNote: true,
		TOCDepth:       2,
	}
}

// Validate checks that metadata can be written to front matter.
func (m Metadata) Validate() error {
	if m.TOCDepth < 0 || m.TOCDepth > MaxTOCDepth {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidTOCDepth, m.TOCDepth, MaxTOCDepth)
	}
	return nil
}

// ReleaseDate returns the date formatted as YYYY-MM-DD.
func (m Metadata) ReleaseDate() string {
	return dateutil.FormatISO(m.Date)
}

// Variant is a named assembly profile: the same book can be assembled for
// screen reading and for print.
type Variant struct {
	Name               string
	WrapCode           bool
	WrapWidth          int
	ContinuationMarker string
	StripSymbols       bool
	ConvertCheckmarks  bool
}

// Variant names used by DefaultVariants.
const (
	VariantScreen = "screen"
	VariantPrint  = "print"
)

// ScreenVariant keeps the chapter text as written.
func ScreenVariant() Variant {
	return Variant{Name: VariantScreen}
}

// PrintVariant wraps long code lines and drops glyphs LaTeX fonts lack.
func PrintVariant() Variant {
	return Variant{
		Name:               VariantPrint,
		WrapCode:           true,
		WrapWidth:          pipeline.DefaultWrapWidth,
		ContinuationMarker: pipeline.DefaultContinuationMarker,
		StripSymbols:       true,
		ConvertCheckmarks:  true,
	}
}

// DefaultVariants returns the screen and print variants, keyed by name.
func DefaultVariants() map[string]Variant {
	return map[string]Variant{
		VariantScreen: ScreenVariant(),
		VariantPrint:  PrintVariant(),
	}
}

// Target is one rendered artifact.
type Target struct {
	Name     string
	Format   Format
	Variant  string
	PageSize PageSize // pdf only
	Suffix   string   // file name suffix, e.g. "a4.pdf"
}

// Validate checks the target's format, page size and suffix.
func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTarget)
	}
	if !slices.Contains(Formats, t.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, t.Format)
	}
	switch t.PageSize {
	case "":
	case PageSizeA4, PageSizeLetter:
		if t.Format != FormatPDF {
			return fmt.Errorf("%w: %q applies to pdf targets only", ErrInvalidPageSize, t.PageSize)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, t.PageSize)
	}
	if t.Suffix == "" || strings.ContainsAny(t.Suffix, `/\`) {
		return fmt.Errorf("%w: %q has invalid suffix %q", ErrInvalidTarget, t.Name, t.Suffix)
	}
	return nil
}

// DefaultTargets returns the artifacts of the original book build: html,
// epub and tex from the screen variant, a4 and letter pdf from print.
func DefaultTargets() []Target {
	return []Target{
		{Name: "html", Format: FormatHTML, Variant: VariantScreen, Suffix: "html"},
		{Name: "epub", Format: FormatEPUB, Variant: VariantScreen, Suffix: "epub"},
		{Name: "tex", Format: FormatLaTeX, Variant: VariantScreen, Suffix: "tex"},
		{Name: "pdf-a4", Format: FormatPDF, Variant: VariantPrint, PageSize: PageSizeA4, Suffix: "a4.pdf"},
		{Name: "pdf-letter", Format: FormatPDF, Variant: VariantPrint, PageSize: PageSizeLetter, Suffix: "letter.pdf"},
	}
}

// ArtifactName returns "<prefix>-<YYYY-MM-DD>.<suffix>".
func ArtifactName(prefix string, date time.Time, suffix string) string {
	return prefix + "-" + dateutil.FormatISO(date) + "." + suffix
}
