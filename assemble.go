package md2book

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-md2book/internal/logging"
	"github.com/alnah/go-md2book/internal/pipeline"
	"github.com/alnah/go-md2book/internal/toc"
)

// Introduction defaults.
const (
	DefaultIntroduction      = "README.md"
	DefaultIntroductionTitle = "Introduction"

	introReferencePrefix = "readme"
	introHeadingBase     = 1
	chapterHeadingBase   = 3
)

// Book is the input of one assembly: the parsed manifest, the chapter
// source and the metadata written to the front matter.
type Book struct {
	Manifest          []toc.Entry
	Introduction      string // file loaded under the introduction heading; "" skips it
	IntroductionTitle string // defaults to DefaultIntroductionTitle
	Metadata          Metadata
	Loader            ChapterLoader
}

// Assembler merges a book's chapters into one composite Markdown document.
// It is safe for concurrent use.
type Assembler struct {
	links  *pipeline.LinkRewriter
	logger *slog.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithLinkRewriter replaces the default documentation link rewriter.
func WithLinkRewriter(r *pipeline.LinkRewriter) AssemblerOption {
	return func(a *Assembler) {
		if r != nil {
			a.links = r
		}
	}
}

// WithAssemblerLogger sets the logger used for per-chapter debug output.
func WithAssemblerLogger(l *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAssembler creates an Assembler with the default link rewriter.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		links:  pipeline.DefaultLinkRewriter(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Headline returns the section heading for a manifest entry, e.g.
// "## Guessing Game {#sec--guessing-game}".
func Headline(e toc.Entry) string {
	return sectionHeading(e.Level(), pipeline.NormalizeTitle(e.Title), e.AnchorID())
}

func sectionHeading(level int, title, anchor string) string {
	h := strings.Repeat("#", level) + " " + title
	if anchor != "" {
		h += " {" + pipeline.AnchorTarget(anchor) + "}"
	}
	return h
}

// Assemble builds the composite document for one variant: front matter,
// the introduction, then one section per manifest entry in manifest order.
// A missing introduction is skipped; a missing chapter is fatal.
// The context is checked between chapters.
func (a *Assembler) Assemble(ctx context.Context, book Book, variant Variant) (string, error) {
	if book.Loader == nil {
		return "", ErrNoLoader
	}

	frontMatter, err := book.Metadata.FrontMatter()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(frontMatter)

	if book.Introduction != "" {
		if err := a.writeIntroduction(&sb, book, variant); err != nil {
			return "", err
		}
	}

	for _, entry := range book.Manifest {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		start := time.Now()
		raw, err := book.Loader.Load(entry.File)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrChapterRead, entry.File, err)
		}

		content := a.chapterChain(chapterHeadingBase, pipeline.ReferencePrefix(entry.File), variant).Run(raw)
		writeSection(&sb, Headline(entry), content)

		a.logger.Debug("chapter assembled",
			logging.Chapter(entry.File),
			logging.Variant(variant.Name),
			logging.Duration(time.Since(start)))
	}

	doc := pipeline.DocumentChain(pipeline.DocumentOptions{
		ConvertCheckmarks: variant.ConvertCheckmarks,
		StripSymbols:      variant.StripSymbols,
	}).Run(sb.String())

	return doc, nil
}

func (a *Assembler) writeIntroduction(sb *strings.Builder, book Book, variant Variant) error {
	raw, err := book.Loader.Load(book.Introduction)
	if isNotExist(err) {
		a.logger.Debug("no introduction, skipping", logging.Chapter(book.Introduction))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrChapterRead, book.Introduction, err)
	}

	title := book.IntroductionTitle
	if title == "" {
		title = DefaultIntroductionTitle
	}

	content := a.chapterChain(introHeadingBase, introReferencePrefix, variant).Run(raw)
	writeSection(sb, sectionHeading(1, title, ""), content)
	return nil
}

func (a *Assembler) chapterChain(headingBase int, refPrefix string, variant Variant) pipeline.Chain {
	return pipeline.ChapterChain(pipeline.ChapterOptions{
		HeadingBase:     headingBase,
		ReferencePrefix: refPrefix,
		WrapCode:        variant.WrapCode,
		WrapWidth:       variant.WrapWidth,
		Marker:          variant.ContinuationMarker,
		Links:           a.links,
	})
}

// writeSection appends a blank line, the heading, a blank line and the
// content, which always ends with a newline.
func writeSection(sb *strings.Builder, heading, content string) {
	sb.WriteString("\n")
	sb.WriteString(heading)
	sb.WriteString("\n\n")
	sb.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		sb.WriteString("\n")
	}
}
