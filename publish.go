package md2book

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-md2book/internal/fileutil"
	"github.com/alnah/go-md2book/internal/logging"
)

// markdownSuffix is the suffix of the composite Markdown artifact.
const markdownSuffix = "md"

// DefaultPrefix is the artifact name prefix of the Rust book.
const DefaultPrefix = "trpl"

// Result is the outcome of one target.
type Result struct {
	Target   Target
	Path     string
	Bytes    int
	Duration time.Duration
	Err      error
}

// Publisher assembles a book once per variant and renders every target
// into the output directory.
type Publisher struct {
	assembler     *Assembler
	pool          *RendererPool
	variants      map[string]Variant
	outputDir     string
	prefix        string
	markdown      string // variant written as <prefix>-<date>.md; "" disables
	logger        *slog.Logger
	progress      io.Writer
	progressMu    sync.Mutex
	writeArtifact func(path string, data []byte) error
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithVariants replaces the default screen and print variants.
func WithVariants(v map[string]Variant) PublisherOption {
	return func(p *Publisher) {
		if len(v) > 0 {
			p.variants = v
		}
	}
}

// WithPrefix sets the artifact name prefix.
func WithPrefix(prefix string) PublisherOption {
	return func(p *Publisher) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// WithMarkdownVariant selects the variant written as the Markdown artifact.
// An empty name disables it.
func WithMarkdownVariant(name string) PublisherOption {
	return func(p *Publisher) { p.markdown = name }
}

// WithProgress writes one "[✓] NAME" line per finished artifact to w.
func WithProgress(w io.Writer) PublisherOption {
	return func(p *Publisher) { p.progress = w }
}

// WithPublisherLogger sets the logger.
func WithPublisherLogger(l *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPublisher creates a Publisher writing into outputDir. The pool bounds
// concurrent renders; Close closes it.
func NewPublisher(assembler *Assembler, pool *RendererPool, outputDir string, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		assembler:     assembler,
		pool:          pool,
		variants:      DefaultVariants(),
		outputDir:     outputDir,
		prefix:        DefaultPrefix,
		markdown:      VariantScreen,
		logger:        logging.Discard(),
		writeArtifact: fileutil.WriteFileAtomic,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close releases the renderers.
func (p *Publisher) Close() error {
	if p.pool == nil {
		return nil
	}
	return p.pool.Close()
}

// ArtifactPath returns where the artifact with suffix is written.
func (p *Publisher) ArtifactPath(date time.Time, suffix string) string {
	return filepath.Join(p.outputDir, ArtifactName(p.prefix, date, suffix))
}

// Publish assembles each variant the targets need, writes the Markdown
// artifact, then renders the targets concurrently. Results follow the
// order of targets. The returned error joins every failure; setup errors
// (invalid target, unknown variant, assembly) return no results.
func (p *Publisher) Publish(ctx context.Context, book Book, targets []Target) ([]Result, error) {
	if err := p.validate(targets); err != nil {
		return nil, err
	}

	docs, err := p.assembleVariants(ctx, book, targets)
	if err != nil {
		return nil, err
	}

	date := book.Metadata.Date
	if p.markdown != "" {
		path := p.ArtifactPath(date, markdownSuffix)
		if err := p.writeArtifact(path, []byte(docs[p.markdown])); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArtifactWrite, path, err)
		}
		p.logger.Info("markdown written", logging.Path(path))
		p.reportProgress(markdownSuffix)
	}

	results := make([]Result, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.renderTarget(ctx, docs[target.Variant], target, date)
		}()
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Target.Name, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

func (p *Publisher) validate(targets []Target) error {
	if p.markdown != "" {
		if _, ok := p.variants[p.markdown]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownVariant, p.markdown)
		}
	}
	for _, t := range targets {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, ok := p.variants[t.Variant]; !ok {
			return fmt.Errorf("%w: %q (target %s)", ErrUnknownVariant, t.Variant, t.Name)
		}
	}
	return nil
}

// assembleVariants assembles every needed variant once, sequentially.
func (p *Publisher) assembleVariants(ctx context.Context, book Book, targets []Target) (map[string]string, error) {
	var names []string
	if p.markdown != "" {
		names = append(names, p.markdown)
	}
	for _, t := range targets {
		names = append(names, t.Variant)
	}

	docs := make(map[string]string, len(p.variants))
	for _, name := range names {
		if _, done := docs[name]; done {
			continue
		}
		start := time.Now()
		doc, err := p.assembler.Assemble(ctx, book, p.variants[name])
		if err != nil {
			return nil, err
		}
		docs[name] = doc
		p.logger.Debug("variant assembled", logging.Variant(name), logging.Duration(time.Since(start)))
	}
	return docs, nil
}

func (p *Publisher) renderTarget(ctx context.Context, doc string, target Target, date time.Time) (res Result) {
	res.Target = target
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	r, err := p.pool.Acquire(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	data, err := r.Render(ctx, doc, target)
	p.pool.Release(r)
	if err != nil {
		p.logger.Error("render failed", logging.Target(target.Name), logging.Error(err))
		res.Err = err
		return res
	}

	path := p.ArtifactPath(date, target.Suffix)
	if err := p.writeArtifact(path, data); err != nil {
		res.Err = fmt.Errorf("%w: %s: %v", ErrArtifactWrite, path, err)
		return res
	}

	res.Path = path
	res.Bytes = len(data)
	p.logger.Info("artifact written",
		logging.Target(target.Name),
		logging.Path(path),
		logging.Duration(time.Since(start)))
	p.reportProgress(target.Suffix)
	return res
}

func (p *Publisher) reportProgress(suffix string) {
	if p.progress == nil {
		return
	}
	p.progressMu.Lock()
	defer p.progressMu.Unlock()
	_, _ = fmt.Fprintf(p.progress, "[✓] %s\n", strings.ToUpper(suffix))
}
