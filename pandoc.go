package md2book

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alnah/go-md2book/internal/assets"
	"github.com/alnah/go-md2book/internal/fileutil"
	"github.com/alnah/go-md2book/internal/logging"
	"github.com/alnah/go-md2book/internal/process"
)

// MarkdownDialect is the pandoc input format of the composite document.
const MarkdownDialect = "markdown+grid_tables+pipe_tables-simple_tables+raw_html+implicit_figures" +
	"+footnotes+intraword_underscores+auto_identifiers-inline_code_attributes"

// Pandoc defaults.
const (
	DefaultPandocBinary = "pandoc"
	DefaultPDFEngine    = "xelatex"
	highlightStyle      = "tango"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The child runs in its
// own process group, killed when ctx is canceled.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, string, error) {
	cmd := process.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		return stdout.String(), stderr.String(), ctxErr
	}
	return stdout.String(), stderr.String(), err
}

// PandocRenderer renders targets by piping the document to the pandoc CLI.
type PandocRenderer struct {
	Runner       CommandRunner
	Binary       string
	PDFEngine    string
	ResourcePath string // directory pandoc resolves images against
	Bundle       *assets.Bundle

	logger  *slog.Logger
	cleanup func()
}

// PandocOption configures a PandocRenderer.
type PandocOption func(*PandocRenderer)

// WithRunner replaces the command runner (tests).
func WithRunner(r CommandRunner) PandocOption {
	return func(p *PandocRenderer) { p.Runner = r }
}

// WithPandocBinary sets the pandoc executable name or path.
func WithPandocBinary(bin string) PandocOption {
	return func(p *PandocRenderer) {
		if bin != "" {
			p.Binary = bin
		}
	}
}

// WithPDFEngine sets the LaTeX engine pandoc uses for pdf targets.
func WithPDFEngine(engine string) PandocOption {
	return func(p *PandocRenderer) {
		if engine != "" {
			p.PDFEngine = engine
		}
	}
}

// WithResourcePath sets the directory images are resolved against.
func WithResourcePath(dir string) PandocOption {
	return func(p *PandocRenderer) { p.ResourcePath = dir }
}

// WithPandocLogger sets the logger used for per-target debug output.
func WithPandocLogger(l *slog.Logger) PandocOption {
	return func(p *PandocRenderer) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPandocRenderer writes the templates and stylesheets resolved by loader
// to a temporary directory and returns a renderer pointing pandoc at them.
// Close removes the directory.
func NewPandocRenderer(loader assets.AssetLoader, opts ...PandocOption) (*PandocRenderer, error) {
	bundle, cleanup, err := assets.WriteTempBundle(loader)
	if err != nil {
		return nil, fmt.Errorf("preparing pandoc assets: %w", err)
	}

	p := &PandocRenderer{
		Runner:    &ExecRunner{},
		Binary:    DefaultPandocBinary,
		PDFEngine: DefaultPDFEngine,
		Bundle:    bundle,
		logger:    logging.Discard(),
		cleanup:   cleanup,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Args returns the pandoc arguments rendering target into output.
func (p *PandocRenderer) Args(target Target, output string) []string {
	args := []string{
		"--from=" + MarkdownDialect,
		"--standalone",
		"--highlight-style=" + highlightStyle,
		"--table-of-contents",
	}
	if p.ResourcePath != "" {
		args = append(args, "--resource-path="+p.ResourcePath)
	}

	b := p.Bundle
	if b == nil {
		b = &assets.Bundle{}
	}

	switch target.Format {
	case FormatHTML:
		args = append(args, "--embed-resources", "--section-divs")
		args = appendIf(args, "--template=", b.HTMLTemplate)
		args = appendIf(args, "--css=", b.HTMLStyle)
		args = append(args, "--to=html5")
	case FormatEPUB:
		args = appendIf(args, "--css=", b.EPUBStyle)
		args = append(args, "--to=epub")
	case FormatLaTeX, FormatPDF:
		args = append(args, "--top-level-division=chapter")
		args = appendIf(args, "--template=", b.LaTeXTemplate)
		if target.Format == FormatPDF {
			args = append(args, "--pdf-engine="+p.PDFEngine)
			if target.PageSize != "" {
				args = append(args, "--variable=papersize:"+target.PageSize.Paper())
			}
		}
		args = append(args, "--to=latex")
	}

	return append(args, "--output="+output)
}

func appendIf(args []string, flag, value string) []string {
	if value == "" {
		return args
	}
	return append(args, flag+value)
}

// Render runs pandoc for target and returns the produced file.
func (p *PandocRenderer) Render(ctx context.Context, doc string, target Target) ([]byte, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	output, cleanup, err := fileutil.TempPath(outputExtension(target))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	defer cleanup()

	start := time.Now()
	_, stderr, err := p.Runner.Run(ctx, doc, p.Binary, p.Args(target, output)...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrPandocNotFound, err)
		}
		return nil, fmt.Errorf("%w: %s: %s: %v", ErrRender, target.Name, strings.TrimSpace(stderr), err)
	}

	data, err := os.ReadFile(output) // #nosec G304 -- path from TempPath
	if err != nil {
		return nil, fmt.Errorf("%w: reading pandoc output: %v", ErrRender, err)
	}

	p.logger.Debug("pandoc finished",
		logging.Target(target.Name),
		logging.Format(string(target.Format)),
		logging.Duration(time.Since(start)))

	return data, nil
}

// Close removes the temporary asset bundle.
func (p *PandocRenderer) Close() error {
	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}
