package md2book

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-md2book/internal/assets"
	"github.com/alnah/go-md2book/internal/logging"
	"github.com/alnah/go-md2book/internal/pipeline"
	"github.com/alnah/go-md2book/internal/yamlutil"
)

// NativeRenderer renders html and pdf targets in process: goldmark for
// HTML and headless Chrome for PDF. It needs no pandoc or LaTeX install.
type NativeRenderer struct {
	html      pipeline.HTMLConverter
	pdf       pdfConverter
	css       string
	sourceDir string
	timeout   time.Duration
	logger    *slog.Logger
}

// NativeOption configures a NativeRenderer.
type NativeOption func(*NativeRenderer)

// WithSourceDir sets the directory relative image paths resolve against.
func WithSourceDir(dir string) NativeOption {
	return func(n *NativeRenderer) { n.sourceDir = dir }
}

// WithTimeout bounds one browser page load.
func WithTimeout(d time.Duration) NativeOption {
	return func(n *NativeRenderer) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// WithNativeLogger sets the logger used for per-target debug output.
func WithNativeLogger(l *slog.Logger) NativeOption {
	return func(n *NativeRenderer) {
		if l != nil {
			n.logger = l
		}
	}
}

// withPDFConverter replaces the browser (tests).
func withPDFConverter(c pdfConverter) NativeOption {
	return func(n *NativeRenderer) { n.pdf = c }
}

// withHTMLConverter replaces goldmark (tests).
func withHTMLConverter(c pipeline.HTMLConverter) NativeOption {
	return func(n *NativeRenderer) { n.html = c }
}

// NewNativeRenderer creates a NativeRenderer styled with the native
// stylesheet resolved by loader. The browser starts on the first pdf target.
func NewNativeRenderer(loader assets.AssetLoader, opts ...NativeOption) (*NativeRenderer, error) {
	css, err := loader.LoadStyle(assets.StyleNative)
	if err != nil {
		return nil, fmt.Errorf("loading native style: %w", err)
	}

	n := &NativeRenderer{
		html:    pipeline.NewGoldmarkConverter(),
		css:     css,
		timeout: DefaultTimeout,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.pdf == nil {
		n.pdf = newRodConverter(n.timeout)
	}
	return n, nil
}

// pageMetadata is the part of the front matter the HTML page needs.
type pageMetadata struct {
	Title    string `yaml:"title"`
	Language string `yaml:"language"`
}

// Render converts doc to HTML, then to PDF for pdf targets.
// epub and latex targets need pandoc and return ErrUnsupported.
func (n *NativeRenderer) Render(ctx context.Context, doc string, target Target) ([]byte, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if target.Format != FormatHTML && target.Format != FormatPDF {
		return nil, fmt.Errorf("%w: %s (native engine renders html and pdf)", ErrUnsupported, target.Format)
	}

	start := time.Now()
	header, body := pipeline.SplitFrontMatter(doc)
	var meta pageMetadata
	if header != "" {
		if err := yamlutil.Unmarshal([]byte(header), &meta); err != nil {
			n.logger.Warn("unreadable front matter", logging.Error(err))
		}
	}

	page, err := n.html.ToHTML(ctx, body, pipeline.HTMLPage{
		Title:    meta.Title,
		Language: meta.Language,
		CSS:      n.css,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	page, err = pipeline.RewriteImagePaths(page, n.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	if target.Format == FormatHTML {
		n.logger.Debug("html rendered", logging.Target(target.Name), logging.Duration(time.Since(start)))
		return []byte(page), nil
	}

	pdf, err := n.pdf.ToPDF(ctx, page, target.PageSize)
	if err != nil {
		return nil, err
	}
	n.logger.Debug("pdf rendered", logging.Target(target.Name), logging.Duration(time.Since(start)))
	return pdf, nil
}

// Close releases the browser.
func (n *NativeRenderer) Close() error {
	if n.pdf != nil {
		return n.pdf.Close()
	}
	return nil
}
