package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	md2book "github.com/alnah/go-md2book"
	"github.com/alnah/go-md2book/internal/config"
	"github.com/alnah/go-md2book/internal/dateutil"
	"github.com/alnah/go-md2book/internal/pipeline"
	"github.com/alnah/go-md2book/internal/toc"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownTarget  = errors.New("unknown target")
	ErrOutputDir      = errors.New("cannot create output directory")
	ErrAnchorProblems = errors.New("anchor problems found")
)

// usageError marks err as a command line mistake.
func usageError(err error) error {
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// loadConfig returns the configuration for one run: defaults, then the
// config file (flag or MD2BOOK_CONFIG), then environment, then flags.
func loadConfig(f *commandFlags, args []string, env *Environment) (*config.Config, error) {
	if len(args) > 1 {
		return nil, usageError(fmt.Errorf("expected at most one source directory, got %d", len(args)))
	}

	envCfg := loadEnvConfig(env.Getenv)

	cfg := config.DefaultConfig()
	name := f.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	applyFlags(f, args, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags merges CLI flags into cfg (CLI wins).
func applyFlags(f *commandFlags, args []string, cfg *config.Config) {
	if len(args) == 1 {
		cfg.Source.Dir = args[0]
	}
	if f.source.manifest != "" {
		cfg.Source.Manifest = f.source.manifest
	}
	if f.introSet {
		cfg.Source.Introduction = f.source.intro
	}
	if f.source.prefix != "" {
		cfg.Output.Prefix = f.source.prefix
	}
	if f.source.assets != "" {
		cfg.Assets.BasePath = f.source.assets
	}
	if f.book.date != "" {
		cfg.Book.Date = f.book.date
	}
	if f.book.title != "" {
		cfg.Book.Title = f.book.title
	}
	if f.book.author != "" {
		cfg.Book.Author = f.book.author
	}
	if f.render.engine != "" {
		cfg.Renderer.Engine = f.render.engine
	}
	if f.render.workers > 0 {
		cfg.Renderer.Workers = f.render.workers
	}
	if f.render.timeout != "" {
		cfg.Renderer.Timeout = f.render.timeout
	}
}

// buildMetadata resolves the release date once, with the injected clock.
func buildMetadata(cfg *config.Config, now func() time.Time) (md2book.Metadata, error) {
	date, err := dateutil.ResolveReleaseDate(cfg.Book.Date, now())
	if err != nil {
		return md2book.Metadata{}, err
	}

	b := cfg.Book
	return md2book.Metadata{
		Title:          b.Title,
		Author:         b.Author,
		Date:           date,
		Language:       b.Language,
		DocumentClass:  b.DocumentClass,
		LinksAsNotes:   b.LinksAsNotes,
		VerbatimInNote: b.VerbatimInNote,
		TOCDepth:       b.TOCDepth,
	}, nil
}

// buildVariants converts the configured assembly profiles.
func buildVariants(cfg *config.Config) map[string]md2book.Variant {
	variants := make(map[string]md2book.Variant, len(cfg.Variants))
	for name, v := range cfg.Variants {
		variants[name] = md2book.Variant{
			Name:               name,
			WrapCode:           v.WrapCode,
			WrapWidth:          v.WrapWidth,
			ContinuationMarker: v.ContinuationMarker,
			StripSymbols:       v.StripSymbols,
			ConvertCheckmarks:  v.ConvertCheckmarks,
		}
	}
	return variants
}

// buildTargets converts the configured targets, in configuration order.
func buildTargets(cfg *config.Config) []md2book.Target {
	targets := make([]md2book.Target, len(cfg.Targets))
	for i, t := range cfg.Targets {
		targets[i] = md2book.Target{
			Name:     t.Name,
			Format:   md2book.Format(t.Format),
			Variant:  t.Variant,
			PageSize: md2book.PageSize(t.PageSize),
			Suffix:   t.Suffix,
		}
	}
	return targets
}

// selectTargets keeps the targets named in names, in configuration order.
// An empty selection keeps every target.
func selectTargets(all []md2book.Target, names []string) ([]md2book.Target, error) {
	if len(names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if !slices.ContainsFunc(all, func(t md2book.Target) bool { return t.Name == n }) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, n)
		}
		wanted[n] = true
	}

	selected := make([]md2book.Target, 0, len(wanted))
	for _, t := range all {
		if wanted[t.Name] {
			selected = append(selected, t)
		}
	}
	return selected, nil
}

// checkEngine rejects targets the engine cannot render before any work starts.
func checkEngine(engine string, targets []md2book.Target) error {
	if engine != md2book.EngineNative {
		return nil
	}
	for _, t := range targets {
		if t.Format != md2book.FormatHTML && t.Format != md2book.FormatPDF {
			return fmt.Errorf("%w: target %s (%s) needs --engine pandoc", md2book.ErrUnsupported, t.Name, t.Format)
		}
	}
	return nil
}

// buildLinkRewriter returns the rewriter for the configured documentation site.
func buildLinkRewriter(cfg *config.Config) *pipeline.LinkRewriter {
	return pipeline.NewLinkRewriter(cfg.Links.DocsBaseURL, cfg.Links.DocsPrefixes)
}

// loadBook reads the manifest and returns the book to assemble.
func loadBook(cfg *config.Config, meta md2book.Metadata) (md2book.Book, error) {
	loader := md2book.NewDirLoader(cfg.Source.Dir)

	manifest, err := loader.Load(cfg.Source.Manifest)
	if err != nil {
		return md2book.Book{}, fmt.Errorf("%w: %s: %w", md2book.ErrManifestRead,
			filepath.Join(cfg.Source.Dir, cfg.Source.Manifest), err)
	}

	return md2book.Book{
		Manifest:          toc.Parse(manifest),
		Introduction:      cfg.Source.Introduction,
		IntroductionTitle: cfg.Source.IntroductionTitle,
		Metadata:          meta,
		Loader:            loader,
	}, nil
}

// variantFor returns the named variant, defaulting to the screen variant.
func variantFor(cfg *config.Config, name string) (md2book.Variant, error) {
	if name == "" {
		name = md2book.VariantScreen
	}
	v, ok := buildVariants(cfg)[name]
	if !ok {
		return md2book.Variant{}, fmt.Errorf("%w: %q (available: %s)",
			md2book.ErrUnknownVariant, name, strings.Join(cfg.VariantNames(), ", "))
	}
	return v, nil
}
