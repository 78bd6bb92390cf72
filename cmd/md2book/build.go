package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	md2book "github.com/alnah/go-md2book"
	"github.com/alnah/go-md2book/internal/assets"
	"github.com/alnah/go-md2book/internal/config"
	"github.com/alnah/go-md2book/internal/fileutil"
	"github.com/alnah/go-md2book/internal/hints"
	"github.com/alnah/go-md2book/internal/linkcheck"
	"github.com/alnah/go-md2book/internal/logging"
)

// dirPermissions is rwxr-x---: owner full, group read+execute.
const dirPermissions = 0o750

// runBuild assembles the book and renders every selected target.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCommandFlags("build", args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags, positional, env)
	if err != nil {
		return withHint(err, flags, nil)
	}
	if flags.source.output != "" {
		cfg.Output.Dir = flags.source.output
	}
	logger := logging.New(env.Stderr, flags.common.verbose, flags.common.quiet)

	targets, err := selectTargets(buildTargets(cfg), flags.render.formats)
	if err != nil {
		return withHint(err, flags, cfg)
	}
	settings, err := renderSettings(cfg, logger)
	if err != nil {
		return err
	}
	if err := checkEngine(settings.Engine, targets); err != nil {
		return err
	}

	meta, err := buildMetadata(cfg, env.Now)
	if err != nil {
		return err
	}
	book, err := loadBook(cfg, meta)
	if err != nil {
		return err
	}
	if len(book.Manifest) == 0 {
		logger.Warn("manifest lists no chapters", logging.Path(cfg.Source.Manifest))
	}

	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return err
	}

	assembler := md2book.NewAssembler(
		md2book.WithLinkRewriter(buildLinkRewriter(cfg)),
		md2book.WithAssemblerLogger(logger),
	)

	if flags.render.strict {
		if err := strictCheck(ctx, assembler, book, cfg, targets); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.Output.Dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %s: %w%s", ErrOutputDir, cfg.Output.Dir, err, hints.ForOutputDirectory())
	}

	poolSize := md2book.ResolvePoolSize(cfg.Renderer.Workers)
	logger.Debug("renderer pool", slog.Int("size", poolSize), logging.Engine(settings.Engine))
	pool := md2book.NewRendererPool(poolSize, func() (md2book.Renderer, error) {
		return env.NewRenderer(loader, settings)
	})

	var progress io.Writer = env.Stdout
	if flags.common.quiet {
		progress = io.Discard
	}

	publisher := md2book.NewPublisher(assembler, pool, cfg.Output.Dir,
		md2book.WithVariants(buildVariants(cfg)),
		md2book.WithPrefix(cfg.Output.Prefix),
		md2book.WithProgress(progress),
		md2book.WithPublisherLogger(logger),
	)
	defer func() { _ = publisher.Close() }()

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	start := time.Now()
	results, publishErr := publisher.Publish(ctx, book, targets)
	logger.Debug("build finished", slog.Int("targets", len(results)), logging.Duration(time.Since(start)))

	if cfg.Output.Index && len(results) > 0 {
		if err := writeIndex(cfg.Output.Dir, cfg, loader); err != nil {
			logger.Warn("index not written", logging.Error(err))
		}
	}

	if publishErr != nil {
		return withHint(publishErr, flags, cfg)
	}
	return nil
}

// renderSettings resolves the timeout and returns the renderer settings.
func renderSettings(cfg *config.Config, logger *slog.Logger) (rendererSettings, error) {
	timeout, err := cfg.Renderer.TimeoutDuration()
	if err != nil {
		return rendererSettings{}, err
	}
	return settingsFor(cfg, timeout, logger), nil
}

// strictCheck fails the build when any variant a target uses has anchor problems.
func strictCheck(ctx context.Context, a *md2book.Assembler, book md2book.Book, cfg *config.Config, targets []md2book.Target) error {
	variants := buildVariants(cfg)
	checker := linkcheck.New()
	checked := make(map[string]bool)

	for _, t := range targets {
		if checked[t.Variant] {
			continue
		}
		checked[t.Variant] = true

		doc, err := a.Assemble(ctx, book, variants[t.Variant])
		if err != nil {
			return err
		}
		if report := checker.Check(doc); !report.OK() {
			return fmt.Errorf("%w: %d in variant %s%s", ErrAnchorProblems, len(report.Problems), t.Variant, hints.ForAnchorProblems())
		}
	}
	return nil
}

// writeIndex rewrites the artifact listing page of dir.
func writeIndex(dir string, cfg *config.Config, loader assets.AssetLoader) error {
	names, err := md2book.ListArtifacts(dir)
	if err != nil {
		return err
	}

	releases := md2book.GroupArtifacts(cfg.Output.Prefix, names, cfg.Output.IndexDateFormat)
	page, err := md2book.RenderIndex(loader, releases, md2book.IndexOptions{
		Title:      cfg.Book.Title,
		Language:   cfg.Book.Language,
		DateFormat: cfg.Output.IndexDateFormat,
	})
	if err != nil {
		return err
	}

	path := filepath.Join(dir, md2book.IndexFile)
	if err := fileutil.WriteFileAtomic(path, page); err != nil {
		return fmt.Errorf("%w: %s: %v", md2book.ErrArtifactWrite, path, err)
	}
	return nil
}

// withHint appends the actionable hint matching err, if any.
func withHint(err error, flags *commandFlags, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(config.SearchPaths(flags.common.config))
	case errors.Is(err, ErrUnknownTarget) && cfg != nil:
		hint = hints.ForUnknownTarget(cfg.TargetNames())
	case errors.Is(err, md2book.ErrChapterRead) && cfg != nil:
		hint = hints.ForMissingChapter(cfg.Source.Manifest)
	case errors.Is(err, md2book.ErrPandocNotFound):
		hint = hints.ForPandocNotFound()
	case errors.Is(err, md2book.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, md2book.ErrRender) && cfg != nil && cfg.Renderer.Engine != md2book.EngineNative:
		hint = hints.ForPDFEngine(cfg.Renderer.PDFEngine)
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
