package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	md2book "github.com/alnah/go-md2book"
	"github.com/alnah/go-md2book/internal/fileutil"
	"github.com/alnah/go-md2book/internal/logging"
)

// stdoutPath selects standard output for --output.
const stdoutPath = "-"

// runAssemble writes the composite Markdown of one variant.
// Default output: <output dir>/<prefix>-<date>.md.
func runAssemble(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCommandFlags("assemble", args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags, positional, env)
	if err != nil {
		return withHint(err, flags, nil)
	}
	logger := logging.New(env.Stderr, flags.common.verbose, flags.common.quiet)

	variant, err := variantFor(cfg, flags.render.variant)
	if err != nil {
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

	assembler := md2book.NewAssembler(
		md2book.WithLinkRewriter(buildLinkRewriter(cfg)),
		md2book.WithAssemblerLogger(logger),
	)
	doc, err := assembler.Assemble(ctx, book, variant)
	if err != nil {
		return withHint(err, flags, cfg)
	}

	out := flags.source.output
	if out == stdoutPath {
		_, err := fmt.Fprint(env.Stdout, doc)
		return err
	}
	if out == "" {
		if err := os.MkdirAll(cfg.Output.Dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrOutputDir, cfg.Output.Dir, err)
		}
		out = filepath.Join(cfg.Output.Dir, md2book.ArtifactName(cfg.Output.Prefix, meta.Date, "md"))
	}

	if err := fileutil.WriteFileAtomic(out, []byte(doc)); err != nil {
		return fmt.Errorf("%w: %s: %w", md2book.ErrArtifactWrite, out, err)
	}
	logger.Info("markdown written", logging.Path(out), logging.Variant(variant.Name))
	return nil
}
