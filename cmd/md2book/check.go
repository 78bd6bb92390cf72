package main

import (
	"context"
	"fmt"

	md2book "github.com/alnah/go-md2book"
	"github.com/alnah/go-md2book/internal/hints"
	"github.com/alnah/go-md2book/internal/linkcheck"
	"github.com/alnah/go-md2book/internal/logging"
)

// runCheck assembles one variant and reports its anchor problems.
// Unresolved links always fail; duplicate anchors fail with --strict.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCommandFlags("check", args, env.Stderr)
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

	doc, err := md2book.NewAssembler(
		md2book.WithLinkRewriter(buildLinkRewriter(cfg)),
		md2book.WithAssemblerLogger(logger),
	).Assemble(ctx, book, variant)
	if err != nil {
		return withHint(err, flags, cfg)
	}

	report := linkcheck.New().Check(doc)
	for _, p := range report.Problems {
		fmt.Fprintln(env.Stdout, p)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%d sections, %d links, %d problems\n",
			len(report.Anchors), report.Links, len(report.Problems))
	}

	failing := report.Count(linkcheck.KindUnresolvedLink)
	if flags.render.strict {
		failing = len(report.Problems)
	}
	if failing > 0 {
		return fmt.Errorf("%w: %d%s", ErrAnchorProblems, failing, hints.ForAnchorProblems())
	}
	return nil
}
