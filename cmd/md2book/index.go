package main

import (
	"fmt"
	"path/filepath"

	md2book "github.com/alnah/go-md2book"
	"github.com/alnah/go-md2book/internal/assets"
)

// runIndex rewrites index.html in the given directory, or in the
// configured output directory.
func runIndex(args []string, env *Environment) error {
	flags, positional, err := parseCommandFlags("index", args, env.Stderr)
	if err != nil {
		return err
	}

	// index takes a dist directory, not a source directory.
	cfg, err := loadConfig(flags, nil, env)
	if err != nil {
		return withHint(err, flags, nil)
	}

	dir := cfg.Output.Dir
	switch len(positional) {
	case 0:
	case 1:
		dir = positional[0]
	default:
		return usageError(fmt.Errorf("expected at most one directory, got %d", len(positional)))
	}

	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	if err := writeIndex(dir, cfg, loader); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "[✓] "+filepath.Join(dir, md2book.IndexFile))
	}
	return nil
}
