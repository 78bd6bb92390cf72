package main

import (
	"errors"
	"os"

	md2book "github.com/alnah/go-md2book"
	"github.com/alnah/go-md2book/internal/assets"
	"github.com/alnah/go-md2book/internal/config"
	"github.com/alnah/go-md2book/internal/dateutil"
)

// Exit codes for the md2book CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Build, check or command succeeded
	ExitGeneral  = 1 // General/unexpected error, anchor problems
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // Manifest or chapter missing, write failure
	ExitRenderer = 4 // pandoc or browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Renderer errors (exit 4)
	if errors.Is(err, md2book.ErrPandocNotFound) ||
		errors.Is(err, md2book.ErrRender) ||
		errors.Is(err, md2book.ErrBrowserConnect) ||
		errors.Is(err, md2book.ErrPageCreate) ||
		errors.Is(err, md2book.ErrPageLoad) ||
		errors.Is(err, md2book.ErrPDFGeneration) {
		return ExitRenderer
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2book.ErrManifestRead) ||
		errors.Is(err, md2book.ErrChapterRead) ||
		errors.Is(err, md2book.ErrArtifactWrite) ||
		errors.Is(err, ErrOutputDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownTarget) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDate) ||
		errors.Is(err, md2book.ErrInvalidFormat) ||
		errors.Is(err, md2book.ErrInvalidPageSize) ||
		errors.Is(err, md2book.ErrInvalidTOCDepth) ||
		errors.Is(err, md2book.ErrInvalidTarget) ||
		errors.Is(err, md2book.ErrUnknownVariant) ||
		errors.Is(err, md2book.ErrUnsupported) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	return ExitGeneral
}
