package md2book

import "errors"

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrManifestRead = errors.New("failed to read manifest")
	ErrChapterRead  = errors.New("failed to read chapter")
	ErrNoLoader     = errors.New("book has no chapter loader")

	// Metadata and target validation errors.
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")
	ErrInvalidTarget   = errors.New("invalid target")
	ErrUnknownVariant  = errors.New("unknown variant")

	// Rendering errors.
	ErrRender          = errors.New("rendering failed")
	ErrPandocNotFound  = errors.New("pandoc executable not found")
	ErrUnsupported     = errors.New("format not supported by renderer")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrIndexRender     = errors.New("index rendering failed")
	ErrArtifactWrite   = errors.New("failed to write artifact")
	ErrPoolClosed      = errors.New("renderer pool is closed")
)
