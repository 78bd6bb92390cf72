// Package assets provides the stylesheets and templates used to render books.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the renderers. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a book can override a single stylesheet or template.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── pandoc.css      # HTML output
//	│   ├── epub.css        # EPUB output
//	│   └── native.css      # in-process HTML and PDF output
//	└── templates/
//	    ├── book.html       # pandoc HTML template
//	    ├── book.tex        # pandoc LaTeX template
//	    └── index.html      # artifact listing (html/template)
//
// Pandoc reads templates and stylesheets from disk; WriteBundle copies the
// resolved assets into a directory and returns their paths.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
