package assets

// Built-in asset names.
const (
	StyleHTML   = "pandoc"
	StyleEPUB   = "epub"
	StyleNative = "native"

	TemplateHTML  = "book.html"
	TemplateLaTeX = "book.tex"
	TemplateIndex = "index.html"
)

// AssetLoader defines the contract for loading stylesheets and templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a template by file name (with extension, e.g. "book.tex").
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
