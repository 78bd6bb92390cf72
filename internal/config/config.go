package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-md2book/internal/dateutil"
	"github.com/alnah/go-md2book/internal/fileutil"
	"github.com/alnah/go-md2book/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength    = 200  // Book title
	MaxAuthorLength   = 200  // Author line
	MaxLanguageLength = 20   // "en-US"
	MaxClassLength    = 50   // LaTeX document class
	MaxPathLength     = 4096 // Source, manifest, output paths
	MaxPrefixLength   = 100  // Artifact prefix
	MaxURLLength      = 2048 // Browser limit
	MaxNameLength     = 50   // Variant and target names
	MaxSuffixLength   = 30   // "letter.pdf"
	MaxMarkerLength   = 10   // Continuation marker
	MaxWorkers        = 64
)

// Supported values.
var (
	Formats   = []string{"html", "epub", "latex", "pdf"}
	PageSizes = []string{"a4", "letter"}
	Engines   = []string{"pandoc", "native"}
)

// Config holds the book settings, the assembly variants and the artifacts to render.
type Config struct {
	Book     BookConfig               `yaml:"book"`
	Source   SourceConfig             `yaml:"source"`
	Output   OutputConfig             `yaml:"output"`
	Links    LinksConfig              `yaml:"links"`
	Variants map[string]VariantConfig `yaml:"variants"`
	Targets  []TargetConfig           `yaml:"targets"`
	Renderer RendererConfig           `yaml:"renderer"`
	Assets   AssetsConfig             `yaml:"assets"`
}

// BookConfig is written to the front matter of the composite document.
type BookConfig struct {
	Title          string `yaml:"title"`
	Author         string `yaml:"author"`
	Date           string `yaml:"date"` // "auto" or YYYY-MM-DD
	Language       string `yaml:"language"`
	DocumentClass  string `yaml:"documentClass"`
	LinksAsNotes   bool   `yaml:"linksAsNotes"`
	VerbatimInNote bool   `yaml:"verbatimInNote"`
	TOCDepth       int    `yaml:"tocDepth"`
}

// SourceConfig locates the book source.
type SourceConfig struct {
	Dir               string `yaml:"dir"`
	Manifest          string `yaml:"manifest"`          // relative to Dir
	Introduction      string `yaml:"introduction"`      // relative to Dir, optional file
	IntroductionTitle string `yaml:"introductionTitle"` // heading above the introduction
}

// OutputConfig controls artifact naming.
type OutputConfig struct {
	Dir             string `yaml:"dir"`
	Prefix          string `yaml:"prefix"`          // artifacts are <prefix>-<date>.<suffix>
	Index           bool   `yaml:"index"`           // rewrite index.html after build
	IndexDateFormat string `yaml:"indexDateFormat"` // preset or tokens, see dateutil
}

// LinksConfig drives the external documentation prefix rewrite.
type LinksConfig struct {
	DocsBaseURL  string   `yaml:"docsBaseURL"`
	DocsPrefixes []string `yaml:"docsPrefixes"`
}

// VariantConfig is an assembly profile shared by one or more targets.
type VariantConfig struct {
	WrapCode           bool   `yaml:"wrapCode"`
	WrapWidth          int    `yaml:"wrapWidth"`
	ContinuationMarker string `yaml:"continuationMarker"`
	StripSymbols       bool   `yaml:"stripSymbols"`
	ConvertCheckmarks  bool   `yaml:"convertCheckmarks"`
}

// TargetConfig is one rendered artifact.
type TargetConfig struct {
	Name     string `yaml:"name"`
	Format   string `yaml:"format"`   // html, epub, latex, pdf
	Variant  string `yaml:"variant"`  // key of Config.Variants
	PageSize string `yaml:"pageSize"` // pdf only: a4, letter
	Suffix   string `yaml:"suffix"`   // file extension, e.g. "a4.pdf"
}

// RendererConfig selects and tunes the rendering engine.
type RendererConfig struct {
	Engine    string `yaml:"engine"`    // pandoc or native
	Pandoc    string `yaml:"pandoc"`    // executable name or path
	PDFEngine string `yaml:"pdfEngine"` // LaTeX engine used by pandoc
	Workers   int    `yaml:"workers"`   // 0 = auto
	Timeout   string `yaml:"timeout"`   // Go duration, "" = none
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// TimeoutDuration parses Renderer.Timeout. Empty means no timeout.
func (r RendererConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: renderer.timeout %q", ErrInvalidValue, r.Timeout)
	}
	return d, nil
}

// VariantNames returns the configured variant names, sorted.
func (c *Config) VariantNames() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TargetNames returns the target names in configuration order.
func (c *Config) TargetNames() []string {
	names := make([]string, len(c.Targets))
	for i, t := range c.Targets {
		names[i] = t.Name
	}
	return names
}

// Target returns the target with the given name.
func (c *Config) Target(name string) (TargetConfig, bool) {
	for _, t := range c.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return TargetConfig{}, false
}

// Validate checks field lengths and cross references between sections.
// Called automatically by LoadConfig, but available for callers that
// build a Config in code or override fields from flags.
func (c *Config) Validate() error {
	if err := c.validateBook(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLinks(); err != nil {
		return err
	}
	for _, name := range c.VariantNames() {
		if err := validateVariant(name, c.Variants[name]); err != nil {
			return err
		}
	}
	if err := c.validateTargets(); err != nil {
		return err
	}
	return c.validateRenderer()
}

func (c *Config) validateBook() error {
	b := c.Book
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"book.title", b.Title, MaxTitleLength},
		{"book.author", b.Author, MaxAuthorLength},
		{"book.language", b.Language, MaxLanguageLength},
		{"book.documentClass", b.DocumentClass, MaxClassLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	if _, err := dateutil.ResolveReleaseDate(b.Date, time.Now()); err != nil {
		return fmt.Errorf("%w: book.date: %v", ErrInvalidValue, err)
	}
	if b.TOCDepth < 0 || b.TOCDepth > 6 {
		return fmt.Errorf("%w: book.tocDepth must be between 0 and 6, got %d", ErrInvalidValue, b.TOCDepth)
	}
	return nil
}

func (c *Config) validatePaths() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"source.dir", c.Source.Dir, MaxPathLength},
		{"source.manifest", c.Source.Manifest, MaxPathLength},
		{"source.introduction", c.Source.Introduction, MaxPathLength},
		{"source.introductionTitle", c.Source.IntroductionTitle, MaxTitleLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.prefix", c.Output.Prefix, MaxPrefixLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	if c.Source.Manifest == "" {
		return fmt.Errorf("%w: source.manifest is required", ErrInvalidValue)
	}
	if strings.ContainsAny(c.Output.Prefix, "/\\") {
		return fmt.Errorf("%w: output.prefix %q must not contain path separators", ErrInvalidValue, c.Output.Prefix)
	}
	if c.Output.IndexDateFormat != "" {
		if _, err := dateutil.FormatDate(time.Time{}, c.Output.IndexDateFormat); err != nil {
			return fmt.Errorf("%w: output.indexDateFormat: %v", ErrInvalidValue, err)
		}
	}
	return nil
}

func (c *Config) validateLinks() error {
	if err := validateFieldLength("links.docsBaseURL", c.Links.DocsBaseURL, MaxURLLength); err != nil {
		return err
	}
	if c.Links.DocsBaseURL != "" && !fileutil.IsURL(c.Links.DocsBaseURL) {
		return fmt.Errorf("%w: links.docsBaseURL %q must start with http:// or https://", ErrInvalidValue, c.Links.DocsBaseURL)
	}
	for i, p := range c.Links.DocsPrefixes {
		if p == "" || strings.ContainsAny(p, " \t\n") {
			return fmt.Errorf("%w: links.docsPrefixes[%d] %q", ErrInvalidValue, i, p)
		}
	}
	return nil
}

func validateVariant(name string, v VariantConfig) error {
	field := "variants." + name
	if err := validateFieldLength(field+" name", name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength(field+".continuationMarker", v.ContinuationMarker, MaxMarkerLength); err != nil {
		return err
	}
	if !v.WrapCode {
		return nil
	}
	if v.WrapWidth < 0 {
		return fmt.Errorf("%w: %s.wrapWidth must be positive, got %d", ErrInvalidValue, field, v.WrapWidth)
	}
	if v.WrapWidth > 0 && v.WrapWidth <= utf8.RuneCountInString(v.ContinuationMarker) {
		return fmt.Errorf("%w: %s.wrapWidth %d must exceed the continuation marker length",
			ErrInvalidValue, field, v.WrapWidth)
	}
	return nil
}

func (c *Config) validateTargets() error {
	seenNames := make(map[string]bool, len(c.Targets))
	seenSuffixes := make(map[string]bool, len(c.Targets))

	for i, t := range c.Targets {
		field := fmt.Sprintf("targets[%d]", i)
		if t.Name == "" {
			return fmt.Errorf("%w: %s.name is required", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field+".name", t.Name, MaxNameLength); err != nil {
			return err
		}
		if seenNames[t.Name] {
			return fmt.Errorf("%w: duplicate target name %q", ErrInvalidValue, t.Name)
		}
		seenNames[t.Name] = true

		if !slices.Contains(Formats, t.Format) {
			return fmt.Errorf("%w: %s.format %q (must be one of %s)",
				ErrInvalidValue, field, t.Format, strings.Join(Formats, ", "))
		}
		if _, ok := c.Variants[t.Variant]; !ok {
			return fmt.Errorf("%w: %s.variant %q is not defined", ErrInvalidValue, field, t.Variant)
		}
		if t.PageSize != "" {
			if t.Format != "pdf" {
				return fmt.Errorf("%w: %s.pageSize only applies to pdf", ErrInvalidValue, field)
			}
			if !slices.Contains(PageSizes, t.PageSize) {
				return fmt.Errorf("%w: %s.pageSize %q (must be one of %s)",
					ErrInvalidValue, field, t.PageSize, strings.Join(PageSizes, ", "))
			}
		}

		if err := validateFieldLength(field+".suffix", t.Suffix, MaxSuffixLength); err != nil {
			return err
		}
		if err := fileutil.ValidateExtension(t.Suffix); err != nil {
			return fmt.Errorf("%w: %s.suffix: %v", ErrInvalidValue, field, err)
		}
		if t.Suffix == "md" || seenSuffixes[t.Suffix] {
			return fmt.Errorf("%w: %s.suffix %q would overwrite another artifact", ErrInvalidValue, field, t.Suffix)
		}
		seenSuffixes[t.Suffix] = true
	}
	return nil
}

func (c *Config) validateRenderer() error {
	r := c.Renderer
	if r.Engine != "" && !slices.Contains(Engines, r.Engine) {
		return fmt.Errorf("%w: renderer.engine %q (must be one of %s)",
			ErrInvalidValue, r.Engine, strings.Join(Engines, ", "))
	}
	if err := validateFieldLength("renderer.pandoc", r.Pandoc, MaxPathLength); err != nil {
		return err
	}
	if r.Workers < 0 || r.Workers > MaxWorkers {
		return fmt.Errorf("%w: renderer.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, r.Workers)
	}
	_, err := r.TimeoutDuration()
	return err
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the settings of the Rust book build: one screen
// variant for HTML, EPUB and LaTeX, one print variant for the two PDFs.
func DefaultConfig() *Config {
	return &Config{
		Book: BookConfig{
			Title:          "The Rust Programming Language",
			Author:         "The Rust Project Developers",
			Date:           dateutil.Auto,
			Language:       "en-US",
			DocumentClass:  "scrbook",
			LinksAsNotes:   true,
			VerbatimInNote: true,
			TOCDepth:       2,
		},
		Source: SourceConfig{
			Dir:               ".",
			Manifest:          "SUMMARY.md",
			Introduction:      "README.md",
			IntroductionTitle: "Introduction",
		},
		Output: OutputConfig{
			Dir:             "dist",
			Prefix:          "trpl",
			Index:           true,
			IndexDateFormat: "long",
		},
		Links: LinksConfig{
			DocsBaseURL:  "http://doc.rust-lang.org",
			DocsPrefixes: []string{"std", "reference", "rustc", "syntax", "core"},
		},
		Variants: map[string]VariantConfig{
			"screen": {},
			"print": {
				WrapCode:           true,
				WrapWidth:          87,
				ContinuationMarker: "↳ ",
				StripSymbols:       true,
				ConvertCheckmarks:  true,
			},
		},
		Targets: []TargetConfig{
			{Name: "html", Format: "html", Variant: "screen", Suffix: "html"},
			{Name: "epub", Format: "epub", Variant: "screen", Suffix: "epub"},
			{Name: "tex", Format: "latex", Variant: "screen", Suffix: "tex"},
			{Name: "pdf-a4", Format: "pdf", Variant: "print", PageSize: "a4", Suffix: "a4.pdf"},
			{Name: "pdf-letter", Format: "pdf", Variant: "print", PageSize: "letter", Suffix: "letter.pdf"},
		},
		Renderer: RendererConfig{
			Engine:    "pandoc",
			Pandoc:    "pandoc",
			PDFEngine: "xelatex",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig value; variants and
// targets, when present, replace the defaults as a whole.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	// Decoding merges into an existing map; start empty so a file that
	// lists variants defines exactly those.
	defaultVariants := cfg.Variants
	cfg.Variants = nil

	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Variants == nil {
		cfg.Variants = defaultVariants
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2book", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
