package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// Bundle holds the on-disk paths of the assets pandoc is pointed at.
type Bundle struct {
	Dir           string
	HTMLTemplate  string
	LaTeXTemplate string
	HTMLStyle     string
	EPUBStyle     string
}

// bundleEntry ties a Bundle field to the asset written for it.
type bundleEntry struct {
	dest  *string
	name  string
	style bool
}

// WriteBundle resolves the pandoc templates and stylesheets through loader
// and writes them into dir, which must exist.
func WriteBundle(loader AssetLoader, dir string) (*Bundle, error) {
	b := &Bundle{Dir: dir}

	entries := []bundleEntry{
		{&b.HTMLTemplate, TemplateHTML, false},
		{&b.LaTeXTemplate, TemplateLaTeX, false},
		{&b.HTMLStyle, StyleHTML, true},
		{&b.EPUBStyle, StyleEPUB, true},
	}

	for _, f := range entries {
		var content, fileName string
		var err error
		if f.style {
			content, err = loader.LoadStyle(f.name)
			fileName = f.name + ".css"
		} else {
			content, err = loader.LoadTemplate(f.name)
			fileName = f.name
		}
		if err != nil {
			return nil, err
		}

		path := filepath.Join(dir, fileName)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetWrite, err)
		}
		*f.dest = path
	}

	return b, nil
}

// WriteTempBundle writes the bundle into a fresh temporary directory.
// The returned cleanup removes the directory.
func WriteTempBundle(loader AssetLoader) (*Bundle, func(), error) {
	dir, err := os.MkdirTemp("", "md2book-assets-*")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrAssetWrite, err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	b, err := WriteBundle(loader, dir)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return b, cleanup, nil
}
