package md2book

import (
	"fmt"

	"github.com/alnah/go-md2book/internal/yamlutil"
)

// Front matter delimiters understood by pandoc.
const (
	frontMatterOpen  = "---"
	frontMatterClose = "..."
)

// FrontMatter renders m as a YAML metadata block with a fixed key order.
func (m Metadata) FrontMatter() (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	body, err := yamlutil.MarshalOrdered([]yamlutil.Field{
		{Key: "title", Value: m.Title},
		{Key: "author", Value: m.Author},
		{Key: "date", Value: m.ReleaseDate()},
		{Key: "language", Value: m.Language},
		{Key: "documentclass", Value: m.DocumentClass},
		{Key: "links-as-notes", Value: m.LinksAsNotes},
		{Key: "verbatim-in-note", Value: m.VerbatimInNote},
		{Key: "toc-depth", Value: m.TOCDepth},
	})
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}

	return frontMatterOpen + "\n" + string(body) + frontMatterClose + "\n", nil
}
