package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in styles and templates
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range []string{StyleHTML, StyleEPUB, StyleNative} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", name, err)
			}
			if !strings.Contains(got, "{") {
				t.Errorf("LoadStyle(%q) does not look like CSS", name)
			}
		})
	}

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("nonexistent-xyz")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("../pandoc")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name         string
		wantContains []string
	}{
		{TemplateHTML, []string{"$body$", "$table-of-contents$", "$for(css)$"}},
		{TemplateLaTeX, []string{"$documentclass$", "$body$", `\VerbatimFootnotes`, "$toc-depth$"}},
		{TemplateIndex, []string{"{{.Title}}", "{{- range .Releases}}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.name)
			if err != nil {
				t.Fatalf("LoadTemplate(%q) error = %v", tt.name, err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("LoadTemplate(%q) missing %q", tt.name, want)
				}
			}
		})
	}

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("missing.tex")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})
}

func TestEmbeddedLoader_StyleNames(t *testing.T) {
	t.Parallel()

	got := NewEmbeddedLoader().StyleNames()
	want := []string{StyleEPUB, StyleNative, StyleHTML}
	if !slices.Equal(got, want) {
		t.Errorf("StyleNames() = %v, want %v", got, want)
	}
}
