package md2book

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2book/internal/assets"
)

func TestParseArtifactName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		wantOK     bool
		wantDate   string
		wantSuffix string
	}{
		{"trpl-2017-06-12.html", true, "2017-06-12", "html"},
		{"trpl-2017-06-12.a4.pdf", true, "2017-06-12", "a4.pdf"},
		{"trpl-2017-06-12.md", true, "2017-06-12", "md"},
		{"index.html", false, "", ""},
		{"book-2017-06-12.html", false, "", ""},
		{"trpl-2017-13-40.html", false, "", ""},
		{"trpl-2017-06-12", false, "", ""},
		{"trpl-2017-06-12.", false, "", ""},
		{"trpl-2017-06-12-html", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			date, suffix, ok := ParseArtifactName("trpl", tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ParseArtifactName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got := date.Format("2006-01-02"); got != tt.wantDate {
				t.Errorf("date = %s, want %s", got, tt.wantDate)
			}
			if suffix != tt.wantSuffix {
				t.Errorf("suffix = %q, want %q", suffix, tt.wantSuffix)
			}
		})
	}
}

func TestArtifactLabel(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"html":       "HTML",
		"a4.pdf":     "A4 PDF",
		"letter.pdf": "LETTER PDF",
		"md":         "MD",
		"pdf-a4":     "PDFA4",
	}
	for suffix, want := range tests {
		if got := artifactLabel(suffix); got != want {
			t.Errorf("artifactLabel(%q) = %q, want %q", suffix, got, want)
		}
	}
}

func TestGroupArtifacts(t *testing.T) {
	t.Parallel()

	names := []string{
		"trpl-2017-06-12.html",
		"index.html",
		"trpl-2018-01-03.letter.pdf",
		"trpl-2017-06-12.a4.pdf",
		"trpl-2018-01-03.a4.pdf",
		"notes.txt",
	}

	releases := GroupArtifacts("trpl", names, "")
	if len(releases) != 2 {
		t.Fatalf("releases = %d, want 2", len(releases))
	}

	if releases[0].ISO != "2018-01-03" || releases[1].ISO != "2017-06-12" {
		t.Errorf("release order = %s, %s; want newest first", releases[0].ISO, releases[1].ISO)
	}
	if releases[1].Label != "2017-06-12" {
		t.Errorf("default label = %q, want ISO date", releases[1].Label)
	}

	got := releases[1].Artifacts
	if len(got) != 2 || got[0].Name != "trpl-2017-06-12.a4.pdf" || got[1].Name != "trpl-2017-06-12.html" {
		t.Errorf("artifacts = %+v, want sorted by name", got)
	}
	if got[0].Label != "A4 PDF" || got[0].Suffix != "a4.pdf" {
		t.Errorf("artifact = %+v", got[0])
	}

	t.Run("date format", func(t *testing.T) {
		t.Parallel()

		releases := GroupArtifacts("trpl", names, "MMMM D, YYYY")
		if releases[0].Label != "January 3, 2018" {
			t.Errorf("label = %q, want January 3, 2018", releases[0].Label)
		}
	})

	t.Run("invalid date format falls back to ISO", func(t *testing.T) {
		t.Parallel()

		releases := GroupArtifacts("trpl", names, "[unclosed")
		if releases[0].Label != "2018-01-03" {
			t.Errorf("label = %q, want ISO fallback", releases[0].Label)
		}
	})

	t.Run("no artifacts", func(t *testing.T) {
		t.Parallel()

		if got := GroupArtifacts("trpl", nil, ""); len(got) != 0 {
			t.Errorf("GroupArtifacts(nil) = %v", got)
		}
	})
}

func TestListArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"trpl-2017-06-12.html", "trpl-2017-06-12.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "img"), 0o750); err != nil {
		t.Fatal(err)
	}

	names, err := ListArtifacts(dir)
	if err != nil {
		t.Fatalf("ListArtifacts() error = %v", err)
	}
	if strings.Join(names, ",") != "trpl-2017-06-12.html,trpl-2017-06-12.md" {
		t.Errorf("ListArtifacts() = %v", names)
	}

	if _, err := ListArtifacts(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ListArtifacts(missing) error = %v, want ErrNotExist", err)
	}
}

func TestRenderIndex(t *testing.T) {
	t.Parallel()

	releases := GroupArtifacts("trpl", []string{
		"trpl-2017-06-12.html",
		"trpl-2017-06-12.a4.pdf",
	}, "")

	got, err := RenderIndex(assets.NewEmbeddedLoader(), releases, IndexOptions{Title: "The Rust <Book>"})
	if err != nil {
		t.Fatalf("RenderIndex() error = %v", err)
	}

	page := string(got)
	for _, want := range []string{
		`<html lang="en">`,
		"<title>The Rust &lt;Book&gt;</title>",
		`id="release-2017-06-12"`,
		`<a href="trpl-2017-06-12.a4.pdf">A4 PDF</a>`,
		`<a href="trpl-2017-06-12.html">HTML</a>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("index missing %q:\n%s", want, page)
		}
	}

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		got, err := RenderIndex(assets.NewEmbeddedLoader(), nil, IndexOptions{Title: "Book", Language: "fr"})
		if err != nil {
			t.Fatalf("RenderIndex() error = %v", err)
		}
		if !strings.Contains(string(got), "No builds yet.") || !strings.Contains(string(got), `lang="fr"`) {
			t.Errorf("empty index = %s", got)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		_, err := RenderIndex(failingAssets{}, releases, IndexOptions{})
		if !errors.Is(err, ErrIndexRender) || !errors.Is(err, assets.ErrTemplateNotFound) {
			t.Errorf("RenderIndex() error = %v, want ErrIndexRender wrapping ErrTemplateNotFound", err)
		}
	})
}
