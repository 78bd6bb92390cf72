package main

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	md2book "github.com/alnah/go-md2book"
	"github.com/alnah/go-md2book/internal/config"
	"github.com/alnah/go-md2book/internal/dateutil"
)

// ---------------------------------------------------------------------------
// TestApplyFlags - CLI overrides
// ---------------------------------------------------------------------------

func TestApplyFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	f := &commandFlags{
		source:   sourceFlags{manifest: "TOC.md", prefix: "book", assets: "theme"},
		book:     bookFlags{date: "2020-01-02", title: "T", author: "A"},
		render:   renderFlags{engine: "native", workers: 3, timeout: "1m"},
		introSet: true,
	}
	applyFlags(f, []string{"src"}, cfg)

	checks := []struct {
		name, got, want string
	}{
		{"source dir", cfg.Source.Dir, "src"},
		{"manifest", cfg.Source.Manifest, "TOC.md"},
		{"introduction", cfg.Source.Introduction, ""},
		{"prefix", cfg.Output.Prefix, "book"},
		{"assets", cfg.Assets.BasePath, "theme"},
		{"date", cfg.Book.Date, "2020-01-02"},
		{"title", cfg.Book.Title, "T"},
		{"author", cfg.Book.Author, "A"},
		{"engine", cfg.Renderer.Engine, "native"},
		{"timeout", cfg.Renderer.Timeout, "1m"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if cfg.Renderer.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Renderer.Workers)
	}
}

func TestApplyFlags_EmptyKeepsConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	applyFlags(&commandFlags{}, nil, cfg)

	def := config.DefaultConfig()
	if cfg.Source.Dir != def.Source.Dir || cfg.Source.Introduction != def.Source.Introduction ||
		cfg.Book.Title != def.Book.Title || cfg.Output.Prefix != def.Output.Prefix {
		t.Error("unset flags should not change the config")
	}
}

// ---------------------------------------------------------------------------
// TestBuildMetadata - Release date and front matter values
// ---------------------------------------------------------------------------

func TestBuildMetadata(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return releaseDay }

	t.Run("auto date uses clock", func(t *testing.T) {
		t.Parallel()

		meta, err := buildMetadata(config.DefaultConfig(), now)
		if err != nil {
			t.Fatalf("buildMetadata() error = %v", err)
		}
		if got := dateutil.FormatISO(meta.Date); got != "2017-06-12" {
			t.Errorf("date = %s, want 2017-06-12", got)
		}
		want := md2book.DefaultMetadata(meta.Date)
		if meta != want {
			t.Errorf("metadata = %+v, want %+v", meta, want)
		}
	})

	t.Run("fixed date", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Book.Date = "2015-05-15"
		meta, err := buildMetadata(cfg, now)
		if err != nil {
			t.Fatalf("buildMetadata() error = %v", err)
		}
		if got := dateutil.FormatISO(meta.Date); got != "2015-05-15" {
			t.Errorf("date = %s, want 2015-05-15", got)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Book.Date = "yesterday"
		if _, err := buildMetadata(cfg, now); !errors.Is(err, dateutil.ErrInvalidDate) {
			t.Errorf("buildMetadata() error = %v, want ErrInvalidDate", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildVariantsAndTargets - Config conversion
// ---------------------------------------------------------------------------

func TestBuildVariants(t *testing.T) {
	t.Parallel()

	got := buildVariants(config.DefaultConfig())
	want := md2book.DefaultVariants()
	if len(got) != len(want) {
		t.Fatalf("variants = %d, want %d", len(got), len(want))
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("variant %s = %+v, want %+v", name, got[name], v)
		}
	}
}

func TestBuildTargets(t *testing.T) {
	t.Parallel()

	got := buildTargets(config.DefaultConfig())
	want := md2book.DefaultTargets()
	if len(got) != len(want) {
		t.Fatalf("targets = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("targets[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSelectTargets(t *testing.T) {
	t.Parallel()

	all := md2book.DefaultTargets()

	tests := []struct {
		name    string
		names   []string
		want    []string
		wantErr error
	}{
		{"none selects all", nil, []string{"html", "epub", "tex", "pdf-a4", "pdf-letter"}, nil},
		{"configuration order", []string{"pdf-a4", "html"}, []string{"html", "pdf-a4"}, nil},
		{"duplicates once", []string{"epub", "epub"}, []string{"epub"}, nil},
		{"spaces trimmed", []string{" tex"}, []string{"tex"}, nil},
		{"unknown", []string{"odt"}, nil, ErrUnknownTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := selectTargets(all, tt.names)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("selectTargets() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("selectTargets() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("selectTargets() = %v, want %v", got, tt.want)
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("selectTargets()[%d] = %s, want %s", i, got[i].Name, name)
				}
			}
		})
	}
}

func TestCheckEngine(t *testing.T) {
	t.Parallel()

	all := md2book.DefaultTargets()
	if err := checkEngine(md2book.EnginePandoc, all); err != nil {
		t.Errorf("pandoc renders everything, got %v", err)
	}
	if err := checkEngine(md2book.EngineNative, all); !errors.Is(err, md2book.ErrUnsupported) {
		t.Errorf("native with epub error = %v, want ErrUnsupported", err)
	}
	htmlPDF := []md2book.Target{all[0], all[3]}
	if err := checkEngine(md2book.EngineNative, htmlPDF); err != nil {
		t.Errorf("native with html and pdf error = %v", err)
	}
}

func TestVariantFor(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	v, err := variantFor(cfg, "")
	if err != nil || v.Name != md2book.VariantScreen {
		t.Errorf("variantFor(\"\") = %+v, %v; want screen", v, err)
	}
	v, err = variantFor(cfg, "print")
	if err != nil || !v.WrapCode {
		t.Errorf("variantFor(print) = %+v, %v", v, err)
	}
	if _, err := variantFor(cfg, "draft"); !errors.Is(err, md2book.ErrUnknownVariant) {
		t.Errorf("variantFor(draft) error = %v, want ErrUnknownVariant", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadBook - Manifest reading
// ---------------------------------------------------------------------------

func TestLoadBook(t *testing.T) {
	t.Parallel()

	t.Run("reads manifest", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Source.Dir = writeBook(t, defaultBook)

		book, err := loadBook(cfg, md2book.DefaultMetadata(releaseDay))
		if err != nil {
			t.Fatalf("loadBook() error = %v", err)
		}
		if len(book.Manifest) != 2 || book.Manifest[1].File != "syntax.md" {
			t.Errorf("manifest = %+v", book.Manifest)
		}
		if book.Introduction != "README.md" || book.IntroductionTitle != "Introduction" {
			t.Errorf("introduction = %q / %q", book.Introduction, book.IntroductionTitle)
		}
	})

	t.Run("missing manifest", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Source.Dir = t.TempDir()

		_, err := loadBook(cfg, md2book.DefaultMetadata(releaseDay))
		if !errors.Is(err, md2book.ErrManifestRead) || !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("loadBook() error = %v, want ErrManifestRead wrapping ErrNotExist", err)
		}
	})
}

func TestLoadConfig_TooManyArgs(t *testing.T) {
	t.Parallel()

	env, _, _, _ := testEnv(nil)
	if _, err := loadConfig(&commandFlags{}, []string{"a", "b"}, env); !errors.Is(err, ErrUsage) {
		t.Errorf("loadConfig() error = %v, want ErrUsage", err)
	}
}
