package main

import (
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2book/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"MD2BOOK_CONFIG":     "book",
		"MD2BOOK_SOURCE_DIR": "src",
		"MD2BOOK_OUTPUT_DIR": "out",
		"MD2BOOK_DATE":       "2017-06-12",
		"MD2BOOK_ENGINE":     "native",
		"MD2BOOK_PANDOC":     "/opt/pandoc",
		"MD2BOOK_ASSETS":     "theme",
		"MD2BOOK_TIMEOUT":    "90s",
		"MD2BOOK_WORKERS":    "4",
	}
	got := loadEnvConfig(func(k string) string { return vars[k] })

	want := envConfig{
		ConfigPath: "book",
		SourceDir:  "src",
		OutputDir:  "out",
		Date:       "2017-06-12",
		Engine:     "native",
		Pandoc:     "/opt/pandoc",
		Assets:     "theme",
		Timeout:    90 * time.Second,
		Workers:    4,
	}
	if *got != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
	}
}

func TestLoadEnvConfig_InvalidNumbersIgnored(t *testing.T) {
	t.Parallel()

	tests := map[string]map[string]string{
		"bad duration":      {"MD2BOOK_TIMEOUT": "soon"},
		"negative duration": {"MD2BOOK_TIMEOUT": "-1s"},
		"bad workers":       {"MD2BOOK_WORKERS": "many"},
		"zero workers":      {"MD2BOOK_WORKERS": "0"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := loadEnvConfig(func(k string) string { return vars[k] })
			if got.Timeout != 0 || got.Workers != 0 {
				t.Errorf("loadEnvConfig() = %+v, want zero timeout and workers", *got)
			}
		})
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides set values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{
			SourceDir: "src",
			OutputDir: "out",
			Date:      "2017-06-12",
			Engine:    "native",
			Pandoc:    "/opt/pandoc",
			Assets:    "theme",
			Timeout:   time.Minute,
			Workers:   2,
		}, cfg)

		if cfg.Source.Dir != "src" || cfg.Output.Dir != "out" || cfg.Book.Date != "2017-06-12" ||
			cfg.Renderer.Engine != "native" || cfg.Renderer.Pandoc != "/opt/pandoc" ||
			cfg.Assets.BasePath != "theme" || cfg.Renderer.Timeout != "1m0s" || cfg.Renderer.Workers != 2 {
			t.Errorf("applyEnvConfig() config = %+v", cfg)
		}
	})

	t.Run("empty env keeps config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{}, cfg)
		def := config.DefaultConfig()
		if cfg.Source.Dir != def.Source.Dir || cfg.Renderer.Engine != def.Renderer.Engine || cfg.Renderer.Timeout != "" {
			t.Errorf("applyEnvConfig() changed config: %+v", cfg)
		}
	})
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	env, _, stderr, _ := testEnv(map[string]string{
		"MD2BOOK_ENGINE": "pandoc",
		"MD2BOOK_ENGIN":  "native",
		"HOME":           "/root",
	})
	warnUnknownEnvVars(env)

	out := stderr.String()
	if !strings.Contains(out, "MD2BOOK_ENGIN ") {
		t.Errorf("missing warning for typo, got %q", out)
	}
	if strings.Contains(out, "MD2BOOK_ENGINE") || strings.Contains(out, "HOME") {
		t.Errorf("unexpected warning: %q", out)
	}
}

func TestLoadConfig_EnvThenFlags(t *testing.T) {
	t.Parallel()

	env, _, _, _ := testEnv(map[string]string{
		"MD2BOOK_ENGINE": "native",
		"MD2BOOK_PANDOC": "/opt/pandoc",
	})
	f := &commandFlags{render: renderFlags{engine: "pandoc"}}

	cfg, err := loadConfig(f, nil, env)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Renderer.Engine != "pandoc" {
		t.Errorf("engine = %q, flag should win over env", cfg.Renderer.Engine)
	}
	if cfg.Renderer.Pandoc != "/opt/pandoc" {
		t.Errorf("pandoc = %q, env should win over defaults", cfg.Renderer.Pandoc)
	}
}
