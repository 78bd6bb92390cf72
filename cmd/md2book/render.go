package main

import (
	"log/slog"
	"time"

	md2book "github.com/alnah/go-md2book"
	"github.com/alnah/go-md2book/internal/assets"
	"github.com/alnah/go-md2book/internal/config"
)

// rendererSettings carries the configuration one renderer needs.
type rendererSettings struct {
	Engine    string
	Pandoc    string
	PDFEngine string
	SourceDir string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// rendererConstructor creates one renderer for the pool.
// Injected through Environment so tests run without pandoc or Chrome.
type rendererConstructor func(loader assets.AssetLoader, s rendererSettings) (md2book.Renderer, error)

// newRenderer creates the renderer selected by s.Engine.
func newRenderer(loader assets.AssetLoader, s rendererSettings) (md2book.Renderer, error) {
	if s.Engine == md2book.EngineNative {
		r, err := md2book.NewNativeRenderer(loader,
			md2book.WithSourceDir(s.SourceDir),
			md2book.WithTimeout(s.Timeout),
			md2book.WithNativeLogger(s.Logger),
		)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	r, err := md2book.NewPandocRenderer(loader,
		md2book.WithPandocBinary(s.Pandoc),
		md2book.WithPDFEngine(s.PDFEngine),
		md2book.WithResourcePath(s.SourceDir),
		md2book.WithPandocLogger(s.Logger),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// settingsFor returns the renderer settings of cfg.
func settingsFor(cfg *config.Config, timeout time.Duration, logger *slog.Logger) rendererSettings {
	engine := cfg.Renderer.Engine
	if engine == "" {
		engine = md2book.EnginePandoc
	}
	return rendererSettings{
		Engine:    engine,
		Pandoc:    cfg.Renderer.Pandoc,
		PDFEngine: cfg.Renderer.PDFEngine,
		SourceDir: cfg.Source.Dir,
		Timeout:   timeout,
		Logger:    logger,
	}
}
