// Package md2book assembles a Markdown book (a SUMMARY.md manifest plus
// chapter files) into one composite document and renders it to HTML, EPUB,
// LaTeX and PDF.
//
// # Quick Start
//
// Parse the manifest, assemble a variant, and render it:
//
//	loader := md2book.NewDirLoader("book/src")
//	manifest, err := loader.Load("SUMMARY.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	book := md2book.Book{
//	    Manifest:     toc.Parse(manifest),
//	    Introduction: md2book.DefaultIntroduction,
//	    Metadata:     md2book.DefaultMetadata(time.Now()),
//	    Loader:       loader,
//	}
//
//	doc, err := md2book.NewAssembler().Assemble(ctx, book, md2book.ScreenVariant())
//
// # Assembly Pipeline
//
// Every chapter goes through the same ordered transforms:
//
//  1. Line endings normalized to \n
//  2. Heading levels shifted under the generated section heading
//  3. "% Title" line removed
//  4. Reference-style link ids prefixed with the file name
//  5. Rust code fences canonicalized, hidden "# " lines dropped
//  6. Long code lines wrapped (print variant only)
//  7. Documentation links made absolute, ".html" cross references
//     rewritten to "#sec--<file>" anchors
//
// The sections are concatenated after a YAML front matter block. The print
// variant then converts checkmarks to \checkmark and strips pictographs the
// LaTeX fonts cannot render.
//
// # Rendering
//
// A Renderer turns the composite document into one Target. PandocRenderer
// pipes it to the pandoc CLI with the embedded templates; NativeRenderer
// uses goldmark and headless Chrome and handles html and pdf only.
//
// Publisher ties both together: it assembles each variant once, renders
// targets concurrently through a RendererPool, and writes
// "<prefix>-<date>.<suffix>" files. RenderIndex lists those files by date.
//
// # Error Handling
//
// Errors wrap the sentinels in errors.go; use errors.Is:
//
//	if errors.Is(err, md2book.ErrChapterRead) {
//	    // a manifest entry points at a missing file
//	}
package md2book
