// Package pipeline implements the text transforms that turn independently
// authored chapter files into sections of one composite Markdown document.
//
// Per chapter, in order (see ChapterChain):
//   - line ending normalization
//   - heading level adjustment
//   - "% title" line removal
//   - reference-style link id prefixing
//   - code line wrapping (fixed-width variants only)
//   - code fence normalization and hidden line removal
//   - link rewriting (library prefixes, then cross references)
//
// On the assembled document (see DocumentChain), for print variants:
// checkmark conversion and removal of symbols the LaTeX engine cannot embed.
//
// Line-oriented passes track fenced code blocks with FenceState. Nothing in
// this package parses Markdown; the native HTML engine hands the assembled
// document to Goldmark (md2html.go) and rewrites relative image paths in the
// resulting HTML (pathrewrite.go).
package pipeline
