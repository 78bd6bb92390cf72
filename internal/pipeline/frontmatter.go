package pipeline

import "strings"

// Front matter delimiters. Pandoc accepts either closer; the assembler writes "...".
const (
	frontMatterOpen     = "---\n"
	frontMatterClose    = "\n...\n"
	frontMatterAltClose = "\n---\n"
)

// SplitFrontMatter separates a leading YAML metadata block from the body.
// The returned header excludes the delimiters. If content does not start
// with "---" or the block is never closed, header is empty and body is content.
func SplitFrontMatter(content string) (header, body string) {
	if !strings.HasPrefix(content, frontMatterOpen) {
		return "", content
	}

	rest := content[len(frontMatterOpen):]
	end := -1
	closeLen := 0
	for _, closer := range []string{frontMatterClose, frontMatterAltClose} {
		if i := strings.Index(rest, closer); i >= 0 && (end < 0 || i < end) {
			end, closeLen = i, len(closer)
		}
	}
	if end < 0 {
		return "", content
	}

	return rest[:end], rest[end+closeLen:]
}
