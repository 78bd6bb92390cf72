package pipeline

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Pictographic blocks the LaTeX engine cannot embed with the book fonts.
var (
	miscTechnical = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x2300, Hi: 0x23ff, Stride: 1}}}
	miscSymbols   = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x2600, Hi: 0x26ff, Stride: 1}}}
	dingbats      = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x2700, Hi: 0x27bf, Stride: 1}}}
	symbolsArrows = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x2b00, Hi: 0x2bff, Stride: 1}}}

	// Mahjong tiles through Symbols and Pictographs Extended-A.
	pictographs = &unicode.RangeTable{R32: []unicode.Range32{{Lo: 0x1f000, Hi: 0x1faff, Stride: 1}}}

	// Emoji presentation selector and zero width joiner glue sequences together.
	emojiJoiners = rangetable.New(0x200d, 0xfe0f)
)

// nonPrintable is the merged lookup table used by StripSymbols.
var nonPrintable = rangetable.Merge(
	miscTechnical,
	miscSymbols,
	dingbats,
	symbolsArrows,
	pictographs,
	emojiJoiners,
)

// checkmarks matches the check mark dingbats rendered by LaTeX as \checkmark.
var checkmarks = regexp.MustCompile("[✓✔]")

// IsNonPrintable reports whether r belongs to the stripped symbol table.
func IsNonPrintable(r rune) bool {
	return unicode.Is(nonPrintable, r)
}

// StripSymbols removes every rune of the symbol table from content,
// inside and outside code blocks.
func StripSymbols(content string) string {
	if strings.IndexFunc(content, IsNonPrintable) < 0 {
		return content
	}
	return strings.Map(func(r rune) rune {
		if IsNonPrintable(r) {
			return -1
		}
		return r
	}, content)
}

// ConvertCheckmarks replaces ✓ and ✔ with the raw LaTeX \checkmark command.
// Run it before StripSymbols, which would otherwise drop them.
func ConvertCheckmarks(content string) string {
	return checkmarks.ReplaceAllLiteralString(content, `\checkmark`)
}
