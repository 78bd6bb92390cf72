package pipeline

import (
	"strings"
	"unicode/utf8"
)

// Line wrapping defaults for fixed-width output.
const (
	DefaultWrapWidth          = 87
	DefaultContinuationMarker = "↳ "
)

// BreakLongLine splits line into rows of at most maxLen runes.
// The first row holds maxLen runes; every following row starts with marker
// and holds maxLen minus the marker length runes. The last row is not padded.
// Lines of maxLen runes or fewer are returned unchanged, as are all lines
// when maxLen does not leave room for the marker.
func BreakLongLine(line string, maxLen int, marker string) string {
	markerLen := utf8.RuneCountInString(marker)
	if maxLen <= markerLen || utf8.RuneCountInString(line) <= maxLen {
		return line
	}

	runes := []rune(line)
	segment := maxLen - markerLen

	var b strings.Builder
	b.Grow(len(line) + (len(runes)/segment+1)*(len(marker)+1))

	b.WriteString(string(runes[:maxLen]))
	for start := maxLen; start < len(runes); start += segment {
		end := min(start+segment, len(runes))
		b.WriteByte('\n')
		b.WriteString(marker)
		b.WriteString(string(runes[start:end]))
	}

	return b.String()
}

// WrapCodeBlocks breaks long lines inside fenced code blocks.
// Prose lines and fence delimiters are never wrapped.
func WrapCodeBlocks(content string, maxLen int, marker string) string {
	return mapCodeLines(content, func(line string) string {
		return BreakLongLine(line, maxLen, marker)
	})
}

// CodeBlockWrapper returns WrapCodeBlocks bound to a width and marker.
func CodeBlockWrapper(maxLen int, marker string) Transform {
	return func(content string) string {
		return WrapCodeBlocks(content, maxLen, marker)
	}
}
