package pipeline

import (
	"regexp"
	"strings"
)

// codeFence is the delimiter that opens and closes fenced code blocks.
const codeFence = "```"

// canonicalRustFence replaces any rust-tagged opening fence.
const canonicalRustFence = "```rust"

var (
	// Opening fence whose info string mentions rust: ```rust,ignore, ``` rust, ```{rust}
	rustFenceOpen = regexp.MustCompile("^```(.*)rust(.*)")

	// Lines compiled with the example but hidden from readers
	hiddenCodeLine = regexp.MustCompile(`^# `)
)

// FenceState tracks whether a line-oriented pass is inside a fenced code block.
type FenceState int

const (
	// Outside is the state between code blocks.
	Outside FenceState = iota
	// InsideFence is the state after an opening fence and before its close.
	InsideFence
)

// String returns a readable state name.
func (s FenceState) String() string {
	if s == InsideFence {
		return "inside"
	}
	return "outside"
}

// fenceStep is the transition function of the code-fence normalizer.
// It returns the next state, the line to emit, and whether to emit anything.
//
// Priority matters: a hidden line is dropped only inside a rust block, a rust
// opening is checked before the generic fence so "```rust" is never treated
// as a close, and any other "```" line leaves the block.
func fenceStep(state FenceState, line string) (next FenceState, out string, emit bool) {
	switch {
	case state == InsideFence && hiddenCodeLine.MatchString(line):
		return state, "", false
	case rustFenceOpen.MatchString(line):
		return InsideFence, canonicalRustFence, true
	case strings.HasPrefix(line, codeFence):
		return Outside, line, true
	default:
		return state, line, true
	}
}

// NormalizeCodeFences canonicalizes rust-tagged opening fences to "```rust"
// and drops hidden "# " lines inside those blocks.
//
// Non-rust fences do not change the state, so their content is never
// scanned for hidden lines. An unterminated rust block keeps the state
// inside until the end of the input; no error is reported.
func NormalizeCodeFences(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := Outside
	for _, line := range splitLines(content) {
		var out string
		var emit bool
		state, out, emit = fenceStep(state, line)
		if !emit {
			continue
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}

	return b.String()
}

// mapCodeLines applies fn to every line inside a fenced block.
// Any line starting with "```" toggles the state; fence lines themselves
// and lines outside blocks pass through unchanged.
func mapCodeLines(content string, fn func(line string) string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := Outside
	for _, line := range splitLines(content) {
		if strings.HasPrefix(line, codeFence) {
			if state == Outside {
				state = InsideFence
			} else {
				state = Outside
			}
			b.WriteString(line)
		} else if state == InsideFence {
			b.WriteString(fn(line))
		} else {
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// mapProseLines applies fn to every line outside fenced blocks.
func mapProseLines(content string, fn func(line string) string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := Outside
	for _, line := range splitLines(content) {
		switch {
		case strings.HasPrefix(line, codeFence):
			if state == Outside {
				state = InsideFence
			} else {
				state = Outside
			}
			b.WriteString(line)
		case state == InsideFence:
			b.WriteString(line)
		default:
			b.WriteString(fn(line))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// splitLines splits content on "\n" the way a line iterator does:
// a trailing newline does not produce an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
