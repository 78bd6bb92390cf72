package pipeline

import (
	"regexp"
	"strings"
)

// MaxHeadingLevel is the deepest ATX heading level.
const MaxHeadingLevel = 6

// ATX heading: "## Title {#id}"
var atxHeading = regexp.MustCompile(`^(#+)\s(.+)$`)

// AdjustHeadingLevel shifts every ATX heading outside code blocks so that a
// chapter's level-1 heading becomes baseLevel. Levels are capped at
// MaxHeadingLevel.
func AdjustHeadingLevel(content string, baseLevel int) string {
	return mapProseLines(content, func(line string) string {
		m := atxHeading.FindStringSubmatch(line)
		if m == nil {
			return line
		}
		level := shiftHeadingLevel(baseLevel, len(m[1]))
		return strings.Repeat("#", level) + " " + m[2]
	})
}

// shiftHeadingLevel maps a heading level relative to baseLevel.
func shiftHeadingLevel(baseLevel, level int) int {
	shifted := level + baseLevel - 1
	if shifted < 1 {
		return 1
	}
	return min(shifted, MaxHeadingLevel)
}
