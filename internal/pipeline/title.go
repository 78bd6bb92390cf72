package pipeline

import "regexp"

// Part label such as "I: " or "IV: " in front of a manifest title.
// Any run of I and V counts, so a title like "IV: Fun" loses its first word too.
var romanPartPrefix = regexp.MustCompile(`^[IV]+: `)

// NormalizeTitle strips a leading roman numeral part label from a chapter title.
func NormalizeTitle(title string) string {
	loc := romanPartPrefix.FindStringIndex(title)
	if loc == nil {
		return title
	}
	return title[loc[1]:]
}
