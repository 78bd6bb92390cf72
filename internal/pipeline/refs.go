package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Reference-style link usage: [title][id]
	referenceLink = regexp.MustCompile(`\[(.+?)\]\[(.+?)\]`)

	// Reference definition at line start: [id]: target
	referenceDef = regexp.MustCompile(`^\[(.+)\]:\s(.+)$`)

	// Title block line understood by pandoc: "% Title"
	fileTitle = regexp.MustCompile(`^%\s(.+)\n`)
)

// PrefixReferenceNames namespaces reference-style link ids with prefix so that
// ids defined in different chapters do not collide in the composite document.
// "[text][id]" becomes "[text][prefix--id]" and "[id]: url" becomes
// "[prefix--id]: url". Code blocks and footnotes ("[^1]") are left untouched.
func PrefixReferenceNames(content, prefix string) string {
	return mapProseLines(content, func(line string) string {
		if referenceLink.MatchString(line) {
			return referenceLink.ReplaceAllStringFunc(line, func(m string) string {
				sub := referenceLink.FindStringSubmatch(m)
				if isFootnoteID(sub[2]) {
					return m
				}
				return "[" + sub[1] + "][" + prefix + "--" + sub[2] + "]"
			})
		}
		if sub := referenceDef.FindStringSubmatch(line); sub != nil && !isFootnoteID(sub[1]) {
			return "[" + prefix + "--" + sub[1] + "]: " + sub[2]
		}
		return line
	})
}

func isFootnoteID(id string) bool {
	return strings.HasPrefix(id, "^")
}

// RemoveFileTitle drops a leading "% Title" line. Chapter headings are
// generated from the manifest instead.
func RemoveFileTitle(content string) string {
	return fileTitle.ReplaceAllLiteralString(content, "")
}

// ReferencePrefix derives the reference namespace for a chapter file.
// Path separators are replaced so the id stays a single token.
func ReferencePrefix(file string) string {
	return strings.NewReplacer("/", "-", `\`, "-").Replace(file)
}
