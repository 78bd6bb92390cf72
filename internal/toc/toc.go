// Package toc parses the book's table-of-contents manifest (SUMMARY.md).
//
// A manifest is a Markdown link list. Each line of the form
//
//	<indent>* [Title](file.md)
//
// yields one Entry; every other line is skipped without error. Only two
// heading depths exist: unindented entries are parts, indented ones chapters.
package toc

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
)

// Manifest entry: indent, bullet, [title](file). Leading text is tolerated.
var entryLine = regexp.MustCompile(`(\s*?)[*-] \[(.+?)\]\((.+?)\)`)

// Entry is one manifest line.
type Entry struct {
	Depth int    // raw count of leading whitespace characters
	Title string // display title as written in the manifest
	File  string // chapter path relative to the source root
}

// Level returns the heading level of the entry: 1 for top-level, 2 otherwise.
func (e Entry) Level() int {
	if e.Depth == 0 {
		return 1
	}
	return 2
}

// AnchorID returns the file base name without extension.
func (e Entry) AnchorID() string {
	base := path.Base(strings.ReplaceAll(e.File, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// String returns the entry as a manifest line.
func (e Entry) String() string {
	return fmt.Sprintf("%s* [%s](%s)", strings.Repeat(" ", e.Depth), e.Title, e.File)
}

// Parse extracts entries from manifest text in file order.
func Parse(manifest string) []Entry {
	entries, _ := ParseReader(strings.NewReader(manifest))
	return entries
}

// ParseReader extracts entries from r in file order.
// The only possible error comes from reading r.
func ParseReader(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if e, ok := parseLine(line); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	return entries, nil
}

func parseLine(line string) (Entry, bool) {
	m := entryLine.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	return Entry{Depth: len(m[1]), Title: m[2], File: m[3]}, true
}

// Files returns the distinct chapter files in first-seen order.
func Files(entries []Entry) []string {
	seen := make(map[string]bool, len(entries))
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e.File] {
			continue
		}
		seen[e.File] = true
		files = append(files, e.File)
	}
	return files
}

// DuplicateAnchors returns anchor ids used by more than one entry, in
// first-seen order. Entries pointing twice at the same file count too.
func DuplicateAnchors(entries []Entry) []string {
	count := make(map[string]int, len(entries))
	var order []string
	for _, e := range entries {
		id := e.AnchorID()
		if count[id] == 0 {
			order = append(order, id)
		}
		count[id]++
	}

	var dups []string
	for _, id := range order {
		if count[id] > 1 {
			dups = append(dups, id)
		}
	}
	return dups
}
