// Package linkcheck verifies the anchors of an assembled book.
//
// It parses the composite Markdown with goldmark and reports two problems
// the assembler itself never detects: section anchors defined more than once
// and in-document links whose "#sec--" target no section defines.
package linkcheck

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2book/internal/pipeline"
)

// Kind classifies a Problem.
type Kind string

const (
	KindDuplicateAnchor Kind = "duplicate-anchor"
	KindUnresolvedLink  Kind = "unresolved-link"
)

// Problem is one anchor defect, located by 1-based line in the checked document.
type Problem struct {
	Kind   Kind
	Anchor string // id without the leading "#"
	Line   int
}

func (p Problem) String() string {
	switch p.Kind {
	case KindDuplicateAnchor:
		return fmt.Sprintf("line %d: duplicate anchor #%s", p.Line, p.Anchor)
	case KindUnresolvedLink:
		return fmt.Sprintf("line %d: link to undefined anchor #%s", p.Line, p.Anchor)
	default:
		return fmt.Sprintf("line %d: %s #%s", p.Line, p.Kind, p.Anchor)
	}
}

// Report is the result of Check.
type Report struct {
	Anchors  []string  // section ids in document order, duplicates included
	Links    int       // in-document section links seen
	Problems []Problem // sorted by line
}

// OK reports whether the document has no anchor problems.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Count returns the number of problems of the given kind.
func (r Report) Count(kind Kind) int {
	n := 0
	for _, p := range r.Problems {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// Checker parses documents with heading attributes enabled.
type Checker struct {
	md goldmark.Markdown
}

// New creates a Checker.
func New() *Checker {
	return &Checker{md: goldmark.New(
		goldmark.WithParserOptions(parser.WithAttribute()),
	)}
}

type linkRef struct {
	anchor string
	line   int
}

// Check parses doc and reports its anchor problems. A leading front matter
// block is skipped; line numbers still refer to doc.
func (c *Checker) Check(doc string) Report {
	_, body := pipeline.SplitFrontMatter(doc)
	source := []byte(body)
	lineOffset := strings.Count(doc[:len(doc)-len(body)], "\n")

	root := c.md.Parser().Parse(text.NewReader(source))

	var report Report
	seen := make(map[string]bool)
	var links []linkRef

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Heading:
			id, ok := headingID(node)
			if !ok {
				return gmast.WalkContinue, nil
			}
			line := lineOffset + lineOf(node, source)
			report.Anchors = append(report.Anchors, id)
			if seen[id] {
				report.Problems = append(report.Problems, Problem{Kind: KindDuplicateAnchor, Anchor: id, Line: line})
			}
			seen[id] = true
		case *gmast.Link:
			dest := string(node.Destination)
			if strings.HasPrefix(dest, "#"+pipeline.AnchorPrefix) {
				links = append(links, linkRef{anchor: dest[1:], line: lineOffset + lineOf(node, source)})
			}
		}
		return gmast.WalkContinue, nil
	})

	// Links may point forward, so resolve after every heading is known.
	report.Links = len(links)
	for _, l := range links {
		if !seen[l.anchor] {
			report.Problems = append(report.Problems, Problem{Kind: KindUnresolvedLink, Anchor: l.anchor, Line: l.line})
		}
	}

	sort.SliceStable(report.Problems, func(i, j int) bool {
		return report.Problems[i].Line < report.Problems[j].Line
	})

	return report
}

// Check runs a default Checker over doc.
func Check(doc string) Report {
	return New().Check(doc)
}

func headingID(h *gmast.Heading) (string, bool) {
	v, ok := h.AttributeString("id")
	if !ok {
		return "", false
	}
	switch id := v.(type) {
	case []byte:
		return string(id), len(id) > 0
	case string:
		return id, id != ""
	}
	return "", false
}

// lineOf returns the 1-based line of n, using the nearest block ancestor
// with source lines for inline nodes.
func lineOf(n gmast.Node, source []byte) int {
	for p := n; p != nil; p = p.Parent() {
		if p.Type() != gmast.TypeBlock {
			continue
		}
		if lines := p.Lines(); lines != nil && lines.Len() > 0 {
			return bytes.Count(source[:lines.At(0).Start], []byte("\n")) + 1
		}
	}
	return 1
}
