package pipeline

import (
	"regexp"
	"strings"
)

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Transform is a pure text-to-text rewrite.
type Transform func(content string) string

// Step is a named Transform, so the order of a chain stays visible in logs and tests.
type Step struct {
	Name  string
	Apply Transform
}

// Chain applies its steps in order.
type Chain []Step

// Run applies every step to content, first to last.
func (c Chain) Run(content string) string {
	for _, s := range c {
		content = s.Apply(content)
	}
	return content
}

// Names returns the step names in execution order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return names
}

// Step names used by ChapterChain and DocumentChain.
const (
	StepLineEndings    = "line-endings"
	StepHeadingLevel   = "heading-level"
	StepFileTitle      = "file-title"
	StepReferenceNames = "reference-names"
	StepWrapCode       = "wrap-code"
	StepCodeFences     = "code-fences"
	StepLinks          = "links"
	StepCheckmarks     = "checkmarks"
	StepStripSymbols   = "strip-symbols"
)

// ChapterOptions configures the per-chapter transform chain.
type ChapterOptions struct {
	HeadingBase     int           // level given to the chapter's own "#" headings
	ReferencePrefix string        // namespace for reference-style link ids
	WrapCode        bool          // break long code lines (fixed-width variants)
	WrapWidth       int           // rune width for WrapCode
	Marker          string        // continuation marker for WrapCode
	Links           *LinkRewriter // nil = DefaultLinkRewriter
}

// ChapterChain returns the ordered transforms applied to one chapter:
// line endings, heading levels, title line, reference ids, code fences,
// optional code wrapping, then links. Wrapping follows the fence pass so
// hidden lines are dropped whole.
func ChapterChain(opts ChapterOptions) Chain {
	links := opts.Links
	if links == nil {
		links = DefaultLinkRewriter()
	}

	chain := Chain{
		{Name: StepLineEndings, Apply: NormalizeLineEndings},
		{Name: StepHeadingLevel, Apply: func(s string) string { return AdjustHeadingLevel(s, opts.HeadingBase) }},
		{Name: StepFileTitle, Apply: RemoveFileTitle},
		{Name: StepReferenceNames, Apply: func(s string) string { return PrefixReferenceNames(s, opts.ReferencePrefix) }},
		{Name: StepCodeFences, Apply: NormalizeCodeFences},
	}

	if opts.WrapCode {
		width, marker := opts.WrapWidth, opts.Marker
		if width == 0 {
			width = DefaultWrapWidth
		}
		if marker == "" {
			marker = DefaultContinuationMarker
		}
		chain = append(chain, Step{Name: StepWrapCode, Apply: CodeBlockWrapper(width, marker)})
	}

	return append(chain, Step{Name: StepLinks, Apply: links.Rewrite})
}

// DocumentOptions configures the transforms applied to the assembled book.
type DocumentOptions struct {
	ConvertCheckmarks bool
	StripSymbols      bool
}

// DocumentChain returns the transforms applied after concatenation.
// Checkmarks are converted before symbols are stripped.
func DocumentChain(opts DocumentOptions) Chain {
	var chain Chain
	if opts.ConvertCheckmarks {
		chain = append(chain, Step{Name: StepCheckmarks, Apply: ConvertCheckmarks})
	}
	if opts.StripSymbols {
		chain = append(chain, Step{Name: StepStripSymbols, Apply: StripSymbols})
	}
	return chain
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	if !strings.ContainsRune(content, '\r') {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
