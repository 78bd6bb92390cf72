package pipeline

import (
	"regexp"
	"strings"
)

// DefaultDocsBaseURL hosts the library documentation referenced by relative prefixes.
const DefaultDocsBaseURL = "http://doc.rust-lang.org"

// DefaultDocsPrefixes are the relative folder references rewritten to DefaultDocsBaseURL.
var DefaultDocsPrefixes = []string{"std", "reference", "rustc", "syntax", "core"}

// AnchorPrefix starts every section anchor id generated for a chapter.
const AnchorPrefix = "sec--"

// Same-book cross reference: ](variable-bindings.html)
var crossSectionLink = regexp.MustCompile(`\]\(([\w\-]+)\.html\)`)

// LinkRewriter rewrites documentation links into the single-document scheme.
type LinkRewriter struct {
	replacer *strings.Replacer
}

// NewLinkRewriter creates a LinkRewriter mapping "../<prefix>" to "<baseURL>/<prefix>".
// Prefixes are matched literally, in the order given.
func NewLinkRewriter(baseURL string, prefixes []string) *LinkRewriter {
	baseURL = strings.TrimSuffix(baseURL, "/")
	pairs := make([]string, 0, len(prefixes)*2)
	for _, p := range prefixes {
		pairs = append(pairs, "../"+p, baseURL+"/"+p)
	}
	return &LinkRewriter{replacer: strings.NewReplacer(pairs...)}
}

// DefaultLinkRewriter returns a LinkRewriter with the built-in prefix table.
func DefaultLinkRewriter() *LinkRewriter {
	return NewLinkRewriter(DefaultDocsBaseURL, DefaultDocsPrefixes)
}

// RewriteExternalPrefixes replaces known relative library paths with absolute URLs,
// keeping whatever follows the prefix.
func (r *LinkRewriter) RewriteExternalPrefixes(content string) string {
	return r.replacer.Replace(content)
}

// Rewrite applies both passes: external prefixes first, then cross references.
//
// Both passes run unconditionally in sequence. A prefix expansion that leaves
// a bare "](name.html)" target would be re-targeted by the second pass.
func (r *LinkRewriter) Rewrite(content string) string {
	return RewriteCrossReferences(r.RewriteExternalPrefixes(content))
}

// RewriteCrossReferences turns "](stem.html)" into "](#sec--stem)".
// Targets containing a path separator are left alone.
func RewriteCrossReferences(content string) string {
	return crossSectionLink.ReplaceAllString(content, "](#"+AnchorPrefix+"$1)")
}

// AnchorTarget returns the in-document link target for an anchor id.
func AnchorTarget(id string) string {
	return "#" + AnchorPrefix + id
}
