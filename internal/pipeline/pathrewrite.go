package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteImagePaths turns relative img sources into file:// URLs under
// sourceDir, so a page loaded from a temporary file still finds the chapter
// images. Sources escaping sourceDir are left as written. An empty
// sourceDir returns page unchanged.
func RewriteImagePaths(page, sourceDir string) (string, error) {
	if sourceDir == "" {
		return page, nil
	}

	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	nodes, fragment, err := parsePage(page)
	if err != nil {
		return "", err
	}

	for _, n := range nodes {
		walkImages(n, func(img *html.Node) {
			for i, attr := range img.Attr {
				if attr.Key != "src" {
					continue
				}
				if u, ok := localImageURL(attr.Val, root); ok {
					img.Attr[i].Val = u
				}
			}
		})
	}

	var buf strings.Builder
	if !fragment {
		err = html.Render(&buf, nodes[0])
		return buf.String(), err
	}
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// parsePage parses a full document into one node, or a body fragment into
// its top-level nodes so rendering does not add <html><body>.
func parsePage(page string) (nodes []*html.Node, fragment bool, err error) {
	head := strings.ToLower(strings.TrimSpace(page))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(page))
		if err != nil {
			return nil, false, err
		}
		return []*html.Node{doc}, false, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err = html.ParseFragment(strings.NewReader(page), body)
	return nodes, true, err
}

func walkImages(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkImages(c, fn)
	}
}

// localImageURL returns the file:// URL of src resolved under root.
// ok is false for URLs with a scheme, protocol-relative or absolute paths,
// anchors and paths climbing out of root.
func localImageURL(src, root string) (string, bool) {
	if src == "" || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "//") || filepath.IsAbs(src) {
		return "", false
	}
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		return "", false
	}

	abs := filepath.Join(root, src)
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), true
}
