package md2book

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-md2book/internal/assets"
	"github.com/alnah/go-md2book/internal/dateutil"
)

// IndexFile is the name of the artifact listing page.
const IndexFile = "index.html"

// Artifact is one file of a release.
type Artifact struct {
	Name   string // file name, e.g. "trpl-2017-06-12.a4.pdf"
	Suffix string // "a4.pdf"
	Label  string // "A4 PDF"
}

// Release groups the artifacts built on one date.
type Release struct {
	Date      time.Time
	ISO       string
	Label     string
	Artifacts []Artifact
}

// IndexOptions configures the listing page.
type IndexOptions struct {
	Title      string
	Language   string
	DateFormat string // dateutil format for release headings; "" = ISO
}

// ParseArtifactName splits "<prefix>-<YYYY-MM-DD>.<suffix>".
// ok is false for names that do not follow that shape.
func ParseArtifactName(prefix, name string) (date time.Time, suffix string, ok bool) {
	rest, found := strings.CutPrefix(name, prefix+"-")
	if !found || len(rest) < len(dateutil.ISOLayout)+2 {
		return time.Time{}, "", false
	}

	date, err := time.Parse(dateutil.ISOLayout, rest[:len(dateutil.ISOLayout)])
	if err != nil {
		return time.Time{}, "", false
	}

	suffix, found = strings.CutPrefix(rest[len(dateutil.ISOLayout):], ".")
	if !found || suffix == "" {
		return time.Time{}, "", false
	}
	return date, suffix, true
}

// artifactLabel turns a suffix into a display label: "a4.pdf" -> "A4 PDF".
func artifactLabel(suffix string) string {
	label := strings.ToUpper(suffix)
	label = strings.ReplaceAll(label, "-", "")
	label = strings.ReplaceAll(label, ".", " ")
	return strings.TrimSpace(label)
}

// GroupArtifacts groups artifact file names by release date, newest first.
// Names not matching the prefix pattern are ignored. Artifacts within a
// release are sorted by name.
func GroupArtifacts(prefix string, names []string, dateFormat string) []Release {
	byDate := make(map[string]*Release)
	for _, name := range names {
		date, suffix, ok := ParseArtifactName(prefix, name)
		if !ok {
			continue
		}
		iso := dateutil.FormatISO(date)
		rel, exists := byDate[iso]
		if !exists {
			rel = &Release{Date: date, ISO: iso, Label: releaseLabel(date, dateFormat)}
			byDate[iso] = rel
		}
		rel.Artifacts = append(rel.Artifacts, Artifact{Name: name, Suffix: suffix, Label: artifactLabel(suffix)})
	}

	releases := make([]Release, 0, len(byDate))
	for _, rel := range byDate {
		sort.Slice(rel.Artifacts, func(i, j int) bool { return rel.Artifacts[i].Name < rel.Artifacts[j].Name })
		releases = append(releases, *rel)
	}
	sort.Slice(releases, func(i, j int) bool { return releases[i].ISO > releases[j].ISO })
	return releases
}

func releaseLabel(date time.Time, format string) string {
	if format == "" {
		return dateutil.FormatISO(date)
	}
	label, err := dateutil.FormatDate(date, format)
	if err != nil {
		return dateutil.FormatISO(date)
	}
	return label
}

// ListArtifacts returns the names of regular files in dir.
func ListArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// indexPage is the data of the index.html template.
type indexPage struct {
	Title    string
	Language string
	CSS      template.CSS
	Releases []Release
}

// RenderIndex renders the listing page for releases with the index
// template and HTML stylesheet resolved by loader.
func RenderIndex(loader assets.AssetLoader, releases []Release, opts IndexOptions) ([]byte, error) {
	src, err := loader.LoadTemplate(assets.TemplateIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexRender, err)
	}
	css, err := loader.LoadStyle(assets.StyleHTML)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexRender, err)
	}

	tmpl, err := template.New(assets.TemplateIndex).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexRender, err)
	}

	page := indexPage{
		Title:    opts.Title,
		Language: opts.Language,
		CSS:      template.CSS(css), // #nosec G203 -- stylesheet from embedded or operator-provided assets
		Releases: releases,
	}
	if page.Language == "" {
		page.Language = "en"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexRender, err)
	}
	return buf.Bytes(), nil
}
