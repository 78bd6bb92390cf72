// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2book/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForPandocNotFound returns hints when the pandoc executable is missing.
func ForPandocNotFound() string {
	return formatHints([]string{
		"install pandoc from https://pandoc.org/installing.html",
		"or use --engine native for HTML and PDF",
	})
}

// ForPDFEngine returns hints when pandoc fails to produce a PDF.
func ForPDFEngine(engine string) string {
	if engine == "" {
		engine = "xelatex"
	}
	h := "install a TeX distribution providing " + engine
	if IsInContainer() {
		h += " (texlive-xetex on Debian images)"
	}
	return format(h)
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large books, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2book/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/book.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2book") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForMissingChapter returns hints when a manifest entry has no file.
func ForMissingChapter(manifest string) string {
	if manifest == "" {
		manifest = "SUMMARY.md"
	}
	return format("paths in " + manifest + " are relative to the source directory")
}

// ForUnknownTarget returns hints listing the configured target names.
func ForUnknownTarget(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForAnchorProblems returns hints for failed anchor checks.
func ForAnchorProblems() string {
	return format("run md2book check for the full list; links use #sec--<file name without extension>")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
