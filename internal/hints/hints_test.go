package hints

// Notes:
// - ForBrowserConnect and ForPDFEngine tests cannot use t.Parallel(): they
//   use t.Setenv() or replace the package-level IsInContainer variable.

import (
	"strings"
	"testing"
)

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-dependent suggestions
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		ci          string
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{"ci", false, "true", "", "", true, true},
		{"docker", true, "", "", "", true, true},
		{"sandbox already disabled", true, "", "1", "", false, true},
		{"browser already set", false, "", "", "/usr/bin/chrome", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			t.Setenv("CI", tt.ci)
			t.Setenv("GITHUB_ACTIONS", "")
			t.Setenv("GITLAB_CI", "")
			t.Setenv("JENKINS_URL", "")
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX suggested = %v, want %v (%q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN suggested = %v, want %v (%q)", got, tt.wantBin, hint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForPDFEngine - TeX installation hint
// ---------------------------------------------------------------------------

func TestForPDFEngine(t *testing.T) {
	stubContainer(t, false)

	if hint := ForPDFEngine(""); !strings.Contains(hint, "xelatex") {
		t.Errorf("ForPDFEngine(\"\") = %q, want default engine", hint)
	}
	if hint := ForPDFEngine("lualatex"); !strings.Contains(hint, "lualatex") {
		t.Errorf("ForPDFEngine(lualatex) = %q", hint)
	}
}

func TestForPDFEngine_InContainer(t *testing.T) {
	stubContainer(t, true)

	if hint := ForPDFEngine("xelatex"); !strings.Contains(hint, "texlive-xetex") {
		t.Errorf("ForPDFEngine() = %q, want package name in containers", hint)
	}
}

// ---------------------------------------------------------------------------
// TestStaticHints - Hints without environment input
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hint string
		want string
	}{
		{"pandoc", ForPandocNotFound(), "pandoc.org"},
		{"pandoc native fallback", ForPandocNotFound(), "--engine native"},
		{"timeout", ForTimeout(), "--timeout"},
		{"output dir", ForOutputDirectory(), "writable"},
		{"missing chapter default", ForMissingChapter(""), "SUMMARY.md"},
		{"missing chapter custom", ForMissingChapter("toc.md"), "toc.md"},
		{"unknown target", ForUnknownTarget([]string{"html", "epub"}), "available: html, epub"},
		{"anchors", ForAnchorProblems(), "#sec--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q lacks the hint prefix", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.want) {
				t.Errorf("hint %q does not contain %q", tt.hint, tt.want)
			}
		})
	}
}

func TestForUnknownTarget_Empty(t *testing.T) {
	t.Parallel()

	if got := ForUnknownTarget(nil); got != "" {
		t.Errorf("ForUnknownTarget(nil) = %q, want empty", got)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	paths := []string{"book.yaml", "/home/u/.config/go-md2book/book.yaml"}
	hint := ForConfigNotFound(paths)

	if !strings.Contains(hint, "--config") {
		t.Errorf("hint %q should mention --config", hint)
	}
	if !strings.Contains(hint, "create /home/u/.config/go-md2book/book.yaml") {
		t.Errorf("hint %q should suggest the user config path", hint)
	}
}
