package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	md2book "github.com/alnah/go-md2book"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Pandoc   toolInfo   `json:"pandoc"`
	LaTeX    toolInfo   `json:"pdf_engine"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for an executable.
type toolInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorProbes are the system lookups doctor performs, injectable for tests.
type doctorProbes struct {
	LookPath   func(file string) (string, error)
	ChromePath func() (string, bool)
	Version    func(path string) (string, error)
	Stat       func(path string) error
	TempDir    func() string
}

// defaultDoctorProbes returns probes backed by the real system.
func defaultDoctorProbes() *doctorProbes {
	return &doctorProbes{
		LookPath:   exec.LookPath,
		ChromePath: launcher.LookPath,
		Version:    toolVersion,
		Stat: func(path string) error {
			_, err := os.Stat(path)
			return err
		},
		TempDir: os.TempDir,
	}
}

// toolVersion returns the first line of "<path> --version".
func toolVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path comes from LookPath
	if err != nil {
		return "", err
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(first), nil
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	probes := env.Doctor
	if probes == nil {
		probes = defaultDoctorProbes()
	}

	envCfg := loadEnvConfig(env.Getenv)
	result := runDoctor(probes, env.Getenv, envCfg.Pandoc)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(p *doctorProbes, getenv func(string) string, pandoc string) *doctorResult {
	if pandoc == "" {
		pandoc = md2book.DefaultPandocBinary
	}

	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  getenv("ROD_NO_SANDBOX"),
			BrowserBin: getenv("ROD_BROWSER_BIN"),
		},
	}

	result.Pandoc = checkTool(p, pandoc)
	result.LaTeX = checkTool(p, md2book.DefaultPDFEngine)
	checkChrome(p, result)
	checkEngines(result)
	checkEnvironment(p, getenv, result)
	checkSystem(p, result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkTool locates an executable and reads its version.
func checkTool(p *doctorProbes, name string) toolInfo {
	info := toolInfo{Name: name}
	path, err := p.LookPath(name)
	if err != nil {
		return info
	}
	info.Found = true
	info.Path = path
	if v, err := p.Version(path); err == nil {
		info.Version = v
	}
	return info
}

// checkChrome detects the Chrome/Chromium installation.
func checkChrome(p *doctorProbes, result *doctorResult) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = p.ChromePath()
		if !found {
			return
		}
	}
	if err := p.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	if v, err := p.Version(chromePath); err == nil {
		result.Chrome.Version = v
	}
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEngines reports which renderers can run. One of them is required.
func checkEngines(result *doctorResult) {
	switch {
	case !result.Pandoc.Found && !result.Chrome.Found:
		result.Errors = append(result.Errors,
			"neither pandoc nor Chrome found; install pandoc, or Chrome for --engine native")
	case !result.Pandoc.Found:
		result.Warnings = append(result.Warnings,
			"pandoc not found: only --engine native (html, pdf) is available")
	case !result.LaTeX.Found:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s not found: pandoc cannot build pdf targets", result.LaTeX.Name))
	}
	if result.Pandoc.Found && !result.Chrome.Found {
		result.Warnings = append(result.Warnings,
			"Chrome not found: --engine native is unavailable (set ROD_BROWSER_BIN)")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(p *doctorProbes, getenv func(string) string, result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer(p, getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(p *doctorProbes, getenv func(string) string) (bool, string) {
	if getenv("MD2BOOK_CONTAINER") == "1" {
		return true, "MD2BOOK_CONTAINER=1"
	}
	if p.Stat("/.dockerenv") == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory pandoc and Chrome write to.
func checkSystem(p *doctorProbes, result *doctorResult) {
	tmpDir := p.TempDir()
	testFile := filepath.Join(tmpDir, "md2book-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printTool prints one executable line.
func printTool(w io.Writer, label string, t toolInfo, missing string) {
	fmt.Fprintln(w, label)
	if !t.Found {
		fmt.Fprintf(w, "  [%s] %s not found\n", missing, t.Name)
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "  [OK] Found at %s\n", t.Path)
	if t.Version != "" {
		fmt.Fprintf(w, "  [OK] Version: %s\n", t.Version)
	}
	fmt.Fprintln(w)
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2book doctor")
	fmt.Fprintln(w)

	printTool(w, "Pandoc", r.Pandoc, "WARN")
	printTool(w, "PDF engine", r.LaTeX, "WARN")

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
