package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2book <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Assemble the book and render every target")
	fmt.Fprintln(w, "  assemble    Write the composite Markdown only")
	fmt.Fprintln(w, "  check       Report duplicate anchors and broken section links")
	fmt.Fprintln(w, "  index       Rewrite index.html listing built artifacts")
	fmt.Fprintln(w, "  doctor      Check pandoc, LaTeX and Chrome")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2book help <command>' for details on a specific command.")
}

// printSourceFlags prints the flags shared by build, assemble and check.
func printSourceFlags(w io.Writer) {
	fmt.Fprintln(w, "Source:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --manifest <path>     Manifest, relative to source-dir (default SUMMARY.md)")
	fmt.Fprintln(w, "      --intro <path>        Introduction file (default README.md, \"\" disables)")
	fmt.Fprintln(w, "      --assets <dir>        Directory overriding embedded styles and templates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Book:")
	fmt.Fprintln(w, "      --title <s>           Book title")
	fmt.Fprintln(w, "      --author <s>          Book author")
	fmt.Fprintln(w, "      --date <s>            Release date: auto or YYYY-MM-DD")
	fmt.Fprintln(w, "      --prefix <s>          Artifact prefix (default trpl)")
	fmt.Fprintln(w)
}

// printOutputControl prints the verbosity flags.
func printOutputControl(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timings")
}

// printCommandUsage prints usage for a command taking flags.
func printCommandUsage(w io.Writer, name string) {
	switch name {
	case "build":
		printBuildUsage(w)
	case "assemble":
		printAssembleUsage(w)
	case "check":
		printCheckUsage(w)
	case "index":
		printIndexUsage(w)
	default:
		printUsage(w)
	}
}

func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2book build [source-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assemble the book once per variant, write <prefix>-<date>.md and")
	fmt.Fprintln(w, "render each target to <prefix>-<date>.<suffix>.")
	fmt.Fprintln(w)
	printSourceFlags(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default dist)")
	fmt.Fprintln(w, "  -f, --format <name>       Target to build, repeatable (default all)")
	fmt.Fprintln(w, "                            Defaults: html, epub, tex, pdf-a4, pdf-letter")
	fmt.Fprintln(w, "      --engine <s>          Renderer: pandoc, native (html and pdf only)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renders (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Overall timeout (e.g. 90s, 5m)")
	fmt.Fprintln(w, "      --strict              Fail before rendering on anchor problems")
	fmt.Fprintln(w)
	printOutputControl(w)
}

func printAssembleUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2book assemble [source-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the composite Markdown document without rendering it.")
	fmt.Fprintln(w)
	printSourceFlags(w)
	fmt.Fprintln(w, "Assembly:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, - for stdout")
	fmt.Fprintln(w, "                            (default <output dir>/<prefix>-<date>.md)")
	fmt.Fprintln(w, "      --variant <name>      Variant: screen, print (default screen)")
	fmt.Fprintln(w)
	printOutputControl(w)
}

func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2book check [source-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assemble the book and list duplicate section anchors and links to")
	fmt.Fprintln(w, "undefined sections. Exits 1 on undefined links.")
	fmt.Fprintln(w)
	printSourceFlags(w)
	fmt.Fprintln(w, "Check:")
	fmt.Fprintln(w, "      --variant <name>      Variant to check (default screen)")
	fmt.Fprintln(w, "      --strict              Fail on duplicate anchors too")
	fmt.Fprintln(w)
	printOutputControl(w)
}

func printIndexUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2book index [dist-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite index.html listing <prefix>-<date>.<suffix> files by date,")
	fmt.Fprintln(w, "newest first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --prefix <s>          Artifact prefix (default trpl)")
	fmt.Fprintln(w, "      --title <s>           Page title")
	fmt.Fprintln(w, "      --assets <dir>        Directory overriding the index template")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build", "assemble", "check", "index":
		printCommandUsage(env.Stdout, args[0])
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2book doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that pandoc, the PDF engine and Chrome are available.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2book version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2book help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
