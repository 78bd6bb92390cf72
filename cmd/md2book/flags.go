package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sourceFlags locate the book and name its artifacts.
type sourceFlags struct {
	output   string
	manifest string
	intro    string
	prefix   string
	assets   string
}

// bookFlags override front matter values.
type bookFlags struct {
	date   string
	title  string
	author string
}

// renderFlags select targets and the rendering engine.
type renderFlags struct {
	formats []string
	engine  string
	workers int
	timeout string
	strict  bool
	variant string
}

// commandFlags holds all flags of the build, assemble and check commands.
// Commands ignore the flags that do not concern them.
type commandFlags struct {
	common   commonFlags
	source   sourceFlags
	book     bookFlags
	render   renderFlags
	introSet bool // --intro given, possibly empty to disable the introduction
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timings")
}

// addSourceFlags adds source and output flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory (assemble: file, - for stdout)")
	fs.StringVar(&f.manifest, "manifest", "", "manifest file relative to the source directory")
	fs.StringVar(&f.intro, "intro", "", "introduction file (\"\" disables it)")
	fs.StringVar(&f.prefix, "prefix", "", "artifact name prefix")
	fs.StringVar(&f.assets, "assets", "", "directory overriding embedded styles and templates")
}

// addBookFlags adds front matter flags to a FlagSet.
func addBookFlags(fs *flag.FlagSet, f *bookFlags) {
	fs.StringVar(&f.date, "date", "", "release date: auto or YYYY-MM-DD")
	fs.StringVar(&f.title, "title", "", "book title")
	fs.StringVar(&f.author, "author", "", "book author")
}

// addRenderFlags adds target and engine flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringSliceVarP(&f.formats, "format", "f", nil, "target names to build (repeatable, default all)")
	fs.StringVar(&f.engine, "engine", "", "renderer: pandoc or native")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "overall render timeout (e.g. 90s, 5m)")
	fs.BoolVar(&f.strict, "strict", false, "fail on duplicate anchors too")
	fs.StringVar(&f.variant, "variant", "", "variant to assemble (assemble, check)")
}

// newCommandFlagSet registers every flag of name into f.
// Shared by the parser and shell completion.
func newCommandFlagSet(name string, f *commandFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addBookFlags(fs, &f.book)
	addRenderFlags(fs, &f.render)
	return fs
}

// parseCommandFlags parses the flags of name and returns positional args.
// Usage errors are printed to stderr by pflag.
func parseCommandFlags(name string, args []string, stderr io.Writer) (*commandFlags, []string, error) {
	f := &commandFlags{}
	fs := newCommandFlagSet(name, f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCommandUsage(stderr, name) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, usageError(err)
	}
	f.introSet = fs.Changed("intro")
	return f, fs.Args(), nil
}
