package main

import (
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"
)

// exportFlags holds all flags for the export command.
type exportFlags struct {
	config     string
	book       string
	output     string
	sourceRoot string
	title      string
	author     string
	theme      string
	highlight  string
	timeout    time.Duration
	htmlOnly   bool
	verbose    bool
	version    bool
}

// parseFlags parses CLI arguments. Returns the parsed flags and the
// remaining positional arguments (at most one: the source root).
func parseFlags(args []string) (*exportFlags, []string, error) {
	flags := &exportFlags{}

	fs := flag.NewFlagSet("bookforge", flag.ContinueOnError)
	fs.StringVarP(&flags.config, "config", "c", "", "export config file (YAML)")
	fs.StringVarP(&flags.book, "book", "b", "", "book structure file (YAML)")
	fs.StringVarP(&flags.output, "output", "o", "", "output PDF path")
	fs.StringVar(&flags.sourceRoot, "source-root", "", "directory containing markdown sources")
	fs.StringVar(&flags.title, "title", "", "book title (overrides config)")
	fs.StringVar(&flags.author, "author", "", "book author (overrides config)")
	fs.StringVar(&flags.theme, "diagram-theme", "", "mermaid theme (default, neutral, dark, forest)")
	fs.StringVar(&flags.highlight, "highlight", "", "chroma style for code blocks")
	fs.DurationVar(&flags.timeout, "timeout", 0, "browser operation timeout (e.g. 45s)")
	fs.BoolVar(&flags.htmlOnly, "html-only", false, "write assembled HTML instead of PDF")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	positional := fs.Args()
	if len(positional) > 1 {
		return nil, nil, fmt.Errorf("%w: expected at most one source root, got %d", ErrUsage, len(positional))
	}

	return flags, positional, nil
}

// printUsage prints the usage message.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: bookforge [flags] [source-root]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assemble markdown files into a single PDF book, rendering")
	fmt.Fprintln(w, "mermaid diagrams as print-ready inline SVG.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
