package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	verbose bool
	line    int
	lineSet bool // --line given; 0 is a valid line
}

// resultFlags holds the captured stream files for the result command.
type resultFlags struct {
	stdout        string
	stderr        string
	maxOutputSize int
}

// previewFlags holds preview output flags.
type previewFlags struct {
	output  string
	style   string
	kind    string
	timeout string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "report kind and settings on stderr")
	fs.IntVar(&f.line, "line", 0, "line number reported for results")
}

// parsed records flag state that needs the parsed FlagSet.
func (f *commonFlags) parsed(fs *flag.FlagSet) {
	f.lineSet = fs.Changed("line")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseCommonFlags parses a command that only takes common flags.
func parseCommonFlags(name string, args []string, stderr io.Writer) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newFlagSet(name, stderr, usageFor(name))
	addCommonFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	f.parsed(fs)
	return f, fs.Args(), nil
}

// parseResultFlags parses the result command.
func parseResultFlags(args []string, stderr io.Writer) (*commonFlags, *resultFlags, []string, error) {
	cf, rf := &commonFlags{}, &resultFlags{}
	fs := newFlagSet(cmdResult, stderr, usageFor(cmdResult))
	addCommonFlags(fs, cf)
	fs.StringVar(&rf.stdout, "stdout", "", "file holding captured evaluation output")
	fs.StringVar(&rf.stderr, "stderr", "", "file holding captured evaluation errors")
	fs.IntVar(&rf.maxOutputSize, "max-output-size", 0, "MathML size limit in bytes (0 = config)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	cf.parsed(fs)
	return cf, rf, fs.Args(), nil
}

// parsePreviewFlags parses the preview command.
func parsePreviewFlags(args []string, stderr io.Writer) (*commonFlags, *previewFlags, []string, error) {
	cf, pf := &commonFlags{}, &previewFlags{}
	fs := newFlagSet(cmdPreview, stderr, usageFor(cmdPreview))
	addCommonFlags(fs, cf)
	fs.StringVarP(&pf.output, "output", "o", "", "output .html or .pdf file (default stdout HTML)")
	fs.StringVar(&pf.style, "style", "", "highlight style for the JSON listing")
	fs.StringVar(&pf.kind, "kind", "", "response kind: error or mathml (default inferred)")
	fs.StringVarP(&pf.timeout, "timeout", "t", "", "PDF rendering timeout (e.g., 30s, 2m)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	cf.parsed(fs)
	return cf, pf, fs.Args(), nil
}

// verboseRequested reports whether args (program name, command, flags)
// turn on --verbose. Flags of other commands are ignored, so it can run
// before the command's own FlagSet.
func verboseRequested(args []string) bool {
	if len(args) < 3 {
		return false
	}
	f := &commonFlags{}
	fs := flag.NewFlagSet(args[1], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsAllowlist.UnknownFlags = true
	addCommonFlags(fs, f)
	_ = fs.Parse(args[2:])
	return f.verbose
}
