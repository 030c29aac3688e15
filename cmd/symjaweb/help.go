package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: symjaweb <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  error      Envelope for a plain error message")
	fmt.Fprintln(w, "  syntax     Envelope for a multi-line syntax error")
	fmt.Fprintln(w, "  script     Envelope passing a rendered script through")
	fmt.Fprintln(w, "  show       Envelope embedding an SVG graphic")
	fmt.Fprintln(w, "  result     Envelope for rendered MathML and captured streams")
	fmt.Fprintln(w, "  preview    Render a payload to HTML or PDF")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'symjaweb help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -v, --verbose             Report kind and settings on stderr")
	fmt.Fprintln(w, "      --line <n>            Line number reported for results")
}

func printMessageUsage(name, what string) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintf(w, "Usage: symjaweb %s <message|-> [flags]\n", name)
		fmt.Fprintln(w)
		fmt.Fprintln(w, what)
		fmt.Fprintln(w, "Use - to read the message from stdin.")
		fmt.Fprintln(w)
		printCommonFlags(w)
	}
}

func printScriptUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: symjaweb script <file|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Wrap an already rendered script as the result. The script is not validated.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: symjaweb show <file.svg> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Embed an SVG graphic in a MathML table. If the file is not SVG an")
	fmt.Fprintln(w, "error envelope is written and the command exits 1.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

func printResultUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: symjaweb result <mathml-file|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Wrap rendered MathML with the captured evaluation streams. Output over")
	fmt.Fprintln(w, "the size limit yields an error envelope.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Streams:")
	fmt.Fprintln(w, "      --stdout <file>         Captured evaluation output")
	fmt.Fprintln(w, "      --stderr <file>         Captured evaluation errors")
	fmt.Fprintln(w, "      --max-output-size <n>   MathML size limit in bytes")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: symjaweb preview <payload.json|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a payload as an HTML page, or a PDF when --output ends in .pdf.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html or .pdf file (default stdout)")
	fmt.Fprintln(w, "      --style <name>        Highlight style for the JSON listing")
	fmt.Fprintln(w, "      --kind <kind>         error or mathml (default inferred)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF rendering timeout")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the Chrome sandbox (containers)")
}

// usageFor returns the usage printer for a command.
func usageFor(name string) func(io.Writer) {
	switch name {
	case cmdError:
		return printMessageUsage(cmdError, "Build an error envelope. The message is escaped.")
	case cmdSyntax:
		return printMessageUsage(cmdSyntax, "Build a syntax error envelope with each line set in a monospaced block.")
	case cmdScript:
		return printScriptUsage
	case cmdShow:
		return printShowUsage
	case cmdResult:
		return printResultUsage
	case cmdPreview:
		return printPreviewUsage
	default:
		return printUsage
	}
}
