package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	symjaweb "github.com/bongani-m/symja-web"
	"github.com/bongani-m/symja-web/internal/config"
	"github.com/bongani-m/symja-web/internal/fileutil"
	"github.com/bongani-m/symja-web/internal/hints"
	"github.com/bongani-m/symja-web/internal/preview"
	"github.com/bongani-m/symja-web/internal/snapshot"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrWriteOutput = errors.New("failed to write output")
)

// Command names.
const (
	cmdError   = "error"
	cmdSyntax  = "syntax"
	cmdScript  = "script"
	cmdShow    = "show"
	cmdResult  = "result"
	cmdPreview = "preview"
	cmdVersion = "version"
	cmdHelp    = "help"
)

const filePermissions = 0o644 // rw-r--r--

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	name, rest := args[1], args[2:]
	var err error
	switch name {
	case cmdHelp, "-h", "--help":
		topic := ""
		if len(rest) > 0 {
			topic = rest[0]
		}
		usageFor(topic)(env.Stdout)
		return ExitSuccess
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "symjaweb %s\n", Version)
		return ExitSuccess
	case cmdError, cmdSyntax:
		err = runMessage(name, rest, env)
	case cmdScript:
		err = runScript(rest, env)
	case cmdShow:
		err = runShow(rest, env)
	case cmdResult:
		err = runResult(rest, env)
	case cmdPreview:
		err = runPreview(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", name)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// hintFor picks an actionable hint for err, if any.
func hintFor(err error) string {
	var notFound *configNotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(config.SearchPaths(notFound.name))
	case errors.Is(err, snapshot.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, snapshot.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, preview.ErrInvalidPayload), errors.Is(err, preview.ErrNoResults):
		return hints.ForPayload()
	}
	return ""
}

// configNotFoundError remembers the config name that could not be resolved.
type configNotFoundError struct {
	name string
	err  error
}

func (e *configNotFoundError) Error() string { return e.err.Error() }
func (e *configNotFoundError) Unwrap() error { return e.err }

// loadSettings merges config file, environment and flags, in that order.
func loadSettings(cf *commonFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ)

	ec, err := loadEnvConfig(env.Environ)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	name := cf.config
	if name == "" {
		name = ec.ConfigPath
	}
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				err = &configNotFoundError{name: name, err: err}
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	ec.apply(cfg)
	if cf.lineSet {
		cfg.Envelope.Line = cf.line
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newBuilder(cfg *config.Config, env *Environment) *symjaweb.Builder {
	return symjaweb.New(
		symjaweb.WithLine(cfg.Envelope.Line),
		symjaweb.WithGraphicRenderer(svgFileRenderer{stdin: env.Stdin}),
	)
}

// singleArg returns the only positional argument.
func singleArg(name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: %s expects exactly one argument, got %d", ErrUsage, name, len(args))
	}
	return args[0], nil
}

// writeResponse prints the payload and, when verbose, the kind.
func writeResponse(env *Environment, resp symjaweb.Response, verbose bool) error {
	if verbose {
		fmt.Fprintf(env.Stderr, "kind: %s\n", resp.Kind)
	}
	if _, err := fmt.Fprintln(env.Stdout, resp.Payload); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// runMessage handles the error and syntax commands. A message of "-" is
// read from stdin.
func runMessage(name string, args []string, env *Environment) error {
	cf, pos, err := parseCommonFlags(name, args, env.Stderr)
	if err != nil {
		return err
	}
	msg, err := singleArg(name, pos)
	if err != nil {
		return err
	}
	if msg == fileutil.StdinName {
		if msg, err = fileutil.ReadInput(msg, env.Stdin); err != nil {
			return err
		}
		msg = strings.TrimRight(msg, "\r\n")
	}

	cfg, err := loadSettings(cf, env)
	if err != nil {
		return err
	}
	b := newBuilder(cfg, env)

	resp := b.ErrorEnvelope(msg)
	if name == cmdSyntax {
		resp = b.SyntaxErrorEnvelope(msg)
	}
	return writeResponse(env, resp, cf.verbose)
}

func runScript(args []string, env *Environment) error {
	cf, pos, err := parseCommonFlags(cmdScript, args, env.Stderr)
	if err != nil {
		return err
	}
	path, err := singleArg(cmdScript, pos)
	if err != nil {
		return err
	}
	script, err := fileutil.ReadInput(path, env.Stdin)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(cf, env)
	if err != nil {
		return err
	}
	return writeResponse(env, newBuilder(cfg, env).ScriptEnvelope(script), cf.verbose)
}

// runShow writes an error envelope when the graphic cannot be rendered and
// still reports the failure through the exit code.
func runShow(args []string, env *Environment) error {
	cf, pos, err := parseCommonFlags(cmdShow, args, env.Stderr)
	if err != nil {
		return err
	}
	path, err := singleArg(cmdShow, pos)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(cf, env)
	if err != nil {
		return err
	}
	b := newBuilder(cfg, env)

	resp, renderErr := b.ShowEnvelope(path)
	if err := writeResponse(env, b.RecoverEnvelope(resp, renderErr), cf.verbose); err != nil {
		return err
	}
	return renderErr
}

func runResult(args []string, env *Environment) error {
	cf, rf, pos, err := parseResultFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	path, err := singleArg(cmdResult, pos)
	if err != nil {
		return err
	}
	markup, err := fileutil.ReadInput(path, env.Stdin)
	if err != nil {
		return err
	}
	out, err := readOptional(rf.stdout, env)
	if err != nil {
		return err
	}
	errOut, err := readOptional(rf.stderr, env)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(cf, env)
	if err != nil {
		return err
	}
	if rf.maxOutputSize > 0 {
		cfg.Engine.MaxOutputSize = rf.maxOutputSize
	}

	engine := staticEngine{maxOutputSize: cfg.Engine.MaxOutputSize}
	resp := newBuilder(cfg, env).ResultEnvelope(engine, strings.TrimSpace(markup), out, errOut)
	if resp.Kind == symjaweb.KindError {
		fmt.Fprintf(env.Stderr, "warning: result exceeds %d bytes%s\n", engine.MaxOutputSize(), hints.ForMaxOutputSize())
	}
	return writeResponse(env, resp, cf.verbose)
}

// readOptional reads path, or returns "" when no path was given.
func readOptional(path string, env *Environment) (string, error) {
	if path == "" {
		return "", nil
	}
	return fileutil.ReadInput(path, env.Stdin)
}

func runPreview(args []string, env *Environment) error {
	cf, pf, pos, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	path, err := singleArg(cmdPreview, pos)
	if err != nil {
		return err
	}
	payload, err := fileutil.ReadInput(path, env.Stdin)
	if err != nil {
		return err
	}
	payload = strings.TrimSpace(payload)

	cfg, err := loadSettings(cf, env)
	if err != nil {
		return err
	}
	if pf.style != "" {
		cfg.Preview.Style = pf.style
	}
	if pf.timeout != "" {
		cfg.Preview.Timeout = pf.timeout
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	kind, err := resolveKind(pf.kind, payload)
	if err != nil {
		return err
	}

	renderer, err := preview.New(env.AssetLoader, cfg.Preview.Style)
	if err != nil {
		return err
	}

	timeout := cfg.PreviewTimeout()
	ctx, stop := interruptContext(context.Background())
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page, err := renderer.Render(ctx, string(kind), payload)
	if err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}

	if cf.verbose {
		fmt.Fprintf(env.Stderr, "kind: %s, style: %s, timeout: %s\n", kind, cfg.Preview.Style, timeout)
	}

	switch {
	case pf.output == "":
		if _, err := io.WriteString(env.Stdout, page); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	case strings.EqualFold(filepath.Ext(pf.output), ".pdf"):
		return writePDF(ctx, env, timeout, page, pf.output)
	default:
		return writeFile(pf.output, []byte(page))
	}
}

// resolveKind validates an explicit kind or infers it from the payload: a
// null result means an error envelope.
func resolveKind(explicit, payload string) (symjaweb.Kind, error) {
	switch symjaweb.Kind(explicit) {
	case symjaweb.KindError, symjaweb.KindMathML:
		return symjaweb.Kind(explicit), nil
	case "":
	default:
		return "", fmt.Errorf("%w: unknown kind %q (must be error or mathml)", ErrUsage, explicit)
	}

	summary, err := preview.Summarize(payload)
	if err != nil {
		return "", err
	}
	if summary.HasResult {
		return symjaweb.KindMathML, nil
	}
	return symjaweb.KindError, nil
}

func writePDF(ctx context.Context, env *Environment, timeout time.Duration, page, output string) error {
	conv := env.NewPDF(timeout)
	defer conv.Close()

	pdf, err := conv.ToPDF(ctx, page)
	if err != nil {
		return fmt.Errorf("printing preview: %w", err)
	}
	return writeFile(output, pdf)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, filePermissions); err != nil { // #nosec G306 -- output is meant to be shared
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}
