package symjaweb

import (
	"io"

	"golang.org/x/net/html"
)

// Kind tags a response payload for the client.
type Kind string

// Response kinds.
const (
	KindError  Kind = "error"
	KindMathML Kind = "mathml"
)

// Out message prefixes, tags and symbols.
const (
	PrefixError  = "Error"
	PrefixOutput = "Output"

	TagSyntax     = "syntax"
	TagEvaluation = "evaluation"

	SymbolGeneral = "General"
	SymbolSyntax  = "Syntax"
)

// DefaultLine is the line number reported for successful results.
// Evaluation does not track input lines yet, so every result carries it.
const DefaultLine = 21

// Envelope is the top-level JSON object sent to the client.
type Envelope struct {
	Results []ResultLine `json:"results"`
}

// ResultLine is one evaluated input line. Line and Result encode as null
// when nil.
type ResultLine struct {
	Line   *int         `json:"line"`
	Result *string      `json:"result"`
	Out    []OutMessage `json:"out"`
}

// OutMessage is an in-band message displayed beneath a result.
// Text is a MathML fragment, never raw text.
type OutMessage struct {
	Prefix  string `json:"prefix"`
	Message bool   `json:"message"`
	Tag     string `json:"tag"`
	Symbol  string `json:"symbol"`
	Text    string `json:"text"`
}

// Response pairs a payload with its kind.
type Response struct {
	Kind    Kind
	Payload string
}

// Strings returns the response as a (kind, payload) pair.
func (r Response) Strings() [2]string {
	return [2]string{string(r.Kind), r.Payload}
}

// Engine renders evaluated expressions to MathML.
type Engine interface {
	// RenderMathML returns the markup for expr. ok is false when the
	// output would exceed MaxOutputSize.
	RenderMathML(expr any) (markup string, ok bool)

	// MaxOutputSize reports the configured output limit.
	MaxOutputSize() int
}

// GraphicRenderer writes inline SVG for a displayable expression.
type GraphicRenderer interface {
	RenderSVG(show any, w io.Writer) error
}

// Escaper makes plain text safe to embed in markup.
type Escaper interface {
	EscapeText(s string) string
}

// EscaperFunc adapts a function to the Escaper interface.
type EscaperFunc func(string) string

// EscapeText calls f(s).
func (f EscaperFunc) EscapeText(s string) string { return f(s) }

// HTMLEscaper escapes <, >, &, ' and " as named or numeric entities. Unlike
// a plain HTML4 escaper it also writes ' as &#39; and a carriage return as
// &#13;.
var HTMLEscaper Escaper = EscaperFunc(html.EscapeString)

// Codec serializes envelopes.
type Codec interface {
	Encode(v any) (string, error)
}
