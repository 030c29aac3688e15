package symjaweb

import (
	"fmt"
	"strings"

	"github.com/bongani-m/symja-web/internal/mathml"
)

// ErrorEnvelope reports a plain-text error message. The message is escaped
// before it is embedded.
func (b *Builder) ErrorEnvelope(msg string) Response {
	text := mathml.Text(b.escaper.EscapeText(msg))
	return b.errorResponse(SymbolGeneral, text)
}

// SyntaxErrorEnvelope reports a multi-line parser error. Each line is set in
// a monospaced block with spaces preserved so a caret line still points at
// the offending column. CRLF line endings are treated as LF.
func (b *Builder) SyntaxErrorEnvelope(msg string) Response {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	text := mathml.CourierLines(b.escaper.EscapeText(msg))
	return b.errorResponse(SymbolSyntax, text)
}

// ScriptEnvelope passes a pre-rendered script through as the result.
// The script is trusted and not validated.
func (b *Builder) ScriptEnvelope(script string) Response {
	return b.mathMLResponse(script, nil)
}

// ShowEnvelope renders a displayable expression to SVG inside a MathML table.
// Renderer failures are returned as errors wrapping ErrGraphicRender; use
// RecoverEnvelope to turn them into an error envelope.
func (b *Builder) ShowEnvelope(show any) (Response, error) {
	if b.graphic == nil {
		return Response{}, ErrNoGraphicRenderer
	}

	var sb strings.Builder
	sb.WriteString(mathml.TableOpen)
	if err := b.graphic.RenderSVG(show, &sb); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrGraphicRender, err)
	}
	sb.WriteString(mathml.TableClose)

	return b.mathMLResponse(sb.String(), nil), nil
}

// ResultEnvelope reports an evaluation result together with the text the
// evaluation wrote to its output and error streams. The stream contents are
// embedded without escaping.
//
// If the engine cannot render expr within its size limit, an error envelope
// naming the limit is returned instead.
func (b *Builder) ResultEnvelope(engine Engine, expr any, out, errOut string) Response {
	markup, ok := engine.RenderMathML(expr)
	if !ok {
		return b.ErrorEnvelope(fmt.Sprintf("Max. output size exceeded %d", engine.MaxOutputSize()))
	}

	var msgs []OutMessage
	if errOut != "" {
		msgs = append(msgs, evaluationMessage(PrefixError, errOut))
	}
	if out != "" {
		msgs = append(msgs, evaluationMessage(PrefixOutput, out))
	}
	return b.mathMLResponse(markup, msgs)
}

// RecoverEnvelope returns resp, or an error envelope for err when it is
// non-nil.
func (b *Builder) RecoverEnvelope(resp Response, err error) Response {
	if err != nil {
		return b.ErrorEnvelope(err.Error())
	}
	return resp
}

func evaluationMessage(prefix, text string) OutMessage {
	return OutMessage{
		Prefix:  prefix,
		Message: true,
		Tag:     TagEvaluation,
		Symbol:  SymbolGeneral,
		Text:    mathml.Text(text),
	}
}

func (b *Builder) errorResponse(symbol, text string) Response {
	line := ResultLine{
		Out: []OutMessage{{
			Prefix:  PrefixError,
			Message: true,
			Tag:     TagSyntax,
			Symbol:  symbol,
			Text:    text,
		}},
	}
	return Response{Kind: KindError, Payload: b.encode(line)}
}

func (b *Builder) mathMLResponse(result string, msgs []OutMessage) Response {
	if msgs == nil {
		msgs = []OutMessage{}
	}
	n := b.line
	line := ResultLine{
		Line:   &n,
		Result: &result,
		Out:    msgs,
	}
	return Response{Kind: KindMathML, Payload: b.encode(line)}
}

// encode wraps line in an envelope. Envelopes hold only strings, ints and
// bools, so a codec failure is a programming error.
func (b *Builder) encode(line ResultLine) string {
	payload, err := b.codec.Encode(Envelope{Results: []ResultLine{line}})
	if err != nil {
		panic(fmt.Sprintf("symjaweb: encoding envelope: %v", err))
	}
	return payload
}
