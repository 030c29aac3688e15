// Package mathml builds the small presentation-MathML fragments that wrap
// text and graphics inside result envelopes.
package mathml

import "strings"

// Fragment wrappers.
const (
	TextOpen   = "<math><mrow><mtext>"
	TextClose  = "</mtext></mrow></math>"
	RowOpen    = "<math><mrow>"
	RowClose   = "</mrow></math>"
	TableOpen  = "<math><mtable><mtr><mtd>"
	TableClose = "</mtd></mtr></mtable></math>"
)

// Line layout for monospaced blocks.
const (
	CourierOpen  = `<mtext mathvariant="courier">`
	CourierClose = "</mtext>"
	LineBreak    = "<mspace linebreak='newline' />"
	NBSP         = "&nbsp;"
)

// Text wraps s in a single mtext element. s is inserted as is; callers
// escape it first when it is plain text.
func Text(s string) string {
	return TextOpen + s + TextClose
}

// CourierLines renders s as one monospaced mtext per line, joined by
// explicit line breaks. Spaces become non-breaking entities so a caret
// under a column stays aligned. s must already be escaped.
//
// A trailing newline yields a trailing empty line, so n newlines always
// produce n line breaks.
func CourierLines(s string) string {
	s = strings.ReplaceAll(s, " ", NBSP)
	lines := strings.Split(s, "\n")

	var b strings.Builder
	b.Grow(len(s) + len(RowOpen) + len(RowClose) + len(lines)*(len(CourierOpen)+len(CourierClose)+len(LineBreak)))
	b.WriteString(RowOpen)
	for i, line := range lines {
		if i > 0 {
			b.WriteString(LineBreak)
		}
		b.WriteString(CourierOpen)
		b.WriteString(line)
		b.WriteString(CourierClose)
	}
	b.WriteString(RowClose)
	return b.String()
}
