// Package preview renders a response payload as a standalone HTML page for
// debugging. MathML fragments are shown as the browser would display them,
// next to the highlighted JSON.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/tidwall/pretty"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/bongani-m/symja-web/internal/assets"
)

// Sentinel errors for preview rendering.
var (
	ErrUnknownStyle   = errors.New("unknown highlight style")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrTemplateRender = errors.New("preview template rendering failed")
)

// placeholderPrefix marks where a MathML fragment is spliced in after
// Goldmark has run. Goldmark never sees the fragments themselves.
const placeholderPrefix = "SYMJAWEBFRAGMENT"

const pageTitle = "symja-web preview"

// Renderer converts payloads to HTML pages. Safe for concurrent use.
type Renderer struct {
	md           goldmark.Markdown
	tmpl         *template.Template
	css          string
	highlightCSS string
}

// New creates a Renderer using the given chroma style for the JSON listing.
func New(loader assets.AssetLoader, style string) (*Renderer, error) {
	chromaStyle := styles.Get(style)
	if chromaStyle == styles.Fallback && style != styles.Fallback.Name {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	css, err := loader.LoadStyle(assets.PreviewStyle)
	if err != nil {
		return nil, err
	}
	page, err := loader.LoadTemplate(assets.PreviewTemplate)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("preview").Parse(page)
	if err != nil {
		return nil, fmt.Errorf("parsing preview template: %w", err)
	}

	highlightCSS, err := buildHighlightCSS(chromaStyle)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	return &Renderer{md: md, tmpl: tmpl, css: css, highlightCSS: highlightCSS}, nil
}

func buildHighlightCSS(style *chroma.Style) (string, error) {
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// Render returns an HTML page describing a payload of the given kind.
// Goldmark does not support context, so conversion runs in a goroutine and
// Render returns early on cancellation.
func (r *Renderer) Render(ctx context.Context, kind, payload string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	summary, err := Summarize(payload)
	if err != nil {
		return "", err
	}
	markdown, fragments := buildMarkdown(kind, payload, summary)

	type result struct {
		body string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{body: spliceFragments(buf.String(), fragments)}
	}()

	var body string
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		body = res.body
	}

	// #nosec G203 -- CSS is embedded or generated by chroma; the body is
	// Goldmark output plus fragments from our own payload.
	var page bytes.Buffer
	err = r.tmpl.Execute(&page, struct {
		Title        string
		CSS          template.CSS
		HighlightCSS template.CSS
		Body         template.HTML
	}{
		Title:        pageTitle,
		CSS:          template.CSS(r.css),
		HighlightCSS: template.CSS(r.highlightCSS),
		Body:         template.HTML(body),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return page.String(), nil
}

// buildMarkdown lays out the summary as Markdown. MathML fragments are
// replaced by placeholder paragraphs and returned in placeholder order.
func buildMarkdown(kind, payload string, s *Summary) (string, []fragment) {
	var (
		b         strings.Builder
		fragments []fragment
	)
	addFragment := func(class, markup string) {
		id := placeholderPrefix + strconv.Itoa(len(fragments))
		fragments = append(fragments, fragment{id: id, class: class, markup: markup})
		b.WriteString(id + "\n\n")
	}

	fmt.Fprintf(&b, "# Response `%s`\n\n", kind)

	b.WriteString("| line | result | messages |\n|---|---|---|\n")
	line := "null"
	if s.HasLine {
		line = strconv.FormatInt(s.Line, 10)
	}
	result := "null"
	if s.HasResult {
		result = strconv.Itoa(len(s.Result)) + " bytes"
	}
	fmt.Fprintf(&b, "| %s | %s | %d |\n\n", line, result, len(s.Out))

	if s.HasResult {
		b.WriteString("## Result\n\n")
		addFragment("result", s.Result)
	}

	if len(s.Out) > 0 {
		b.WriteString("## Messages\n\n")
		for _, m := range s.Out {
			fmt.Fprintf(&b, "### %s\n\n`%s` / `%s`\n\n", m.Prefix, m.Tag, m.Symbol)
			addFragment("out out-"+classToken(m.Prefix), m.Text)
		}
	}

	b.WriteString("## Payload\n\n")
	writeFence(&b, "json", string(pretty.Pretty([]byte(payload))))

	return b.String(), fragments
}

// writeFence writes a fenced code block whose fence is longer than any
// backtick run in code.
func writeFence(b *strings.Builder, lang, code string) {
	longest, run := 0, 0
	for _, c := range code {
		if c == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", max(3, longest+1))

	b.WriteString(fence + lang + "\n")
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence + "\n")
}

type fragment struct {
	id     string
	class  string
	markup string
}

// classToken keeps the ASCII letters, digits, '-' and '_' of s so payload
// text can name a CSS class without breaking out of the attribute.
func classToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, s)
}

// spliceFragments swaps each placeholder paragraph for its fragment.
func spliceFragments(body string, fragments []fragment) string {
	for _, f := range fragments {
		body = strings.Replace(body,
			"<p>"+f.id+"</p>",
			`<div class="`+f.class+`">`+f.markup+"</div>", 1)
	}
	return body
}
