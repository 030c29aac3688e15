package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	symjaweb "github.com/bongani-m/symja-web"
	"github.com/bongani-m/symja-web/internal/fileutil"
)

// ErrNotSVG indicates a show file whose first element is not <svg>.
var ErrNotSVG = errors.New("not an SVG document")

// staticEngine treats expressions as MathML rendered ahead of time and only
// enforces the output size limit.
type staticEngine struct {
	maxOutputSize int
}

func (e staticEngine) RenderMathML(expr any) (string, bool) {
	markup, ok := expr.(string)
	if !ok {
		markup = fmt.Sprint(expr)
	}
	if len(markup) > e.maxOutputSize {
		return "", false
	}
	return markup, true
}

func (e staticEngine) MaxOutputSize() int { return e.maxOutputSize }

// svgFileRenderer copies an SVG file into the envelope. The show value is
// the file path. An XML prolog or doctype before the root is dropped.
type svgFileRenderer struct {
	stdin io.Reader
}

func (r svgFileRenderer) RenderSVG(show any, w io.Writer) error {
	path, ok := show.(string)
	if !ok {
		return fmt.Errorf("%w: expected file path, got %T", ErrNotSVG, show)
	}
	content, err := fileutil.ReadInput(path, r.stdin)
	if err != nil {
		return err
	}

	start, err := svgRootOffset(content)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	_, err = io.WriteString(w, strings.TrimSpace(content[start:]))
	return err
}

// svgRootOffset returns the byte offset of the first element, which must
// be <svg>.
func svgRootOffset(content string) (int, error) {
	z := html.NewTokenizer(strings.NewReader(content))
	offset := 0
	for {
		tt := z.Next()
		raw := len(z.Raw())
		switch tt {
		case html.ErrorToken:
			return 0, ErrNotSVG
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) != "svg" {
				return 0, fmt.Errorf("%w: root element <%s>", ErrNotSVG, name)
			}
			return offset, nil
		}
		offset += raw
	}
}

var (
	_ symjaweb.Engine          = staticEngine{}
	_ symjaweb.GraphicRenderer = svgFileRenderer{}
)
