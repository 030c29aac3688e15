package preview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bongani-m/symja-web/internal/assets"
)

const (
	resultPayload = `{"results":[{"line":21,"result":"<math><mn>4</mn></math>","out":[` +
		`{"prefix":"Error","message":true,"tag":"evaluation","symbol":"General","text":"<math><mrow><mtext>warn</mtext></mrow></math>"},` +
		`{"prefix":"Output","message":true,"tag":"evaluation","symbol":"General","text":"<math><mrow><mtext>printed</mtext></mrow></math>"}]}]}`
	errorPayload = `{"results":[{"line":null,"result":null,"out":[` +
		`{"prefix":"Error","message":true,"tag":"syntax","symbol":"General","text":"<math><mrow><mtext>bad &lt;input&gt;</mtext></mrow></math>"}]}]}`
)

// stubLoader serves fixed assets.
type stubLoader struct {
	style    string
	template string
	err      error
}

func (s *stubLoader) LoadStyle(string) (string, error)    { return s.style, s.err }
func (s *stubLoader) LoadTemplate(string) (string, error) { return s.template, s.err }

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := New(assets.NewEmbeddedLoader(), "github")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := New(assets.NewEmbeddedLoader(), "no-such-style")
		if !errors.Is(err, ErrUnknownStyle) {
			t.Errorf("error = %v, want ErrUnknownStyle", err)
		}
	})

	t.Run("loader failure", func(t *testing.T) {
		t.Parallel()

		_, err := New(&stubLoader{err: assets.ErrStyleNotFound}, "github")
		if !errors.Is(err, assets.ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("broken template", func(t *testing.T) {
		t.Parallel()

		_, err := New(&stubLoader{template: "{{.Body"}, "github")
		if err == nil {
			t.Fatal("expected template parse error")
		}
	})
}

func TestRender_Result(t *testing.T) {
	t.Parallel()

	page, err := newTestRenderer(t).Render(context.Background(), "mathml", resultPayload)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	wants := []string{
		"<!DOCTYPE html>",
		"<title>symja-web preview</title>",
		"<code>mathml</code>",
		`<div class="result"><math><mn>4</mn></math></div>`,
		`<div class="out out-Error"><math><mrow><mtext>warn</mtext></mrow></math></div>`,
		`<div class="out out-Output"><math><mrow><mtext>printed</mtext></mrow></math></div>`,
		`class="chroma"`,
	}
	for _, want := range wants {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, placeholderPrefix) {
		t.Error("page still contains a placeholder")
	}
	if strings.Index(page, "out-Error") > strings.Index(page, "out-Output") {
		t.Error("error message rendered after output message")
	}
}

func TestRender_Error(t *testing.T) {
	t.Parallel()

	page, err := newTestRenderer(t).Render(context.Background(), "error", errorPayload)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(page, `class="result"`) {
		t.Error("error payload rendered a result block")
	}
	if !strings.Contains(page, "bad &lt;input&gt;") {
		t.Error("escaped message not carried into page")
	}
}

func TestRender_InvalidPayload(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "malformed", payload: `{"results":[`, wantErr: ErrInvalidPayload},
		{name: "no results", payload: `{"results":[]}`, wantErr: ErrNoResults},
		{name: "result not object", payload: `{"results":[1]}`, wantErr: ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := r.Render(context.Background(), "error", tt.payload)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRender_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRenderer(t).Render(ctx, "mathml", resultPayload)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRender_HostilePrefix(t *testing.T) {
	t.Parallel()

	payload := `{"results":[{"line":null,"result":null,"out":[` +
		`{"prefix":"Error\" onclick=\"x()","message":true,"tag":"syntax","symbol":"General","text":"<math></math>"}]}]}`

	page, err := newTestRenderer(t).Render(context.Background(), "error", payload)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(page, `<div class="out out-Erroronclickx"><math></math></div>`) {
		t.Errorf("prefix not reduced to a class token:\n%s", page)
	}
	if strings.Contains(page, `onclick="x()"`) {
		t.Error("prefix broke out of the class attribute")
	}
}

func TestClassToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Error", want: "Error"},
		{in: "Output", want: "Output"},
		{in: `a"b`, want: "ab"},
		{in: "with space", want: "withspace"},
		{in: "x-y_z9", want: "x-y_z9"},
		{in: "<script>", want: "script"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := classToken(tt.in); got != tt.want {
				t.Errorf("classToken(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		code      string
		wantFence string
	}{
		{name: "plain", code: `{"a":1}`, wantFence: "```"},
		{name: "triple backticks inside", code: "```x```", wantFence: "````"},
		{name: "long run", code: "`````", wantFence: "``````"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var b strings.Builder
			writeFence(&b, "json", tt.code)
			got := b.String()
			if !strings.HasPrefix(got, tt.wantFence+"json\n") {
				t.Errorf("fence opening = %q, want %q", got, tt.wantFence+"json")
			}
			if !strings.HasSuffix(got, "\n"+tt.wantFence+"\n") {
				t.Errorf("fence closing wrong: %q", got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s, err := Summarize(resultPayload)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if !s.HasLine || s.Line != 21 {
		t.Errorf("line = %d (%v), want 21", s.Line, s.HasLine)
	}
	if !s.HasResult || s.Result != "<math><mn>4</mn></math>" {
		t.Errorf("result = %q (%v)", s.Result, s.HasResult)
	}
	if len(s.Out) != 2 || s.Out[0].Prefix != "Error" || s.Out[1].Prefix != "Output" {
		t.Errorf("out = %+v", s.Out)
	}

	s, err = Summarize(errorPayload)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if s.HasLine || s.HasResult {
		t.Errorf("null line/result reported as set: %+v", s)
	}
	if s.Out[0].Symbol != "General" || s.Out[0].Tag != "syntax" {
		t.Errorf("out[0] = %+v", s.Out[0])
	}
}
