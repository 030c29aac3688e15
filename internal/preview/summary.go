package preview

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/bongani-m/symja-web/internal/jsonutil"
)

// Sentinel errors for payload inspection.
var (
	ErrInvalidPayload = errors.New("payload is not valid JSON")
	ErrNoResults      = errors.New("payload has no results")
)

// Summary is the first result line of a payload, as a client sees it.
type Summary struct {
	Line      int64
	HasLine   bool
	Result    string
	HasResult bool
	Out       []Message
}

// Message is one out entry.
type Message struct {
	Prefix string
	Tag    string
	Symbol string
	Text   string
}

// Summarize reads the first result line from a JSON payload.
func Summarize(payload string) (*Summary, error) {
	if !jsonutil.Valid(payload) {
		return nil, ErrInvalidPayload
	}

	line := gjson.Get(payload, "results.0")
	if !line.Exists() {
		return nil, ErrNoResults
	}
	if !line.IsObject() {
		return nil, fmt.Errorf("%w: results[0] is %s", ErrInvalidPayload, line.Type)
	}

	s := &Summary{}
	if l := line.Get("line"); l.Type == gjson.Number {
		s.Line, s.HasLine = l.Int(), true
	}
	if r := line.Get("result"); r.Type == gjson.String {
		s.Result, s.HasResult = r.String(), true
	}
	line.Get("out").ForEach(func(_, m gjson.Result) bool {
		s.Out = append(s.Out, Message{
			Prefix: m.Get("prefix").String(),
			Tag:    m.Get("tag").String(),
			Symbol: m.Get("symbol").String(),
			Text:   m.Get("text").String(),
		})
		return true
	})
	return s, nil
}
