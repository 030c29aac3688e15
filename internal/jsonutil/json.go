// Package jsonutil holds the shared JSON codec used to serialize envelopes.
// The codec carries no per-call state and is safe for concurrent use.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Codec encodes values without HTML escaping so embedded markup such as
// "<math>" stays literal in the payload.
type Codec struct{}

// Default is the process-wide codec.
var Default = Codec{}

// Encode serializes v to a compact JSON string without a trailing newline.
func (Codec) Encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("jsonutil: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Valid reports whether payload is well-formed JSON. It scans without
// building values, so it is cheap enough to run before any field lookup.
func Valid(payload string) bool {
	return gjson.Valid(payload)
}
