// Package yamlutil wraps YAML decoding so config loading does not depend on
// the YAML library directly.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps config documents at 64KB.
var MaxInputSize int64 = 64 << 10

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Decode reads one YAML document from r into v. Unknown fields are
// rejected when strict is true.
func Decode(r io.Reader, v any, strict bool) error {
	if v == nil {
		return ErrNilDestination
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading input: %w", err)
	}
	if int64(len(data)) > MaxInputSize {
		return fmt.Errorf("%w: max %d bytes", ErrInputTooLarge, MaxInputSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyInput
	}

	var opts []yaml.DecodeOption
	if strict {
		opts = append(opts, yaml.Strict())
	}
	if err := yaml.NewDecoder(bytes.NewReader(data), opts...).Decode(v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode renders v as YAML.
func Encode(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
