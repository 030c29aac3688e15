package symjaweb

import "github.com/bongani-m/symja-web/internal/jsonutil"

// Builder assembles response envelopes.
type Builder struct {
	codec   Codec
	escaper Escaper
	graphic GraphicRenderer
	line    int
}

// Option configures a Builder.
type Option func(*Builder)

// New creates a Builder with the shared JSON codec and HTML escaping.
func New(opts ...Option) *Builder {
	b := &Builder{
		codec:   jsonutil.Default,
		escaper: HTMLEscaper,
		line:    DefaultLine,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithCodec replaces the JSON codec.
func WithCodec(c Codec) Option {
	return func(b *Builder) {
		if c != nil {
			b.codec = c
		}
	}
}

// WithEscaper replaces the text escaper used by the error envelopes.
func WithEscaper(e Escaper) Option {
	return func(b *Builder) {
		if e != nil {
			b.escaper = e
		}
	}
}

// WithGraphicRenderer sets the renderer used by ShowEnvelope.
func WithGraphicRenderer(r GraphicRenderer) Option {
	return func(b *Builder) {
		b.graphic = r
	}
}

// WithLine sets the line number reported for successful results.
// Panics if n < 0 (programmer error).
func WithLine(n int) Option {
	if n < 0 {
		panic("symjaweb: WithLine requires a non-negative line")
	}
	return func(b *Builder) {
		b.line = n
	}
}
