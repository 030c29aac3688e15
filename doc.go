// Package symjaweb assembles the JSON envelopes a web client receives after
// a symbolic-math evaluation.
//
// # Quick Start
//
// Create a builder once at startup and share it between requests:
//
//	b := symjaweb.New(
//	    symjaweb.WithGraphicRenderer(svgRenderer),
//	)
//
//	resp := b.ResultEnvelope(engine, expr, stdout.String(), stderr.String())
//	w.Write([]byte(resp.Payload))
//
// Every builder returns a Response: a kind ("error" or "mathml") paired with
// the serialized payload.
//
// # Payload Shape
//
//	{ "results": [ { "line": 21, "result": "<math>…</math>",
//	                 "out": [ { "prefix": "Error", "message": true,
//	                            "tag": "evaluation", "symbol": "General",
//	                            "text": "<math>…</math>" } ] } ] }
//
// There is always exactly one entry in "results". "line" and "result" are
// null in error envelopes. "text" is always a MathML fragment.
//
// # Collaborators
//
// Rendering is delegated. An Engine turns an evaluated expression into
// MathML and reports its output size limit. A GraphicRenderer writes SVG for
// a displayable expression. An Escaper makes plain text safe to embed in
// markup; the default escapes the HTML special characters.
//
// # Concurrency
//
// A Builder is immutable after New returns. It may be used from any number
// of goroutines as long as the collaborators it holds are safe for
// concurrent use.
package symjaweb
