// Package format re-emits a STORM token stream with normalized whitespace
// and consistent indentation.
//
// The formatter is a single forward pass over a materialized token list.
// Indentation is driven by bracket nesting, and optionally by
// "begin NAME" / "end NAME" section blocks. Non-whitespace token text is
// emitted verbatim, so the output is semantically equivalent to the input.
// Runs of blank lines collapse to a single newline; this fidelity loss is
// deliberate.
//
// The pass is total: every token kind has a defined emission behavior and
// no input content can make it fail.
package format
