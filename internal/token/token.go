package token

import (
	"github.com/dcott7/stormatter/internal/source"
)

// Token is a classified, positioned slice of source text.
type Token struct {
	Kind Kind
	Span source.Span
}

// Slice returns the token's text from src. Spans outside src resolve to an
// empty string rather than panicking.
func (t Token) Slice(src []byte) string {
	if t.Span.Start > t.Span.End {
		return ""
	}
	if int(t.Span.End) > len(src) || int(t.Span.Start) >= len(src) {
		return ""
	}
	return string(src[t.Span.Start:t.Span.End])
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == BlockComment
}

// IsTrivia reports whether the token carries no semantic content.
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace || t.IsComment()
}
