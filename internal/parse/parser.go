// Package parse provides the shared token-stream plumbing used by every
// component that consumes the STORM lexer: cached tokenization, token
// filtering, source reconstruction, and a TokenStream with check/expect
// helpers. Concrete parsers compose Base rather than inheriting from it.
package parse

import (
	"strings"

	"github.com/dcott7/stormatter/internal/lexer"
	"github.com/dcott7/stormatter/internal/source"
	"github.com/dcott7/stormatter/internal/token"
)

// Tokenizer is the capability set shared by token-level tools.
type Tokenizer interface {
	Tokenize() []token.Token
	Filter(keep func(token.Token) bool) []token.Token
	TokensToSource(tokens []token.Token) string
	Stream(tokens []token.Token) *TokenStream
}

// Base implements Tokenizer over a single source file. The token list is
// materialized once and cached; Refresh retokenizes.
type Base struct {
	File   *source.File
	tokens []token.Token
	cached bool
}

// NewBase creates a Base over the given file.
func NewBase(file *source.File) *Base {
	return &Base{File: file}
}

// Tokenize returns the cached token list, lexing the file on first use.
func (b *Base) Tokenize() []token.Token {
	if !b.cached {
		b.tokens = lexer.Tokenize(b.File)
		b.cached = true
	}
	return b.tokens
}

// Refresh discards the cache and retokenizes.
func (b *Base) Refresh() []token.Token {
	b.cached = false
	return b.Tokenize()
}

// Filter returns the tokens for which keep returns true.
func (b *Base) Filter(keep func(token.Token) bool) []token.Token {
	all := b.Tokenize()
	out := make([]token.Token, 0, len(all))
	for _, tok := range all {
		if keep(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// WithoutComments returns the tokens with line and block comments removed.
func (b *Base) WithoutComments() []token.Token {
	return b.Filter(func(t token.Token) bool { return !t.IsComment() })
}

// WithoutWhitespace returns the tokens with whitespace removed.
func (b *Base) WithoutWhitespace() []token.Token {
	return b.Filter(func(t token.Token) bool { return t.Kind != token.Whitespace })
}

// WithoutTrivia returns the tokens with comments and whitespace removed.
func (b *Base) WithoutTrivia() []token.Token {
	return b.Filter(func(t token.Token) bool { return !t.IsTrivia() })
}

// TokensToSource reconstructs source text from a token list. Passing the
// unfiltered list reproduces the input exactly.
func (b *Base) TokensToSource(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Slice(b.File.Content))
	}
	return sb.String()
}

// Stream creates a TokenStream over tokens, or over the full cached token
// list when tokens is nil.
func (b *Base) Stream(tokens []token.Token) *TokenStream {
	if tokens == nil {
		tokens = b.Tokenize()
	}
	return NewTokenStream(tokens, b.File.Content)
}
