package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dcott7/stormatter/internal/token"
)

// ErrUnexpectedEnd is returned when a stream is advanced past its last token.
var ErrUnexpectedEnd = errors.New("unexpected end of token stream")

// TokenStream iterates a materialized token list with check/expect/match
// helpers. Lookahead past either end returns a synthetic EOF token rather
// than failing; only Advance and Expect report errors.
type TokenStream struct {
	tokens []token.Token
	src    []byte
	index  int
}

// NewTokenStream creates a stream over tokens, with src used to recover
// token text.
func NewTokenStream(tokens []token.Token, src []byte) *TokenStream {
	return &TokenStream{tokens: tokens, src: src}
}

// EOF reports whether every token has been consumed.
func (s *TokenStream) EOF() bool {
	return s.index >= len(s.tokens)
}

// Peek returns the token at the given offset from the cursor without
// consuming it. Out-of-range offsets yield a synthetic EOF token.
func (s *TokenStream) Peek(offset int) token.Token {
	idx := s.index + offset
	if idx < 0 || idx >= len(s.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return s.tokens[idx]
}

// Text returns the source text of tok.
func (s *TokenStream) Text(tok token.Token) string {
	return tok.Slice(s.src)
}

// Advance consumes and returns the next token.
func (s *TokenStream) Advance() (token.Token, error) {
	if s.EOF() {
		return token.Token{Kind: token.EOF}, ErrUnexpectedEnd
	}
	tok := s.tokens[s.index]
	s.index++
	return tok, nil
}

// Check reports whether the next token has the given kind.
func (s *TokenStream) Check(kind token.Kind) bool {
	return s.Peek(0).Kind == kind
}

// CheckText reports whether the next token has the given kind and exact text.
func (s *TokenStream) CheckText(kind token.Kind, text string) bool {
	tok := s.Peek(0)
	return tok.Kind == kind && s.Text(tok) == text
}

// CheckTextFold is CheckText with ASCII case-insensitive text comparison.
func (s *TokenStream) CheckTextFold(kind token.Kind, text string) bool {
	tok := s.Peek(0)
	return tok.Kind == kind && strings.EqualFold(s.Text(tok), text)
}

// Expect consumes the next token if it has the given kind, and errors
// otherwise.
func (s *TokenStream) Expect(kind token.Kind) (token.Token, error) {
	if !s.Check(kind) {
		got := s.Peek(0)
		return token.Token{}, fmt.Errorf("expected %s, got %s %q", kind, got.Kind, s.Text(got))
	}
	return s.Advance()
}

// ExpectText consumes the next token if it has the given kind and text, and
// errors otherwise.
func (s *TokenStream) ExpectText(kind token.Kind, text string) (token.Token, error) {
	if !s.CheckText(kind, text) {
		got := s.Peek(0)
		return token.Token{}, fmt.Errorf("expected %s %q, got %s %q", kind, text, got.Kind, s.Text(got))
	}
	return s.Advance()
}

// Match consumes the next token if it has the given kind.
func (s *TokenStream) Match(kind token.Kind) (token.Token, bool) {
	if !s.Check(kind) {
		return token.Token{}, false
	}
	tok, err := s.Advance()
	if err != nil {
		return token.Token{}, false
	}
	return tok, true
}
