package lexer

import (
	"github.com/dcott7/stormatter/internal/source"
	"github.com/dcott7/stormatter/internal/token"
)

// Lexer converts a source file into a sequence of tokens whose spans exactly
// cover the file with no gaps or overlaps. Every byte is claimed by some
// token: unterminated strings and block comments run to end of input, and
// unrecognized bytes become single-byte punctuators. A Lexer advances
// monotonically and is restartable only by constructing a new one over the
// same file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	prev   Mark // start of the token currently being scanned
}

// New creates a lexer at the start of the file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		prev:   0,
	}
}

// Next returns the next token, or ok=false once the input is exhausted.
// No EOF sentinel is emitted by iteration itself.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	if lx.cursor.EOF() {
		return token.Token{}, false
	}

	if b0, b1, ok2 := lx.cursor.Peek2(); ok2 && b0 == '/' {
		switch b1 {
		case '/':
			return lx.scanLineComment(), true
		case '*':
			return lx.scanBlockComment(), true
		}
	}

	b := lx.cursor.Peek()
	switch {
	case isSpace(b):
		return lx.scanWhitespace(), true
	case isIdentStart(b):
		return lx.scanIdent(), true
	case isDec(b):
		return lx.scanNumber(), true
	case b == '"':
		return lx.scanString(), true
	default:
		// Fixed punctuator set and the catch-all for anything else both
		// consume exactly one byte.
		lx.cursor.Bump()
		return lx.make(token.Punct), true
	}
}

// make builds a token spanning from the previous token boundary to the
// current cursor position, then advances the boundary.
func (lx *Lexer) make(kind token.Kind) token.Token {
	tok := token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(lx.prev),
	}
	lx.prev = lx.cursor.Mark()
	return tok
}

func (lx *Lexer) scanWhitespace() token.Token {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.make(token.Whitespace)
}

func (lx *Lexer) scanIdent() token.Token {
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.make(token.Ident)
}

// scanNumber consumes a run of decimal digits. Signs, decimal points, and
// exponents are not part of the token: "-1.5" lexes as Punct, IntConst,
// Punct, IntConst.
func (lx *Lexer) scanNumber() token.Token {
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.make(token.IntConst)
}

// scanString consumes through the closing quote. There is no escape
// handling, so a backslash before a quote still terminates the string.
// A missing closing quote consumes to end of input.
func (lx *Lexer) scanString() token.Token {
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() && lx.cursor.Peek() != '"' {
		lx.cursor.Bump()
	}
	lx.cursor.Eat('"')
	return lx.make(token.String)
}

// scanLineComment consumes through (but not including) the line terminator.
func (lx *Lexer) scanLineComment() token.Token {
	lx.cursor.Bump()
	lx.cursor.Bump() // //
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.make(token.LineComment)
}

// scanBlockComment consumes through the closing delimiter, or to end of
// input when the comment is unterminated.
func (lx *Lexer) scanBlockComment() token.Token {
	lx.cursor.Bump()
	lx.cursor.Bump() // /*
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			break
		}
		lx.cursor.Bump()
	}
	return lx.make(token.BlockComment)
}

// Tokenize materializes the full token sequence for a file. No EOF sentinel
// is appended; consumers that need one synthesize it on out-of-range lookups.
func Tokenize(file *source.File) []token.Token {
	lx := New(file)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
