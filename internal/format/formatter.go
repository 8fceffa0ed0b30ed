package format

import (
	"strings"

	"github.com/dcott7/stormatter/internal/lexer"
	"github.com/dcott7/stormatter/internal/source"
	"github.com/dcott7/stormatter/internal/token"
)

// Emitted is one (token kind, emitted text) output pair. Concatenating the
// Text of every pair yields the formatted source.
type Emitted struct {
	Kind token.Kind
	Text string
}

// Formatter consumes a materialized token list and produces formatted
// output. A Formatter is single-use: after a full pass it must be
// reconstructed to format again.
type Formatter struct {
	src    []byte
	tokens []token.Token
	index  int
	opt    Options

	indentLevel int
	// dedentPending marks that the newline lookahead already applied the
	// dedent for an upcoming closing token, so the close-token handler must
	// not decrement a second time.
	dedentPending bool

	out []Emitted
}

// New creates a formatter over the file's full token sequence.
func New(file *source.File, opt Options) *Formatter {
	return NewFromTokens(lexer.Tokenize(file), file.Content, opt)
}

// NewFromTokens creates a formatter over an existing token list. src must be
// the source the tokens were lexed from.
func NewFromTokens(tokens []token.Token, src []byte, opt Options) *Formatter {
	return &Formatter{
		src:    src,
		tokens: tokens,
		opt:    opt.withDefaults(),
		out:    make([]Emitted, 0, len(tokens)),
	}
}

// Source formats a file and returns the result as a string.
func Source(file *source.File, opt Options) string {
	return New(file, opt).Format()
}

// peek returns the token at offset from the cursor, or a synthetic EOF token
// when out of range.
func (f *Formatter) peek(offset int) token.Token {
	idx := f.index + offset
	if idx < 0 || idx >= len(f.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return f.tokens[idx]
}

// consume returns the next token and advances, or a synthetic EOF token when
// exhausted.
func (f *Formatter) consume() token.Token {
	if f.index >= len(f.tokens) {
		return token.Token{Kind: token.EOF}
	}
	tok := f.tokens[f.index]
	f.index++
	return tok
}

func (f *Formatter) emit(kind token.Kind, text string) {
	f.out = append(f.out, Emitted{Kind: kind, Text: text})
}

// emitIndent emits whitespace for the current indent level. Level zero
// emits nothing.
func (f *Formatter) emitIndent() {
	var indent string
	if f.opt.UseTabs {
		indent = strings.Repeat("\t", f.indentLevel)
	} else {
		indent = strings.Repeat(" ", f.indentLevel*f.opt.TabDisplaySize)
	}
	if indent != "" {
		f.emit(token.Whitespace, indent)
	}
}

func (f *Formatter) dedent() {
	if f.indentLevel > 0 {
		f.indentLevel--
	}
}

// isCloser reports whether tok ends an indented region: a closing bracket,
// or the identifier "end" when section blocks are enabled.
func (f *Formatter) isCloser(tok token.Token) bool {
	switch tok.Kind {
	case token.Punct:
		switch tok.Slice(f.src) {
		case "}", "]", ")":
			return true
		}
	case token.Ident:
		if f.opt.IndentSectionBlocks && strings.EqualFold(tok.Slice(f.src), "end") {
			return true
		}
	}
	return false
}

// FormatTokens runs the formatting pass and returns the ordered output
// pairs.
func (f *Formatter) FormatTokens() []Emitted {
	for f.index < len(f.tokens) {
		tok := f.consume()
		text := tok.Slice(f.src)

		switch tok.Kind {
		case token.Whitespace:
			f.formatWhitespace(text)

		case token.Ident:
			f.formatIdent(text)

		case token.Punct:
			f.formatPunct(text)

		case token.String, token.IntConst, token.CharConst, token.FloatConst,
			token.LineComment, token.BlockComment:
			f.emit(tok.Kind, text)

		case token.EOF:
			return f.out

		default:
			// Unknown kinds pass through verbatim.
			f.emit(tok.Kind, text)
		}
	}
	return f.out
}

// Format runs the formatting pass and returns the concatenated output.
func (f *Formatter) Format() string {
	var sb strings.Builder
	for _, e := range f.FormatTokens() {
		sb.WriteString(e.Text)
	}
	return sb.String()
}

// formatWhitespace collapses a whitespace run. A run containing a newline
// becomes exactly one newline plus indentation; anything else becomes one
// space. When the token after the newline closes an indented region, the
// dedent is applied before the indentation is emitted, and dedentPending
// stops the close-token handler from decrementing again.
func (f *Formatter) formatWhitespace(text string) {
	if !strings.ContainsRune(text, '\n') {
		f.emit(token.Whitespace, " ")
		return
	}
	f.emit(token.Whitespace, "\n")
	if f.isCloser(f.peek(0)) {
		f.dedent()
		f.dedentPending = true
	}
	f.emitIndent()
}

// formatIdent handles the "begin NAME" / "end NAME" section idiom when
// enabled; every other identifier is emitted verbatim.
func (f *Formatter) formatIdent(text string) {
	if !f.opt.IndentSectionBlocks {
		f.emit(token.Ident, text)
		return
	}

	// Look ahead past intervening whitespace for a second identifier.
	offset := 0
	next := f.peek(offset)
	for next.Kind == token.Whitespace {
		offset++
		next = f.peek(offset)
	}
	if next.Kind != token.Ident {
		f.emit(token.Ident, text)
		return
	}
	nextText := next.Slice(f.src)

	switch {
	case strings.EqualFold(text, "begin"):
		f.emit(token.Ident, text+" "+nextText)
		f.consumeN(offset + 1)
		f.indentLevel++

	case strings.EqualFold(text, "end"):
		if !f.dedentPending {
			f.dedent()
		}
		f.dedentPending = false
		f.emit(token.Ident, text+" "+nextText)
		f.consumeN(offset + 1)

	default:
		f.emit(token.Ident, text)
	}
}

// formatPunct tracks bracket-driven indentation. Openers indent after
// emission, closers dedent before emission unless the newline lookahead
// already did.
func (f *Formatter) formatPunct(text string) {
	switch text {
	case "{", "[", "(":
		f.emit(token.Punct, text)
		f.indentLevel++
	case "}", "]", ")":
		if !f.dedentPending {
			f.dedent()
		}
		f.dedentPending = false
		f.emit(token.Punct, text)
	default:
		f.emit(token.Punct, text)
	}
}

func (f *Formatter) consumeN(n int) {
	for i := 0; i < n; i++ {
		f.consume()
	}
}
