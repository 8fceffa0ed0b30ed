package parse

import (
	"errors"
	"testing"

	"github.com/dcott7/stormatter/internal/source"
	"github.com/dcott7/stormatter/internal/token"
)

func makeBase(t *testing.T, input string) *Base {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.storm", []byte(input))
	return NewBase(fs.Get(id))
}

func TestStreamPeekAdvance(t *testing.T) {
	b := makeBase(t, "a b")
	s := b.Stream(nil)

	if s.EOF() {
		t.Fatal("stream should not start at EOF")
	}
	if got := s.Text(s.Peek(0)); got != "a" {
		t.Errorf("Peek(0) = %q", got)
	}
	if got := s.Text(s.Peek(2)); got != "b" {
		t.Errorf("Peek(2) = %q", got)
	}

	tok, err := s.Advance()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Kind != token.Ident {
		t.Errorf("got %v", tok.Kind)
	}
}

func TestStreamSyntheticEOF(t *testing.T) {
	b := makeBase(t, "x")
	s := b.Stream(nil)

	if got := s.Peek(5); got.Kind != token.EOF {
		t.Errorf("out-of-range Peek = %v, want EOF", got.Kind)
	}
	if got := s.Peek(-1); got.Kind != token.EOF {
		t.Errorf("negative Peek = %v, want EOF", got.Kind)
	}

	if _, err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	tok, err := s.Advance()
	if !errors.Is(err, ErrUnexpectedEnd) {
		t.Errorf("expected ErrUnexpectedEnd, got %v", err)
	}
	if tok.Kind != token.EOF {
		t.Errorf("exhausted Advance should return EOF token, got %v", tok.Kind)
	}
}

func TestStreamCheckExpectMatch(t *testing.T) {
	b := makeBase(t, `name "/tmp/f.dat"`)
	s := b.Stream(b.WithoutTrivia())

	if !s.Check(token.Ident) {
		t.Error("Check(Ident) failed")
	}
	if !s.CheckText(token.Ident, "name") {
		t.Error("CheckText failed")
	}
	if s.CheckText(token.Ident, "NAME") {
		t.Error("CheckText must be case sensitive")
	}
	if !s.CheckTextFold(token.Ident, "NAME") {
		t.Error("CheckTextFold must fold case")
	}

	if _, err := s.Expect(token.String); err == nil {
		t.Error("Expect(String) should fail on Ident")
	}
	if _, err := s.Expect(token.Ident); err != nil {
		t.Errorf("Expect(Ident) failed: %v", err)
	}
	if _, ok := s.Match(token.Ident); ok {
		t.Error("Match(Ident) should fail on String")
	}
	tok, ok := s.Match(token.String)
	if !ok {
		t.Fatal("Match(String) failed")
	}
	if got := s.Text(tok); got != `"/tmp/f.dat"` {
		t.Errorf("got %q", got)
	}
	if !s.EOF() {
		t.Error("expected EOF")
	}
}

func TestExpectTextError(t *testing.T) {
	b := makeBase(t, "begin")
	s := b.Stream(nil)
	if _, err := s.ExpectText(token.Ident, "end"); err == nil {
		t.Error("expected error")
	}
	if _, err := s.ExpectText(token.Ident, "begin"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFilterHelpers(t *testing.T) {
	b := makeBase(t, "a // c\n/* b */ 1")

	if n := len(b.Tokenize()); n != 7 {
		t.Fatalf("expected 7 tokens, got %d", n)
	}
	if n := len(b.WithoutComments()); n != 5 {
		t.Errorf("WithoutComments: got %d", n)
	}
	if n := len(b.WithoutWhitespace()); n != 4 {
		t.Errorf("WithoutWhitespace: got %d", n)
	}
	if n := len(b.WithoutTrivia()); n != 2 {
		t.Errorf("WithoutTrivia: got %d", n)
	}
}

func TestTokensToSourceRoundTrip(t *testing.T) {
	input := "int x = 10; // note\n/* block */\t{ }"
	b := makeBase(t, input)
	if got := b.TokensToSource(b.Tokenize()); got != input {
		t.Errorf("round trip failed:\n got %q\nwant %q", got, input)
	}
}

func TestTokensToSourceFiltered(t *testing.T) {
	b := makeBase(t, "x = 1; // gone")
	got := b.TokensToSource(b.WithoutComments())
	if got != "x = 1; " {
		t.Errorf("got %q", got)
	}
}

func TestRefresh(t *testing.T) {
	b := makeBase(t, "a b c")
	first := b.Tokenize()
	second := b.Refresh()
	if len(first) != len(second) {
		t.Errorf("refresh changed token count: %d vs %d", len(first), len(second))
	}
}

func TestBaseImplementsTokenizer(t *testing.T) {
	var _ Tokenizer = (*Base)(nil)
}
