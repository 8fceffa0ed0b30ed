package token

import (
	"testing"

	"github.com/dcott7/stormatter/internal/source"
)

func tok(kind Kind, start, end uint32) Token {
	return Token{Kind: kind, Span: source.Span{Start: start, End: end}}
}

func TestSlice(t *testing.T) {
	src := []byte("int x = 10;")

	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"full token", tok(Ident, 0, 3), "int"},
		{"mid token", tok(Ident, 4, 5), "x"},
		{"empty span", tok(Whitespace, 3, 3), ""},
		{"end past source", tok(Ident, 0, 100), ""},
		{"start past source", tok(Ident, 50, 60), ""},
		{"start at len", tok(EOF, 11, 11), ""},
		{"inverted span", tok(Ident, 5, 2), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.Slice(src); got != tt.want {
				t.Errorf("Slice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSliceEmptySource(t *testing.T) {
	if got := tok(EOF, 0, 0).Slice(nil); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestKindString(t *testing.T) {
	if Ident.String() != "Ident" || EOF.String() != "EOF" {
		t.Error("unexpected kind names")
	}
	if Kind(200).String() != "Unknown" {
		t.Error("out-of-range kind should be Unknown")
	}
}

func TestTriviaPredicates(t *testing.T) {
	if !tok(Whitespace, 0, 1).IsTrivia() {
		t.Error("whitespace is trivia")
	}
	if !tok(LineComment, 0, 2).IsComment() || !tok(BlockComment, 0, 4).IsComment() {
		t.Error("comments are comments")
	}
	if tok(Ident, 0, 1).IsTrivia() {
		t.Error("ident is not trivia")
	}
}
