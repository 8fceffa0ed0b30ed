package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Ident represents an identifier token.
	Ident Kind = iota
	// String represents a double-quoted string token, quotes included.
	String
	// CharConst is reserved; no lexing rule currently produces it.
	CharConst
	// IntConst represents a run of decimal digits.
	IntConst
	// FloatConst is reserved; no lexing rule currently produces it.
	FloatConst
	// Punct represents a single punctuator byte.
	Punct
	// Whitespace represents a maximal run of whitespace bytes.
	Whitespace
	// LineComment represents a // comment, excluding the line terminator.
	LineComment
	// BlockComment represents a /* */ comment, delimiters included.
	BlockComment
	// EOF marks the end of the source input.
	EOF
)

var kindNames = [...]string{
	Ident:        "Ident",
	String:       "String",
	CharConst:    "CharConst",
	IntConst:     "IntConst",
	FloatConst:   "FloatConst",
	Punct:        "Punct",
	Whitespace:   "Whitespace",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	EOF:          "EOF",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
