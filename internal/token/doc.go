// Package token defines the STORM token kinds and the Token value type.
//
// A Token never owns text: it carries a byte span into the original source,
// and text is recovered by slicing. This keeps tokens cheap to copy and makes
// the token stream a faithful cover of the input.
package token
