package driver

import (
	"github.com/dcott7/stormatter/internal/lexer"
	"github.com/dcott7/stormatter/internal/source"
	"github.com/dcott7/stormatter/internal/token"
)

// TokenizeResult carries the token list for one file plus the FileSet needed
// to resolve spans into positions.
type TokenizeResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

// Tokenize loads and tokenizes a single file.
func Tokenize(path string) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	file := fileSet.Get(id)
	return &TokenizeResult{
		Path:    path,
		FileSet: fileSet,
		File:    file,
		Tokens:  lexer.Tokenize(file),
	}, nil
}
