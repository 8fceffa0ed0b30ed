// Package paths manages paths.dat files: newline-separated
// `name "/some/path"` records, parsed with the shared STORM lexer after
// comments and whitespace are stripped. A JSON-backed history store tracks
// every value a name has held, supporting last-value lookup and one-step
// revert.
package paths

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dcott7/stormatter/internal/parse"
	"github.com/dcott7/stormatter/internal/source"
	"github.com/dcott7/stormatter/internal/token"
)

// Parser parses a paths.dat file into a name → absolute-path map. Unlike the
// formatter, the paths parser validates: records must be an identifier
// followed by a quoted string.
type Parser struct {
	base *parse.Base
	data map[string]string
}

// NewParser creates a parser over the given file.
func NewParser(file *source.File) *Parser {
	return &Parser{
		base: parse.NewBase(file),
		data: make(map[string]string),
	}
}

// ParseSource is a convenience wrapper that parses raw paths.dat content.
func ParseSource(name string, content []byte) (map[string]string, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return NewParser(fs.Get(id)).Parse()
}

// Parse reads every record. Comments and whitespace are stripped before
// interpretation; relative paths resolve against the working directory.
func (p *Parser) Parse() (map[string]string, error) {
	stream := p.base.Stream(p.base.WithoutTrivia())

	for !stream.EOF() {
		nameTok, err := stream.Expect(token.Ident)
		if err != nil {
			return nil, fmt.Errorf("paths: %w", err)
		}
		pathTok, err := stream.Expect(token.String)
		if err != nil {
			return nil, fmt.Errorf("paths: entry %q: %w", stream.Text(nameTok), err)
		}

		name := stream.Text(nameTok)
		value := stripQuotes(stream.Text(pathTok))
		abs, err := filepath.Abs(value)
		if err != nil {
			return nil, fmt.Errorf("paths: entry %q: %w", name, err)
		}
		p.data[name] = abs
	}
	return p.data, nil
}

// Tokenizer exposes the underlying token capabilities, mainly for tests and
// tooling that wants the raw token view of a paths file.
func (p *Parser) Tokenizer() parse.Tokenizer {
	return p.base
}

func stripQuotes(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// Marshal renders a paths map as canonical paths.dat content: one
// `name "path"` line per entry, sorted by name, trailing newline.
func Marshal(paths map[string]string) []byte {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		// Raw quoting: the lexer has no escape handling, so the path text
		// goes between quotes byte for byte.
		sb.WriteString(name)
		sb.WriteString(" \"")
		sb.WriteString(paths[name])
		sb.WriteString("\"\n")
	}
	return []byte(sb.String())
}
