package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dcott7/stormatter/internal/driver"
	"github.com/dcott7/stormatter/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.storm",
	Short: "Tokenize a STORM source file",
	Long:  `Tokenize breaks a STORM source file into its constituent tokens and prints them with byte spans and line/column positions.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type tokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Tokenize(args[0])
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	switch outFormat {
	case "pretty":
		return renderTokensPretty(cmd.OutOrStdout(), result)
	case "json":
		return renderTokensJSON(cmd.OutOrStdout(), result)
	default:
		return fmt.Errorf("unknown format: %s", outFormat)
	}
}

func renderTokensPretty(w io.Writer, result *driver.TokenizeResult) error {
	for i, tok := range result.Tokens {
		start, end := result.FileSet.Resolve(tok.Span)
		fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String())
		if tok.Kind != token.Whitespace {
			fmt.Fprintf(w, " %q", tok.Slice(result.File.Content))
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)
	}
	return nil
}

func renderTokensJSON(w io.Writer, result *driver.TokenizeResult) error {
	output := make([]tokenOutput, 0, len(result.Tokens))
	for _, tok := range result.Tokens {
		start, _ := result.FileSet.Resolve(tok.Span)
		out := tokenOutput{
			Kind:  tok.Kind.String(),
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Line:  start.Line,
			Col:   start.Col,
		}
		if tok.Kind != token.Whitespace {
			out.Text = tok.Slice(result.File.Content)
		}
		output = append(output, out)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
