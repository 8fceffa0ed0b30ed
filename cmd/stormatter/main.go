package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dcott7/stormatter/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stormatter",
	Short: "STORM source formatter and paths.dat toolkit",
	Long:  `Stormatter re-tokenizes STORM source files and re-emits them with normalized whitespace and consistent indentation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		colorMode, err := cmd.Flags().GetString("color")
		if err != nil {
			return err
		}
		switch colorMode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		case "auto":
			color.NoColor = !isTerminal(os.Stdout)
		default:
			return fmt.Errorf("unsupported --color value %q (must be auto, on, or off)", colorMode)
		}
		return nil
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
