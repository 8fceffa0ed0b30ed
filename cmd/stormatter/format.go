package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dcott7/stormatter/internal/driver"
	"github.com/dcott7/stormatter/internal/format"
	"github.com/dcott7/stormatter/internal/fscache"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format STORM source files",
	Long:  `Fmt re-emits STORM source with normalized whitespace and consistent indentation. Without --write or --check, formatted text goes to stdout.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().IntP("tab-size", "t", format.DefaultTabDisplaySize, "spaces per indentation level (used with --spaces)")
	fmtCmd.Flags().Bool("spaces", false, "indent with spaces instead of tabs")
	fmtCmd.Flags().Bool("section-blocks", false, "treat 'begin NAME' / 'end NAME' as block delimiters")
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite changed files in place instead of printing")
	fmtCmd.Flags().Bool("check", false, "exit non-zero if any file would change, without writing")
	fmtCmd.Flags().Bool("stdout", false, "print formatted output to stdout even with --write defaults configured")
	fmtCmd.Flags().Bool("no-cache", false, "do not consult or update the change cache")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	opts, err := fmtOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	if write && check {
		return fmt.Errorf("fmt: --write cannot be used with --check")
	}
	stdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if stdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if stdout {
		write = false
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	opts.Write = write
	opts.Check = check
	opts.Stdout = !write && !check

	var cache *fscache.Cache
	if !noCache && (write || check) {
		if cachePath, cacheErr := fscache.DefaultPath("stormatter"); cacheErr == nil {
			cache = fscache.Load(cachePath)
			opts.Cache = cache
		}
	}

	results, err := driver.FormatPaths(cmd.Context(), args, opts)
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		switch {
		case opts.Stdout:
			_, _ = os.Stdout.Write(res.Formatted)
		case check && res.Changed:
			hasChanges = true
			if !quiet {
				fmt.Fprintln(os.Stdout, res.Path)
			}
		case write && res.Changed && !quiet:
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}

	if cache != nil {
		if saveErr := cache.Save(); saveErr != nil && !quiet {
			fmt.Fprintf(os.Stderr, "fmt: saving cache: %v\n", saveErr)
		}
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// fmtOptionsFromFlags merges stormatter.toml defaults with explicit flags.
func fmtOptionsFromFlags(cmd *cobra.Command) (driver.FormatOptions, error) {
	var opts driver.FormatOptions

	cfg, err := loadProjectConfig(".")
	if err != nil {
		return opts, err
	}

	tabSize, err := cmd.Flags().GetInt("tab-size")
	if err != nil {
		return opts, err
	}
	spaces, err := cmd.Flags().GetBool("spaces")
	if err != nil {
		return opts, err
	}
	sectionBlocks, err := cmd.Flags().GetBool("section-blocks")
	if err != nil {
		return opts, err
	}

	if !cmd.Flags().Changed("tab-size") {
		tabSize = cfg.TabSize
	}
	useTabs := cfg.UseTabs
	if cmd.Flags().Changed("spaces") {
		useTabs = !spaces
	}
	if !cmd.Flags().Changed("section-blocks") {
		sectionBlocks = cfg.SectionBlocks
	}

	if tabSize < 1 {
		return opts, fmt.Errorf("fmt: --tab-size must be positive, got %d", tabSize)
	}

	opts.Options = format.Options{
		TabDisplaySize:      tabSize,
		UseTabs:             useTabs,
		IndentSectionBlocks: sectionBlocks,
	}
	return opts, nil
}
