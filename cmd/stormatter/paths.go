package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dcott7/stormatter/internal/paths"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Inspect and rewrite a paths.dat file",
	Long:  `Paths reads a paths.dat mapping of names to directories, records changes to a history file, and can localize or revert individual entries.`,
}

func init() {
	pathsCmd.PersistentFlags().String("file", "paths.dat", "paths.dat file to operate on")
	pathsCmd.PersistentFlags().String("history-file", "", "history file (defaults to ~/.stormatter_history.json)")

	pathsShowCmd.Flags().Bool("track", false, "record the current entries in the history file")

	pathsCmd.AddCommand(pathsShowCmd)
	pathsCmd.AddCommand(pathsMakeLocalCmd)
	pathsCmd.AddCommand(pathsRevertCmd)
	pathsCmd.AddCommand(pathsHistoryCmd)
}

// pathsManager builds a Manager from the persistent flags.
func pathsManager(cmd *cobra.Command) (*paths.Manager, *paths.History, error) {
	pathsFile, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, nil, err
	}
	historyFile, err := cmd.Flags().GetString("history-file")
	if err != nil {
		return nil, nil, err
	}
	if historyFile == "" {
		historyFile, err = paths.DefaultHistoryPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving history file: %w", err)
		}
	}
	history := paths.LoadHistory(historyFile)
	return paths.NewManager(pathsFile, history), history, nil
}

var pathsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the entries in paths.dat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		track, err := cmd.Flags().GetBool("track")
		if err != nil {
			return err
		}
		manager, _, err := pathsManager(cmd)
		if err != nil {
			return err
		}
		entries, err := manager.GetPaths(track)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, entries[name])
		}
		return nil
	},
}

var pathsMakeLocalCmd = &cobra.Command{
	Use:   "make-local <name> <dest-dir>",
	Short: "Point an entry at a local directory",
	Long:  `Make-local rewrites one entry of paths.dat to a local directory, recording the previous value in the history file so the change can be reverted.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		manager, _, err := pathsManager(cmd)
		if err != nil {
			return err
		}
		if err := manager.MakeLocal(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "localized %s -> %s\n", args[0], args[1])
		return nil
	},
}

var pathsRevertCmd = &cobra.Command{
	Use:   "revert [name]",
	Short: "Restore entries to their previous recorded values",
	Long:  `Revert restores paths.dat from the history file. With a name, only that entry reverts to its previous value; without one, every entry rolls back one recorded change.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		manager, _, err := pathsManager(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			if err := manager.RevertLastChangeFor(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reverted %s\n", args[0])
			return nil
		}
		if err := manager.RevertLastChange(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "reverted all entries")
		return nil
	},
}

var pathsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded changes for this paths.dat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		_, history, err := pathsManager(cmd)
		if err != nil {
			return err
		}
		pathsFile, err := cmd.Flags().GetString("file")
		if err != nil {
			return err
		}

		names := history.Names(pathsFile)
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no recorded history")
			return nil
		}
		for _, name := range names {
			rec, ok := history.LastUpdate(pathsFile, name)
			if !ok {
				continue
			}
			when := time.Unix(int64(rec.Timestamp), 0).UTC().Format(time.RFC3339)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", name, rec.Path, when)
		}
		return nil
	},
}
