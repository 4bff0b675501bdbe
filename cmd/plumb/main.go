package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "plumb",
		Short:         "Content-addressable object store with git-compatible plumbing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString(logLevelFlag)
			log, atom, err := newLogger(level)
			if err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), log, atom))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = loggerFrom(cmd.Context()).Sync()
		},
	}
	root.PersistentFlags().String(logLevelFlag, "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringP(workDirFlag, "C", ".", "run as if started in `dir`")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newHashObjectCmd())
	root.AddCommand(newCatFileCmd())
	root.AddCommand(newLsTreeCmd())
	root.AddCommand(newWriteTreeCmd())
	root.AddCommand(newCommitTreeCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plumb %s\n", version)
		},
	}
}
