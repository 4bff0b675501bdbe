package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/plumb/pkg/repo"
)

func newLsTreeCmd() *cobra.Command {
	var opts repo.ListTreeOptions

	cmd := &cobra.Command{
		Use:   "ls-tree [--name-only] [-r] <tree-ish>",
		Short: "List the entries of a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			listing, err := r.ListTree(args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), listing)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.NameOnly, "name-only", false, "list only entry names")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "recurse into subtrees")
	return cmd
}
