package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatFileCmd() *cobra.Command {
	var (
		pretty   bool
		showType bool
		showSize bool
	)

	cmd := &cobra.Command{
		Use:   "cat-file (-p | -t | -s) <object>",
		Short: "Print the content, type or size of a stored object",
		Long: `Print information about a stored object.

<object> is a 40-character hash, optionally followed by ":<path>" to name an
entry inside a tree or a commit's tree. With -p the object must be a blob;
use ls-tree to list trees.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if pretty {
				text, err := r.ReadBlob(args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
				return nil
			}

			typ, size, err := r.StatObject(args[0])
			if err != nil {
				return err
			}
			if showType {
				fmt.Fprintln(out, typ)
			} else {
				fmt.Fprintln(out, size)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "print blob content")
	cmd.Flags().BoolVarP(&showType, "type", "t", false, "print object type")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "print object size in bytes")
	cmd.MarkFlagsMutuallyExclusive("pretty", "type", "size")
	cmd.MarkFlagsOneRequired("pretty", "type", "size")
	return cmd
}
