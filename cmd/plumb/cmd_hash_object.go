package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/plumb/pkg/object"
)

func newHashObjectCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object [-w] <file>",
		Short: "Compute the blob hash of a file, optionally storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolvePath(cmd, args[0])

			var h object.Hash
			if write {
				r, err := openRepo(cmd)
				if err != nil {
					return err
				}
				h, err = r.HashFile(path, true)
				if err != nil {
					return err
				}
			} else {
				// Hashing alone needs no repository.
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("hash object: %w", err)
				}
				h = object.HashObject(object.TypeBlob, data)
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the store")
	return cmd
}
