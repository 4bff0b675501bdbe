package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/odvcencio/plumb/pkg/object"
	"github.com/odvcencio/plumb/pkg/repo"
)

func newCommitTreeCmd() *cobra.Command {
	var (
		message string
		parents []string
	)

	cmd := &cobra.Command{
		Use:   "commit-tree <tree> -m <message> [-p <parent>]...",
		Short: "Create a commit object for a tree",
		Long: `Create a commit object for a tree and print its hash. No ref is updated.

Author and committer come from GIT_AUTHOR_NAME/GIT_AUTHOR_EMAIL and
GIT_COMMITTER_NAME/GIT_COMMITTER_EMAIL, then [user] in .git/plumb.toml, then
a fixed placeholder identity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}

			tree, err := object.ParseHash(args[0])
			if err != nil {
				return fmt.Errorf("commit-tree: tree: %w", err)
			}
			parentHashes := make([]object.Hash, 0, len(parents))
			for _, p := range parents {
				h, err := object.ParseHash(p)
				if err != nil {
					return fmt.Errorf("commit-tree: parent: %w", err)
				}
				parentHashes = append(parentHashes, h)
			}

			now := time.Now()
			author := r.Identity(repo.RoleAuthor, now)
			committer := r.Identity(repo.RoleCommitter, now)

			h, err := r.CommitTree(tree, ensureTrailingNewline(message), parentHashes, repo.CommitOptions{
				Author:    &author,
				Committer: &committer,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringArrayVarP(&parents, "parent", "p", nil, "parent commit (repeatable)")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

// ensureTrailingNewline terminates a -m message the way git does.
func ensureTrailingNewline(msg string) string {
	if msg == "" || msg[len(msg)-1] == '\n' {
		return msg
	}
	return msg + "\n"
}
