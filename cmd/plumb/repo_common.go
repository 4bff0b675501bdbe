package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odvcencio/plumb/pkg/repo"
)

// workDir returns the -C directory, or "." when the command runs without
// the root's persistent flags.
func workDir(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup(workDirFlag); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "."
}

func openRepo(cmd *cobra.Command) (*repo.Repo, error) {
	ctx := cmd.Context()
	r, err := repo.Open(workDir(cmd), repo.WithLogger(loggerFrom(ctx)))
	if err != nil {
		return nil, err
	}
	explicit := false
	if f := cmd.Flags().Lookup(logLevelFlag); f != nil {
		explicit = f.Changed
	}
	if err := applyConfigLevel(ctx, r.Config.Log.Level, explicit); err != nil {
		return nil, err
	}
	return r, nil
}

// resolvePath interprets p relative to the -C directory.
func resolvePath(cmd *cobra.Command, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir(cmd), p)
}
