package repo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/odvcencio/plumb/pkg/object"
)

// CommitOptions carries the identities recorded on a new commit. A nil
// Author falls back to object.DefaultPerson; a nil Committer copies the
// author.
type CommitOptions struct {
	Author    *object.PersonInfo
	Committer *object.PersonInfo
}

// CommitTree creates a commit object for tree and returns its hash.
//
//  1. Check that tree names a stored tree
//  2. Check that each parent names a stored commit
//  3. Fill in author and committer
//  4. Write the commit to the store
//
// No ref is moved; HEAD stays where Init put it.
func (r *Repo) CommitTree(tree object.Hash, message string, parents []object.Hash, opts CommitOptions) (object.Hash, error) {
	if _, err := r.Store.ReadTree(tree); err != nil {
		return object.ZeroHash, fmt.Errorf("commit tree: %w", err)
	}
	for _, p := range parents {
		if _, err := r.Store.ReadCommit(p); err != nil {
			return object.ZeroHash, fmt.Errorf("commit tree: parent: %w", err)
		}
	}

	author := object.DefaultPerson()
	if opts.Author != nil {
		author = *opts.Author
	}
	committer := author
	if opts.Committer != nil {
		committer = *opts.Committer
	}

	commitObj := &object.CommitObj{
		TreeHash:  tree,
		Parents:   append([]object.Hash(nil), parents...),
		Author:    author,
		Committer: committer,
		Message:   message,
	}
	h, err := r.Store.WriteCommit(commitObj)
	if err != nil {
		return object.ZeroHash, fmt.Errorf("commit tree: write commit: %w", err)
	}

	r.log.Debug("commit written",
		zap.Stringer("hash", h),
		zap.Stringer("tree", tree),
		zap.Int("parents", len(parents)),
	)
	return h, nil
}
