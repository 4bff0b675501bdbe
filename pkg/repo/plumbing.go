package repo

import (
	"fmt"
	"os"
	"strings"

	"github.com/odvcencio/plumb/pkg/object"
)

// HashObject names data as a blob. With write set the blob is also stored;
// without it nothing touches the disk.
func (r *Repo) HashObject(data []byte, write bool) (object.Hash, error) {
	raw := object.Encode(&object.Blob{Data: data})
	if !write {
		return object.HashRaw(raw), nil
	}
	h, err := r.Store.Put(raw)
	if err != nil {
		return object.ZeroHash, fmt.Errorf("hash object: %w", err)
	}
	return h, nil
}

// HashFile reads path and names its content as a blob, storing it when
// write is set.
func (r *Repo) HashFile(path string, write bool) (object.Hash, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return object.ZeroHash, fmt.Errorf("hash object: %w", err)
	}
	return r.HashObject(data, write)
}

// ResolveName turns an object name into a hash. A name is either 40 hex
// characters or "<tree-ish>:<path>", where tree-ish names a tree or a
// commit and path is looked up inside it.
func (r *Repo) ResolveName(name string) (object.Hash, error) {
	rev, relPath, hasPath := strings.Cut(strings.TrimSpace(name), ":")
	h, err := object.ParseHash(rev)
	if err != nil {
		return object.ZeroHash, err
	}
	if !hasPath {
		return h, nil
	}

	tree, err := r.resolveTreeish(h)
	if err != nil {
		return object.ZeroHash, err
	}
	if strings.Trim(relPath, "/") == "" {
		return tree, nil
	}
	entry, found, err := r.treeEntryAtPath(tree, relPath)
	if err != nil {
		return object.ZeroHash, err
	}
	if !found {
		return object.ZeroHash, fmt.Errorf("path %q in %s: %w", relPath, h, object.ErrObjectNotFound)
	}
	return entry.Hash, nil
}

// resolveTreeish returns h itself when it names a tree and the commit's
// tree when it names a commit.
func (r *Repo) resolveTreeish(h object.Hash) (object.Hash, error) {
	obj, err := r.Store.Get(h)
	if err != nil {
		return object.ZeroHash, err
	}
	switch o := obj.(type) {
	case *object.TreeObj:
		return h, nil
	case *object.CommitObj:
		return o.TreeHash, nil
	default:
		return object.ZeroHash, &object.TypeMismatchError{Hash: h, Got: obj.Type(), Want: object.TypeTree}
	}
}

// ReadBlob returns the content of the named blob as text. Blob bytes are
// opaque in the store; invalid UTF-8 is replaced only here, at the output
// boundary.
func (r *Repo) ReadBlob(name string) (string, error) {
	h, err := r.ResolveName(name)
	if err != nil {
		return "", fmt.Errorf("read blob: %w", err)
	}
	b, err := r.Store.ReadBlob(h)
	if err != nil {
		return "", fmt.Errorf("read blob: %w", err)
	}
	return strings.ToValidUTF8(string(b.Data), "\uFFFD"), nil
}

// StatObject returns the type and payload size of the named object.
func (r *Repo) StatObject(name string) (object.ObjectType, int, error) {
	h, err := r.ResolveName(name)
	if err != nil {
		return "", 0, fmt.Errorf("stat object: %w", err)
	}
	typ, size, err := r.Store.Stat(h)
	if err != nil {
		return "", 0, fmt.Errorf("stat object: %w", err)
	}
	return typ, size, nil
}

// ListTreeOptions controls ListTree output.
type ListTreeOptions struct {
	NameOnly  bool // print only names
	Recursive bool // descend into subtrees, printing full paths
}

// ListTree formats the entries of the named tree-ish, one per line: either
// the name alone or "<mode> <name> <hex-hash>".
func (r *Repo) ListTree(name string, opts ListTreeOptions) (string, error) {
	h, err := r.ResolveName(name)
	if err != nil {
		return "", fmt.Errorf("list tree: %w", err)
	}
	tree, err := r.resolveTreeish(h)
	if err != nil {
		return "", fmt.Errorf("list tree: %w", err)
	}

	var lines []TreeFileEntry
	if opts.Recursive {
		lines, err = r.FlattenTree(tree)
		if err != nil {
			return "", fmt.Errorf("list tree: %w", err)
		}
	} else {
		tr, err := r.Store.ReadTree(tree)
		if err != nil {
			return "", fmt.Errorf("list tree: %w", err)
		}
		for _, e := range tr.Entries {
			lines = append(lines, TreeFileEntry{Path: e.Name, Mode: e.Mode, Hash: e.Hash})
		}
	}

	var b strings.Builder
	for _, e := range lines {
		if opts.NameOnly {
			fmt.Fprintf(&b, "%s\n", e.Path)
		} else {
			fmt.Fprintf(&b, "%s %s %s\n", e.Mode, e.Path, e.Hash)
		}
	}
	return b.String(), nil
}
