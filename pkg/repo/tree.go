package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/odvcencio/plumb/pkg/object"
)

// TreeFileEntry represents a single non-directory entry in a flattened tree.
type TreeFileEntry struct {
	Path string
	Mode object.TreeMode
	Hash object.Hash
}

// WriteTree snapshots the working directory into tree objects and returns
// the root tree hash.
func (r *Repo) WriteTree() (object.Hash, error) {
	return r.WriteTreeAt(r.RootDir)
}

// WriteTreeAt snapshots dir. Files become blobs, subdirectories become
// nested trees written before their parent, and symbolic links become
// blobs of their target text. Devices, sockets and pipes are skipped, as is
// any .git directory. The first I/O error aborts the whole walk.
func (r *Repo) WriteTreeAt(dir string) (object.Hash, error) {
	h, err := r.writeTreeDir(dir)
	if err != nil {
		return object.ZeroHash, fmt.Errorf("write tree: %w", err)
	}
	return h, nil
}

func (r *Repo) writeTreeDir(dir string) (object.Hash, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return object.ZeroHash, err
	}

	entries := make([]object.TreeEntry, 0, len(dirents))
	for _, d := range dirents {
		name := d.Name()
		if name == MetaDirName {
			continue
		}
		p := filepath.Join(dir, name)

		var entry object.TreeEntry
		switch typ := d.Type(); {
		case typ.IsDir():
			h, err := r.writeTreeDir(p)
			if err != nil {
				return object.ZeroHash, err
			}
			entry = object.TreeEntry{Mode: object.TreeModeDir, Name: name, Hash: h}

		case typ&fs.ModeSymlink != 0:
			target, err := os.Readlink(p)
			if err != nil {
				return object.ZeroHash, err
			}
			h, err := r.Store.WriteBlob(&object.Blob{Data: []byte(target)})
			if err != nil {
				return object.ZeroHash, fmt.Errorf("store %s: %w", p, err)
			}
			entry = object.TreeEntry{Mode: object.TreeModeSymlink, Name: name, Hash: h}

		case typ.IsRegular():
			info, err := d.Info()
			if err != nil {
				return object.ZeroHash, err
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return object.ZeroHash, err
			}
			h, err := r.Store.WriteBlob(&object.Blob{Data: data})
			if err != nil {
				return object.ZeroHash, fmt.Errorf("store %s: %w", p, err)
			}
			entry = object.TreeEntry{Mode: modeFromFileInfo(r.exec, p, info), Name: name, Hash: h}

		default:
			r.log.Debug("skipping special file", zap.String("path", p), zap.Stringer("type", typ))
			continue
		}
		entries = append(entries, entry)
	}

	// Byte order, not locale order: the hash depends on it.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	h, err := r.Store.WriteTree(&object.TreeObj{Entries: entries})
	if err != nil {
		return object.ZeroHash, fmt.Errorf("store tree %s: %w", dir, err)
	}
	r.log.Debug("tree written", zap.String("dir", dir), zap.Stringer("hash", h), zap.Int("entries", len(entries)))
	return h, nil
}

// FlattenTree walks a tree object recursively, returning every
// non-directory entry with its full forward-slash path, in tree order.
func (r *Repo) FlattenTree(h object.Hash) ([]TreeFileEntry, error) {
	return r.flattenTreeRec(h, "")
}

func (r *Repo) flattenTreeRec(h object.Hash, prefix string) ([]TreeFileEntry, error) {
	treeObj, err := r.Store.ReadTree(h)
	if err != nil {
		return nil, fmt.Errorf("flatten tree: read %s: %w", h, err)
	}

	var result []TreeFileEntry
	for _, entry := range treeObj.Entries {
		fullPath := entry.Name
		if prefix != "" {
			fullPath = path.Join(prefix, entry.Name)
		}

		if entry.Mode.IsDir() {
			sub, err := r.flattenTreeRec(entry.Hash, fullPath)
			if err != nil {
				return nil, err
			}
			result = append(result, sub...)
		} else {
			result = append(result, TreeFileEntry{
				Path: fullPath,
				Mode: entry.Mode,
				Hash: entry.Hash,
			})
		}
	}
	return result, nil
}
