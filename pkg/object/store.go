package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123... Every file holds the zlib
// stream of one object's "type len\0payload" bytes.
type Store struct {
	fs    billy.Filesystem
	log   *zap.Logger
	cache *lru.Cache[Hash, []byte]
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger makes the store report writes and reads at debug level.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCacheSize keeps up to n decompressed objects in memory. Objects never
// change once written, so cached bytes stay valid for the life of the store.
func WithCacheSize(n int) StoreOption {
	return func(s *Store) {
		if n <= 0 {
			s.cache = nil
			return
		}
		c, err := lru.New[Hash, []byte](n)
		if err == nil {
			s.cache = c
		}
	}
}

// NewStore creates a Store over fs, which is rooted at the repository
// metadata directory. The objects/ subdirectory is created lazily on first
// write.
func NewStore(fs billy.Filesystem, opts ...StoreOption) *Store {
	s := &Store{fs: fs, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the store-relative path of the object named h.
func (s *Store) Path(h Hash) string {
	hex := h.String()
	return s.fs.Join("objects", hex[:2], hex[2:])
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	_, err := s.fs.Stat(s.Path(h))
	return err == nil
}

// Put stores raw, which must already carry its object header, and returns
// its content hash. Writing an object that is already present is a no-op
// that returns the same hash. New objects are written to a temp file and
// renamed into place.
func (s *Store) Put(raw []byte) (Hash, error) {
	h := HashRaw(raw)
	dest := s.Path(h)

	// Fast path: already exists.
	if s.Has(h) {
		s.log.Debug("object already stored", zap.Stringer("hash", h))
		return h, nil
	}

	dir := s.fs.Join("objects", h.String()[:2])
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return ZeroHash, fmt.Errorf("object write mkdir: %w", err)
	}

	compressed, err := compressZlib(raw)
	if err != nil {
		return ZeroHash, fmt.Errorf("object write compress: %w", err)
	}

	tmp, err := s.fs.TempFile(dir, ".tmp-")
	if err != nil {
		return ZeroHash, fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return ZeroHash, fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return ZeroHash, fmt.Errorf("object write close: %w", err)
	}
	if err := s.fs.Rename(tmpName, dest); err != nil {
		s.fs.Remove(tmpName)
		return ZeroHash, fmt.Errorf("object write rename: %w", err)
	}

	s.log.Debug("object stored",
		zap.Stringer("hash", h),
		zap.String("path", dest),
		zap.Int("size", len(raw)),
		zap.Int("compressed", len(compressed)),
	)
	return h, nil
}

// Write encodes obj and stores it.
func (s *Store) Write(obj Object) (Hash, error) {
	return s.Put(Encode(obj))
}

// ReadRaw returns the decompressed "type len\0payload" bytes of the object
// named h. A missing object yields ErrObjectNotFound.
func (s *Store) ReadRaw(h Hash) ([]byte, error) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(h); ok {
			return bytes.Clone(raw), nil
		}
	}

	f, err := s.fs.Open(s.Path(h))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object read %s: %w", h, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	compressed, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}

	raw, err := decompressZlib(compressed)
	if err != nil {
		return nil, fmt.Errorf("object read %s: decompress: %w", h, err)
	}
	if s.cache != nil {
		s.cache.Add(h, bytes.Clone(raw))
	}
	return raw, nil
}

// Get retrieves and decodes the object named h. Decode errors are returned
// wrapped, so errors.Is still matches the codec's sentinels.
func (s *Store) Get(h Hash) (Object, error) {
	raw, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	obj, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("object decode %s: %w", h, err)
	}
	return obj, nil
}

// Stat returns the declared type and payload size of the object named h
// without decoding the payload.
func (s *Store) Stat(h Hash) (ObjectType, int, error) {
	raw, err := s.ReadRaw(h)
	if err != nil {
		return "", 0, err
	}
	objType, size, _, err := ParseHeader(raw)
	if err != nil {
		return "", 0, fmt.Errorf("object stat %s: %w", h, err)
	}
	return objType, size, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(b)
}

// ReadBlob reads an object that must be a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	obj, err := s.Get(h)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*Blob)
	if !ok {
		return nil, &TypeMismatchError{Hash: h, Got: obj.Type(), Want: TypeBlob}
	}
	return b, nil
}

// WriteTree serializes and stores a TreeObj.
func (s *Store) WriteTree(tr *TreeObj) (Hash, error) {
	return s.Write(tr)
}

// ReadTree reads an object that must be a TreeObj.
func (s *Store) ReadTree(h Hash) (*TreeObj, error) {
	obj, err := s.Get(h)
	if err != nil {
		return nil, err
	}
	tr, ok := obj.(*TreeObj)
	if !ok {
		return nil, &TypeMismatchError{Hash: h, Got: obj.Type(), Want: TypeTree}
	}
	return tr, nil
}

// WriteCommit serializes and stores a CommitObj.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	return s.Write(c)
}

// ReadCommit reads an object that must be a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	obj, err := s.Get(h)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*CommitObj)
	if !ok {
		return nil, &TypeMismatchError{Hash: h, Got: obj.Type(), Want: TypeCommit}
	}
	return c, nil
}
