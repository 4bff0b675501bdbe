package repo

import (
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	"github.com/odvcencio/plumb/pkg/object"
)

// MetaDirName is the repository metadata directory. It is never recorded in
// trees.
const MetaDirName = ".git"

// defaultCacheSize bounds the number of decompressed objects kept in memory
// by an opened repository's store.
const defaultCacheSize = 256

// Repo represents an opened repository.
type Repo struct {
	RootDir string        // working directory root
	GitDir  string        // .git/ directory
	Store   *object.Store // content-addressed object store
	Config  *Config

	log       *zap.Logger
	exec      ExecChecker
	cacheSize int
}

// Option configures a Repo at Init or Open time.
type Option func(*Repo)

// WithLogger routes repository and store diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repo) {
		if l != nil {
			r.log = l
		}
	}
}

// WithExecChecker replaces the platform's executable-bit detection.
func WithExecChecker(c ExecChecker) Option {
	return func(r *Repo) {
		if c != nil {
			r.exec = c
		}
	}
}

// WithCacheSize sets how many decompressed objects the store keeps in
// memory. Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(r *Repo) {
		r.cacheSize = n
	}
}

func newRepo(root, gitDir string, opts []Option) *Repo {
	r := &Repo{
		RootDir:   root,
		GitDir:    gitDir,
		Config:    &Config{},
		log:       zap.NewNop(),
		exec:      platformExec,
		cacheSize: defaultCacheSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Store = object.NewStore(osfs.New(gitDir),
		object.WithLogger(r.log.Named("store")),
		object.WithCacheSize(r.cacheSize),
	)
	return r
}
