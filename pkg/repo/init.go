package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultHead is the content of HEAD in a freshly initialized repository.
const DefaultHead = "ref: refs/heads/main\n"

// Init creates a new repository at path. It creates the .git/ directory
// structure: HEAD, objects/ and refs/heads/. Returns an error if a .git/
// directory already exists.
func Init(path string, opts ...Option) (*Repo, error) {
	gitDir := filepath.Join(path, MetaDirName)

	// Fail if .git/ already exists.
	if _, err := os.Stat(gitDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", gitDir)
	}

	dirs := []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	headPath := filepath.Join(gitDir, "HEAD")
	if err := os.WriteFile(headPath, []byte(DefaultHead), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	r := newRepo(path, gitDir, opts)
	r.log.Debug("initialized repository")
	return r, nil
}

// Open searches upward from path for a .git/ directory and opens the
// repository, loading its optional config file.
func Open(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gitDir := filepath.Join(cur, MetaDirName)
		info, err := os.Stat(gitDir)
		if err == nil && info.IsDir() {
			r := newRepo(cur, gitDir, opts)
			cfg, err := ReadConfig(r.configPath())
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			r.Config = cfg
			return r, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: not a repository (or any parent up to /)")
		}
		cur = parent
	}
}

// Head reads .git/HEAD. If the content starts with "ref: ", it returns the
// ref path (e.g., "refs/heads/main"). Otherwise it returns the raw content.
func (r *Repo) Head() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.GitDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")
	return strings.TrimPrefix(content, "ref: "), nil
}
