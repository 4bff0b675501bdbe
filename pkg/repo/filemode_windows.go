//go:build windows

package repo

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// extExec approximates executability from the file extension, since the
// filesystem carries no execute bits.
type extExec struct{}

func (extExec) IsExecutable(path string, _ fs.FileInfo) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".exe", ".bat", ".cmd", ".com":
		return true
	}
	return false
}

func newPlatformExecChecker() ExecChecker { return extExec{} }
