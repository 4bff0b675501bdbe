package repo

import (
	"io/fs"

	"github.com/odvcencio/plumb/pkg/object"
)

// ExecChecker decides whether a regular file is recorded as executable.
// Each build target provides one implementation, chosen once at init.
type ExecChecker interface {
	IsExecutable(path string, info fs.FileInfo) bool
}

// platformExec is the checker for the current build target.
var platformExec ExecChecker = newPlatformExecChecker()

// noExec never reports a file as executable.
type noExec struct{}

func (noExec) IsExecutable(string, fs.FileInfo) bool { return false }

func modeFromFileInfo(c ExecChecker, path string, info fs.FileInfo) object.TreeMode {
	if c.IsExecutable(path, info) {
		return object.TreeModeExecutable
	}
	return object.TreeModeFile
}
