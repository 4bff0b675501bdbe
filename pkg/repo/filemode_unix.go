//go:build unix

package repo

import "io/fs"

// posixExec reads the permission bits: any execute bit makes the file
// executable.
type posixExec struct{}

func (posixExec) IsExecutable(_ string, info fs.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}

func newPlatformExecChecker() ExecChecker { return posixExec{} }
