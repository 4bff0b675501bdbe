package object

import "fmt"

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// TreeMode is the canonical ASCII mode string of a tree entry.
type TreeMode string

const (
	// Tree mode constants use git's canonical mode strings.
	TreeModeDir        TreeMode = "40000"
	TreeModeFile       TreeMode = "100644"
	TreeModeExecutable TreeMode = "100755"
	TreeModeSymlink    TreeMode = "120000"
)

// ParseTreeMode maps a serialized mode token to a TreeMode. Any token other
// than the four canonical strings is rejected with ErrUnknownTreeMode.
func ParseTreeMode(s string) (TreeMode, error) {
	switch m := TreeMode(s); m {
	case TreeModeDir, TreeModeFile, TreeModeExecutable, TreeModeSymlink:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTreeMode, s)
	}
}

// IsDir reports whether the mode names a subtree.
func (m TreeMode) IsDir() bool {
	return m == TreeModeDir
}

// Object is one of *Blob, *TreeObj or *CommitObj. The set is closed: the
// unexported marker keeps other packages from adding kinds.
type Object interface {
	Type() ObjectType
	object()
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object.
type TreeEntry struct {
	Mode TreeMode
	Name string
	Hash Hash
}

// TreeObj holds a list of tree entries sorted by Name.
type TreeObj struct {
	Entries []TreeEntry
}

// PersonInfo identifies the author or committer of a commit. TZOffset is in
// minutes east of UTC.
type PersonInfo struct {
	Name      string
	Email     string
	Timestamp int64
	TZOffset  int
}

// DefaultPerson returns the placeholder identity used when no author is
// configured.
func DefaultPerson() PersonInfo {
	return PersonInfo{
		Name:      "John Doe",
		Email:     "john.doe@example.com",
		Timestamp: 1234567890,
	}
}

// CommitObj represents a commit pointing to a tree with metadata.
type CommitObj struct {
	TreeHash  Hash
	Parents   []Hash
	Author    PersonInfo
	Committer PersonInfo
	Message   string
}

func (*Blob) Type() ObjectType      { return TypeBlob }
func (*TreeObj) Type() ObjectType   { return TypeTree }
func (*CommitObj) Type() ObjectType { return TypeCommit }

func (*Blob) object()      {}
func (*TreeObj) object()   {}
func (*CommitObj) object() {}
