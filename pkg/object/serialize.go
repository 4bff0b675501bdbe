package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// EncodeHeader returns the "type len\0" envelope prefix for a payload of n
// bytes.
func EncodeHeader(objType ObjectType, n int) []byte {
	out := make([]byte, 0, len(objType)+22)
	out = append(out, objType...)
	out = append(out, ' ')
	out = strconv.AppendInt(out, int64(n), 10)
	return append(out, 0)
}

// Encode serializes obj to its full stored form, header included.
func Encode(obj Object) []byte {
	var payload []byte
	switch o := obj.(type) {
	case *Blob:
		payload = o.Data
	case *TreeObj:
		payload = MarshalTree(o)
	case *CommitObj:
		payload = MarshalCommit(o)
	}
	out := EncodeHeader(obj.Type(), len(payload))
	return append(out, payload...)
}

// ParseHeader splits raw stored bytes into the declared type, the declared
// payload length and the payload. The length must match the bytes that
// follow the NUL terminator exactly.
func ParseHeader(raw []byte) (ObjectType, int, []byte, error) {
	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		return "", 0, nil, fmt.Errorf("%w: header has no NUL terminator", ErrCorruptObject)
	}
	typ, size, ok := strings.Cut(string(raw[:nul]), " ")
	if !ok {
		return "", 0, nil, fmt.Errorf("%w: malformed header %q", ErrCorruptObject, raw[:nul])
	}
	n, err := strconv.Atoi(size)
	if err != nil || n < 0 {
		return "", 0, nil, fmt.Errorf("%w: invalid length %q", ErrCorruptObject, size)
	}
	payload := raw[nul+1:]
	if len(payload) != n {
		return "", 0, nil, fmt.Errorf("%w: length mismatch (header=%d, actual=%d)", ErrCorruptObject, n, len(payload))
	}
	return ObjectType(typ), n, payload, nil
}

// Decode parses the full decompressed bytes of a stored object. The kind is
// chosen by header prefix; anything other than blob, tree or commit fails
// with ErrUnsupportedObjectType.
func Decode(raw []byte) (Object, error) {
	var objType ObjectType
	for _, t := range []ObjectType{TypeBlob, TypeTree, TypeCommit} {
		if bytes.HasPrefix(raw, append([]byte(t), ' ')) {
			objType = t
			break
		}
	}
	if objType == "" {
		end := bytes.IndexAny(raw, " \x00")
		if end < 0 {
			end = min(len(raw), 16)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedObjectType, raw[:end])
	}

	_, _, payload, err := ParseHeader(raw)
	if err != nil {
		return nil, err
	}

	switch objType {
	case TypeBlob:
		return UnmarshalBlob(payload)
	case TypeTree:
		return UnmarshalTree(payload)
	default:
		return UnmarshalCommit(payload)
	}
}

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// MarshalTree serializes a TreeObj. Entries are sorted by Name, comparing
// bytes, so the output and therefore the hash depend only on the entry set.
// Each entry is:
//
//	<mode> <name>\0<20-byte raw hash>
//
// with no separator between entries.
func MarshalTree(tr *TreeObj) []byte {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		buf.WriteString(string(e.Mode))
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(e.Hash[:])
	}
	return buf.Bytes()
}

// UnmarshalTree parses a tree payload one entry at a time until the payload
// is consumed. It never reads past data; a truncated entry is corrupt and an
// unknown mode stops the parse with ErrUnknownTreeMode.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	for off := 0; off < len(data); {
		sp := bytes.IndexByte(data[off:], ' ')
		if sp < 0 {
			return nil, fmt.Errorf("unmarshal tree: %w: entry at offset %d has no mode terminator", ErrCorruptObject, off)
		}
		mode, err := ParseTreeMode(string(data[off : off+sp]))
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: entry at offset %d: %w", off, err)
		}
		off += sp + 1

		nul := bytes.IndexByte(data[off:], 0)
		if nul < 0 {
			return nil, fmt.Errorf("unmarshal tree: %w: entry at offset %d has no name terminator", ErrCorruptObject, off)
		}
		name := string(data[off : off+nul])
		off += nul + 1

		if len(data)-off < HashSize {
			return nil, fmt.Errorf("unmarshal tree: %w: entry %q has truncated hash", ErrCorruptObject, name)
		}
		var h Hash
		copy(h[:], data[off:off+HashSize])
		off += HashSize

		tr.Entries = append(tr.Entries, TreeEntry{Mode: mode, Name: name, Hash: h})
	}
	return tr, nil
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj:
//
//	tree H
//	parent H     (zero or more)
//	author NAME <EMAIL> TS TZ
//	committer NAME <EMAIL> TS TZ
//
//	message
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.TreeHash)
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s\n", FormatPerson(c.Author))
	fmt.Fprintf(&buf, "committer %s\n", FormatPerson(c.Committer))
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its serialized form.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: %w: missing header/message separator", ErrCorruptObject)
	}
	header := string(data[:idx])
	c := &CommitObj{Message: string(data[idx+2:])}

	var sawTree, sawAuthor, sawCommitter bool
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: %w: malformed header line %q", ErrCorruptObject, line)
		}
		var err error
		switch key {
		case "tree":
			c.TreeHash, err = ParseHash(val)
			sawTree = true
		case "parent":
			var p Hash
			p, err = ParseHash(val)
			c.Parents = append(c.Parents, p)
		case "author":
			c.Author, err = ParsePerson(val)
			sawAuthor = true
		case "committer":
			c.Committer, err = ParsePerson(val)
			sawCommitter = true
		default:
			return nil, fmt.Errorf("unmarshal commit: %w: unknown header key %q", ErrCorruptObject, key)
		}
		if err != nil {
			return nil, fmt.Errorf("unmarshal commit: %w: %s: %v", ErrCorruptObject, key, err)
		}
	}
	if !sawTree || !sawAuthor || !sawCommitter {
		return nil, fmt.Errorf("unmarshal commit: %w: missing tree, author or committer", ErrCorruptObject)
	}
	return c, nil
}

// FormatPerson renders p the way commit headers carry it:
// "Name <email> 1234567890 +0000".
func FormatPerson(p PersonInfo) string {
	sign := byte('+')
	off := p.TZOffset
	if off < 0 {
		sign = '-'
		off = -off
	}
	return fmt.Sprintf("%s <%s> %d %c%02d%02d", p.Name, p.Email, p.Timestamp, sign, off/60, off%60)
}

// ParsePerson is the inverse of FormatPerson.
func ParsePerson(s string) (PersonInfo, error) {
	var p PersonInfo
	lt := strings.IndexByte(s, '<')
	gt := strings.LastIndexByte(s, '>')
	if lt < 0 || gt < lt {
		return p, fmt.Errorf("malformed identity %q", s)
	}
	p.Name = strings.TrimSuffix(s[:lt], " ")
	p.Email = s[lt+1 : gt]

	fields := strings.Fields(s[gt+1:])
	if len(fields) != 2 {
		return p, fmt.Errorf("malformed date in %q", s)
	}
	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return p, fmt.Errorf("bad timestamp %q: %w", fields[0], err)
	}
	p.Timestamp = ts

	tz := fields[1]
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return p, fmt.Errorf("bad timezone %q", tz)
	}
	hh, err1 := strconv.Atoi(tz[1:3])
	mm, err2 := strconv.Atoi(tz[3:5])
	if err1 != nil || err2 != nil {
		return p, fmt.Errorf("bad timezone %q", tz)
	}
	p.TZOffset = hh*60 + mm
	if tz[0] == '-' {
		p.TZOffset = -p.TZOffset
	}
	return p, nil
}
