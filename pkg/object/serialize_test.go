package object

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustHash(t *testing.T, s string) Hash {
	t.Helper()
	h, err := ParseHash(s)
	if err != nil {
		t.Fatalf("ParseHash(%q): %v", s, err)
	}
	return h
}

func fillHash(b byte) Hash {
	var h Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func TestEncodeHeader(t *testing.T) {
	tests := []struct {
		typ  ObjectType
		n    int
		want string
	}{
		{TypeBlob, 0, "blob 0\x00"},
		{TypeBlob, 5, "blob 5\x00"},
		{TypeTree, 1234, "tree 1234\x00"},
		{TypeCommit, 177, "commit 177\x00"},
	}
	for _, tc := range tests {
		if got := string(EncodeHeader(tc.typ, tc.n)); got != tc.want {
			t.Errorf("EncodeHeader(%q, %d) = %q, want %q", tc.typ, tc.n, got, tc.want)
		}
	}
}

func TestEncodeBlob(t *testing.T) {
	got := Encode(&Blob{Data: []byte("world")})
	if want := "blob 5\x00world"; string(got) != want {
		t.Errorf("Encode(blob) = %q, want %q", got, want)
	}
}

func TestDecodeBlobRoundTrip(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte("hello world\nline two"),
		{0x00, 0xff, 0x00, 0x10},
		bytes.Repeat([]byte("ab"), 4096),
	} {
		obj, err := Decode(Encode(&Blob{Data: data}))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		b, ok := obj.(*Blob)
		if !ok {
			t.Fatalf("Decode returned %T, want *Blob", obj)
		}
		if !bytes.Equal(b.Data, data) {
			t.Errorf("blob round-trip: got %q, want %q", b.Data, data)
		}
	}
}

func TestMarshalBlobDeterminism(t *testing.T) {
	b := &Blob{Data: []byte("deterministic")}
	d1 := MarshalBlob(b)
	d2 := MarshalBlob(b)
	if !bytes.Equal(d1, d2) {
		t.Error("Blob marshal not deterministic")
	}
}

func TestMarshalTreeSortsEntries(t *testing.T) {
	tr := &TreeObj{Entries: []TreeEntry{
		{Mode: TreeModeFile, Name: "b", Hash: fillHash(0xbb)},
		{Mode: TreeModeFile, Name: "a", Hash: fillHash(0xaa)},
		{Mode: TreeModeFile, Name: "c", Hash: fillHash(0xcc)},
	}}
	data := MarshalTree(tr)

	var want bytes.Buffer
	for _, e := range []struct {
		name string
		fill byte
	}{{"a", 0xaa}, {"b", 0xbb}, {"c", 0xcc}} {
		h := fillHash(e.fill)
		want.WriteString("100644 " + e.name + "\x00")
		want.Write(h[:])
	}
	if !bytes.Equal(data, want.Bytes()) {
		t.Errorf("MarshalTree = %q, want %q", data, want.Bytes())
	}

	// Input order is left untouched.
	if tr.Entries[0].Name != "b" {
		t.Errorf("MarshalTree reordered caller's entries")
	}
}

func TestMarshalTreeByteOrder(t *testing.T) {
	// Uppercase sorts before lowercase and "a.txt" before "a0" when comparing
	// bytes; a locale-aware sort would disagree.
	tr := &TreeObj{Entries: []TreeEntry{
		{Mode: TreeModeFile, Name: "a0", Hash: fillHash(1)},
		{Mode: TreeModeFile, Name: "b", Hash: fillHash(2)},
		{Mode: TreeModeFile, Name: "a.txt", Hash: fillHash(3)},
		{Mode: TreeModeFile, Name: "Z", Hash: fillHash(4)},
	}}
	got, err := UnmarshalTree(MarshalTree(tr))
	if err != nil {
		t.Fatalf("UnmarshalTree: %v", err)
	}
	var names []string
	for _, e := range got.Entries {
		names = append(names, e.Name)
	}
	if diff := cmp.Diff([]string{"Z", "a.txt", "a0", "b"}, names); diff != "" {
		t.Errorf("entry order mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeRoundTrip(t *testing.T) {
	orig := &TreeObj{Entries: []TreeEntry{
		{Mode: TreeModeExecutable, Name: "build.sh", Hash: fillHash(0x01)},
		{Mode: TreeModeFile, Name: "main.go", Hash: fillHash(0x02)},
		{Mode: TreeModeDir, Name: "pkg", Hash: fillHash(0x03)},
		{Mode: TreeModeSymlink, Name: "latest", Hash: fillHash(0x04)},
	}}
	obj, err := Decode(Encode(orig))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := &TreeObj{Entries: []TreeEntry{
		orig.Entries[0], orig.Entries[3], orig.Entries[1], orig.Entries[2],
	}}
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Errorf("tree round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalTreeEmpty(t *testing.T) {
	tr, err := UnmarshalTree(nil)
	if err != nil {
		t.Fatalf("UnmarshalTree(nil): %v", err)
	}
	if len(tr.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(tr.Entries))
	}
}

func TestUnmarshalTreeUnknownMode(t *testing.T) {
	h := fillHash(0x42)
	payload := append([]byte("160000 sub\x00"), h[:]...)
	_, err := UnmarshalTree(payload)
	if !errors.Is(err, ErrUnknownTreeMode) {
		t.Fatalf("UnmarshalTree err = %v, want ErrUnknownTreeMode", err)
	}
}

func TestUnmarshalTreeTruncated(t *testing.T) {
	h := fillHash(0x42)
	valid := append([]byte("100644 a\x00"), h[:]...)

	tests := []struct {
		name string
		data []byte
	}{
		{"no mode terminator", []byte("100644")},
		{"no name terminator", []byte("100644 name")},
		{"short hash", valid[:len(valid)-1]},
		{"trailing garbage", append(append([]byte{}, valid...), "100644"...)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalTree(tc.data)
			if !errors.Is(err, ErrCorruptObject) {
				t.Fatalf("UnmarshalTree err = %v, want ErrCorruptObject", err)
			}
		})
	}
}

func TestParseTreeMode(t *testing.T) {
	for _, m := range []TreeMode{TreeModeDir, TreeModeFile, TreeModeExecutable, TreeModeSymlink} {
		got, err := ParseTreeMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseTreeMode(%q) = %q, %v", m, got, err)
		}
	}
	for _, bad := range []string{"", "040000", "100664", "160000", "dir"} {
		if _, err := ParseTreeMode(bad); !errors.Is(err, ErrUnknownTreeMode) {
			t.Errorf("ParseTreeMode(%q) err = %v, want ErrUnknownTreeMode", bad, err)
		}
	}
	if !TreeModeDir.IsDir() || TreeModeFile.IsDir() {
		t.Error("IsDir mismatch")
	}
}

func TestCommitRoundTrip(t *testing.T) {
	orig := &CommitObj{
		TreeHash: fillHash(0xaa),
		Parents:  []Hash{fillHash(0xbb)},
		Author: PersonInfo{
			Name: "Test User", Email: "test@example.com",
			Timestamp: 1700000000, TZOffset: 120,
		},
		Committer: PersonInfo{
			Name: "Other Person", Email: "other@example.com",
			Timestamp: 1700000100, TZOffset: -330,
		},
		Message: "test commit\n\nWith details.\n",
	}
	obj, err := Decode(Encode(orig))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(orig, obj); diff != "" {
		t.Errorf("commit round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalCommitLayout(t *testing.T) {
	c := &CommitObj{
		TreeHash:  mustHash(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904"),
		Author:    DefaultPerson(),
		Committer: DefaultPerson(),
		Message:   "initial\n",
	}
	want := "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n" +
		"author John Doe <john.doe@example.com> 1234567890 +0000\n" +
		"committer John Doe <john.doe@example.com> 1234567890 +0000\n" +
		"\n" +
		"initial\n"
	if got := string(MarshalCommit(c)); got != want {
		t.Errorf("MarshalCommit:\n got %q\nwant %q", got, want)
	}
}

func TestCommitWithoutParentHasNoParentLine(t *testing.T) {
	c := &CommitObj{TreeHash: fillHash(1), Author: DefaultPerson(), Committer: DefaultPerson()}
	if bytes.Contains(MarshalCommit(c), []byte("parent ")) {
		t.Error("root commit should not carry a parent line")
	}
	got, err := UnmarshalCommit(MarshalCommit(c))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if len(got.Parents) != 0 {
		t.Errorf("Parents = %v, want none", got.Parents)
	}
}

func TestUnmarshalCommitErrors(t *testing.T) {
	tree := "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n"
	person := "A <a@example.com> 1 +0000\n"
	tests := []struct {
		name string
		data string
	}{
		{"no separator", tree},
		{"unknown key", tree + "author " + person + "committer " + person + "encoding utf-8\n\nmsg"},
		{"bad tree hash", "tree xyz\nauthor " + person + "committer " + person + "\nmsg"},
		{"bad person", tree + "author nobody\ncommitter " + person + "\nmsg"},
		{"missing committer", tree + "author " + person + "\nmsg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalCommit([]byte(tc.data))
			if !errors.Is(err, ErrCorruptObject) {
				t.Fatalf("UnmarshalCommit err = %v, want ErrCorruptObject", err)
			}
		})
	}
}

func TestPersonFormatParse(t *testing.T) {
	tests := []struct {
		p    PersonInfo
		want string
	}{
		{DefaultPerson(), "John Doe <john.doe@example.com> 1234567890 +0000"},
		{PersonInfo{Name: "A B", Email: "ab@x.org", Timestamp: 42, TZOffset: 90}, "A B <ab@x.org> 42 +0130"},
		{PersonInfo{Name: "West", Email: "w@x.org", Timestamp: 7, TZOffset: -480}, "West <w@x.org> 7 -0800"},
	}
	for _, tc := range tests {
		got := FormatPerson(tc.p)
		if got != tc.want {
			t.Errorf("FormatPerson(%+v) = %q, want %q", tc.p, got, tc.want)
		}
		back, err := ParsePerson(got)
		if err != nil {
			t.Fatalf("ParsePerson(%q): %v", got, err)
		}
		if back != tc.p {
			t.Errorf("ParsePerson(%q) = %+v, want %+v", got, back, tc.p)
		}
	}
}

func TestDecodeUnsupportedType(t *testing.T) {
	for _, raw := range []string{
		"tag 3\x00abc",
		"blobby 1\x00x",
		"",
		"garbage without header",
	} {
		_, err := Decode([]byte(raw))
		if !errors.Is(err, ErrUnsupportedObjectType) {
			t.Errorf("Decode(%q) err = %v, want ErrUnsupportedObjectType", raw, err)
		}
	}
}

func TestDecodeCorruptHeader(t *testing.T) {
	for _, raw := range []string{
		"blob 5",            // no NUL
		"blob five\x00world", // non-decimal length
		"blob 6\x00world",   // declared length too long
		"blob 4\x00world",   // declared length too short
	} {
		_, err := Decode([]byte(raw))
		if !errors.Is(err, ErrCorruptObject) {
			t.Errorf("Decode(%q) err = %v, want ErrCorruptObject", raw, err)
		}
	}
}

func TestParseHeader(t *testing.T) {
	typ, n, payload, err := ParseHeader([]byte("commit 3\x00abc"))
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if typ != TypeCommit || n != 3 || string(payload) != "abc" {
		t.Errorf("ParseHeader = (%q, %d, %q)", typ, n, payload)
	}
}
