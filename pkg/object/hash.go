package object

import (
	"encoding/hex"
	"fmt"

	"github.com/pjbgf/sha1cd"
)

// HashSize is the length in bytes of a raw object digest.
const HashSize = 20

// Hash is the raw SHA-1 digest of an object's "type len\0payload" form.
// It renders as 40 lowercase hex characters at text boundaries.
type Hash [HashSize]byte

// ZeroHash is the all-zero digest. No stored object hashes to it in practice.
var ZeroHash Hash

// ParseHash decodes a 40-character hex string into a Hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != hex.EncodedLen(HashSize) {
		return h, fmt.Errorf("parse hash %q: want %d hex characters, got %d", s, hex.EncodedLen(HashSize), len(s))
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("parse hash %q: %w", s, err)
	}
	return h, nil
}

// String returns the lowercase hex form of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the zero digest.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// HashRaw computes the digest of raw, which must already carry its object
// header.
func HashRaw(raw []byte) Hash {
	d := sha1cd.New()
	d.Write(raw)
	var h Hash
	copy(h[:], d.Sum(nil))
	return h
}

// HashObject computes the digest of the envelope "type len\0payload",
// matching git's object naming.
func HashObject(objType ObjectType, payload []byte) Hash {
	d := sha1cd.New()
	d.Write(EncodeHeader(objType, len(payload)))
	d.Write(payload)
	var h Hash
	copy(h[:], d.Sum(nil))
	return h
}
