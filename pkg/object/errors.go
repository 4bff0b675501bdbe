package object

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound is returned when no object is stored under a hash.
	ErrObjectNotFound = errors.New("object not found")
	// ErrUnsupportedObjectType is returned for headers this codec does not
	// recognize and for reads that expect a different kind of object.
	ErrUnsupportedObjectType = errors.New("unsupported object type")
	// ErrUnknownTreeMode is returned when a tree entry carries a mode token
	// outside the canonical set.
	ErrUnknownTreeMode = errors.New("unknown tree entry mode")
	// ErrCorruptObject is returned when stored bytes do not follow the
	// object layout.
	ErrCorruptObject = errors.New("corrupt object")
)

// TypeMismatchError reports that an object exists but is not of the kind the
// caller asked for.
type TypeMismatchError struct {
	Hash Hash
	Got  ObjectType
	Want ObjectType
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("object %s: %s: got %q, want %q", e.Hash, ErrUnsupportedObjectType, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrUnsupportedObjectType
}
