package snapshot

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrBuilderSpent is returned by a TreeBuilder once Build has been called.
var ErrBuilderSpent = errors.New("snapshot: tree builder already built")

// TypeConflictError means one path was seen both as a file and as a directory,
// or an entry was declared below a file. The file system changed during the scan
// or the scanner is broken; nothing built from this pass can be trusted.
type TypeConflictError struct {
	AbsolutePath string
	Existing     SnapshotType
	Requested    SnapshotType
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("snapshot: cannot add %v %v, a %v is already there", e.Requested, e.AbsolutePath, e.Existing)
}

// DuplicateEntryError means the same path was explicitly declared twice as the same kind.
type DuplicateEntryError struct {
	AbsolutePath string
	Type         SnapshotType
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("snapshot: %v %v declared twice", e.Type, e.AbsolutePath)
}

// LeafNameMismatchError means a file's name differs from the last segment of its path.
type LeafNameMismatchError struct {
	AbsolutePath string
	Name         string
	Segment      string
}

func (e *LeafNameMismatchError) Error() string {
	return fmt.Sprintf("snapshot: file %v named %q but its path ends in %q", e.AbsolutePath, e.Name, e.Segment)
}

// RootMismatchError means two declarations disagree on where the snapshot root is.
type RootMismatchError struct {
	Root         string
	AbsolutePath string
	Segments     PathSegments
}

func (e *RootMismatchError) Error() string {
	return fmt.Sprintf("snapshot: %v with relative path %q is not under root %v", e.AbsolutePath, e.Segments.String(), e.Root)
}

// IsTypeConflict reports whether err, or its cause, is a *TypeConflictError.
func IsTypeConflict(err error) bool {
	_, ok := errors.Cause(err).(*TypeConflictError)
	return ok
}
