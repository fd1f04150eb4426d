package snapshot

import (
	"encoding/hex"
	"strings"
	"time"
)

// PathSegments is the location of an entry relative to the root of the snapshotted
// subtree, leaf included. The root entry has no segments.
type PathSegments []string

// Segments splits a slash separated relative path. "" is the root.
func Segments(relativePath string) PathSegments {
	if relativePath == "" {
		return PathSegments{}
	}
	return PathSegments(strings.Split(relativePath, "/"))
}

func (p PathSegments) IsRoot() bool {
	return len(p) == 0
}

func (p PathSegments) String() string {
	return strings.Join(p, "/")
}

// AccessType records whether an entry was reached directly or through a symlink.
type AccessType int

const (
	DirectAccess AccessType = iota
	ViaSymlink
)

// AccessTypeOf maps the result of a symlink check to an AccessType.
func AccessTypeOf(isSymlink bool) AccessType {
	if isSymlink {
		return ViaSymlink
	}
	return DirectAccess
}

func (a AccessType) String() string {
	switch a {
	case DirectAccess:
		return "direct"
	case ViaSymlink:
		return "via_symlink"
	default:
		return "unknown"
	}
}

// FileMetadata is what a scanner knows about a file before its content is hashed.
type FileMetadata struct {
	Size         uint64
	LastModified time.Time
	AccessType   AccessType
}

// ContentHash is an opaque fingerprint of file content. Only a ContentHasher makes them.
type ContentHash [32]byte

func (h ContentHash) String() string {
	return hex.EncodeToString(h[:])
}

func (h ContentHash) IsZero() bool {
	return h == ContentHash{}
}

// SnapshotType is the kind of a Snapshot or of a builder node.
type SnapshotType int

const (
	EmptyType SnapshotType = iota
	RegularFileType
	DirectoryType
)

func (t SnapshotType) String() string {
	switch t {
	case EmptyType:
		return "empty"
	case RegularFileType:
		return "file"
	case DirectoryType:
		return "directory"
	default:
		return "unknown"
	}
}
