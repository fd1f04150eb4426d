package snapshot

//go:generate mockgen -source=interfaces.go -package=snapshot -destination=interfaces_mock.go

import (
	"time"
)

// ContentHasher fingerprints file content.
type ContentHasher interface {
	// Hash returns the content hash of the file at absolutePath.
	// size and lastModified are what the caller observed when listing the file.
	// Implementations may block on I/O.
	Hash(absolutePath string, size uint64, lastModified time.Time) (ContentHash, error)
}

// StringInterner returns a canonical instance for equal strings.
type StringInterner interface {
	Intern(value string) string
}

// AncestorAccessResolver tells whether a path is a symlink, without reading content.
// It's used for directories the builder has no metadata for.
type AncestorAccessResolver interface {
	Resolve(absolutePath string) (AccessType, error)
}
