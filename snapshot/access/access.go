// Package access resolves whether a path is reached through a symlink.
package access

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/twitter/fssnap/snapshot"
)

// LstatResolver checks the path itself with lstat; only the last component counts,
// so a/link is ViaSymlink while a/link/child is DirectAccess unless child is a symlink too.
type LstatResolver struct{}

func NewLstatResolver() LstatResolver {
	return LstatResolver{}
}

func (LstatResolver) Resolve(absolutePath string) (snapshot.AccessType, error) {
	var st unix.Stat_t
	if err := unix.Lstat(absolutePath, &st); err != nil {
		return snapshot.DirectAccess, errors.Wrapf(&os.PathError{Op: "lstat", Path: absolutePath, Err: err}, "access")
	}
	return snapshot.AccessTypeOf(st.Mode&unix.S_IFMT == unix.S_IFLNK), nil
}
