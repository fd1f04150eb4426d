// Package hasher provides snapshot.ContentHasher implementations.
package hasher

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/twitter/fssnap/common/stats"
	"github.com/twitter/fssnap/snapshot"
)

// FileChangedError is returned when the content read doesn't match the size the
// caller observed, i.e. the file was written to while it was being scanned.
type FileChangedError struct {
	AbsolutePath string
	ExpectedSize uint64
	ReadSize     uint64
}

func (e *FileChangedError) Error() string {
	return fmt.Sprintf("hasher: %v changed while hashing, expected %d bytes, read %d", e.AbsolutePath, e.ExpectedSize, e.ReadSize)
}

// FileHasher hashes file content with SHA-256.
type FileHasher struct {
	stat stats.StatsReceiver
}

func NewFileHasher(stat stats.StatsReceiver) *FileHasher {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &FileHasher{stat: stat.Scope("hasher")}
}

func (h *FileHasher) Hash(absolutePath string, size uint64, lastModified time.Time) (snapshot.ContentHash, error) {
	var hash snapshot.ContentHash
	f, err := os.Open(absolutePath)
	if err != nil {
		return hash, errors.Wrapf(err, "hasher: opening %v", absolutePath)
	}
	defer f.Close()

	sha := sha256.New()
	n, err := io.Copy(sha, f)
	h.stat.Counter(stats.HasherBytesReadCounter).Inc(n)
	if err != nil {
		return hash, errors.Wrapf(err, "hasher: reading %v", absolutePath)
	}
	if uint64(n) != size {
		return hash, &FileChangedError{AbsolutePath: absolutePath, ExpectedSize: size, ReadSize: uint64(n)}
	}
	copy(hash[:], sha.Sum(nil))
	return hash, nil
}
