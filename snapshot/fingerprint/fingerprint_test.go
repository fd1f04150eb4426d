package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	remoteexecution "google.golang.org/genproto/googleapis/devtools/remoteexecution/v1test"

	fsproto "github.com/twitter/fssnap/common/proto"
	"github.com/twitter/fssnap/snapshot"
	"github.com/twitter/fssnap/snapshot/intern"
)

type sizeHasher struct{}

// Hash depends on the size only, so tests control content by choosing sizes.
func (sizeHasher) Hash(_ string, size uint64, _ time.Time) (snapshot.ContentHash, error) {
	return snapshot.ContentHash(sha256.Sum256([]byte(fmt.Sprint(size)))), nil
}

type symlinkResolver map[string]bool

func (r symlinkResolver) Resolve(absolutePath string) (snapshot.AccessType, error) {
	return snapshot.AccessTypeOf(r[absolutePath]), nil
}

type decl struct {
	rel  string
	size uint64
	dir  bool
}

func build(t *testing.T, decls ...decl) snapshot.Snapshot {
	b := snapshot.NewTreeBuilder(intern.Nop(), sizeHasher{}, symlinkResolver{"/r/link": true})
	for _, d := range decls {
		segments := snapshot.Segments(d.rel)
		if d.dir {
			require.NoError(t, b.AddDir("/r/"+d.rel, segments))
			continue
		}
		meta := snapshot.FileMetadata{Size: d.size, LastModified: time.Unix(1, 0)}
		require.NoError(t, b.AddFile("/r/"+d.rel, segments, segments[len(segments)-1], meta))
	}
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func hashOf(size uint64) string {
	return snapshot.ContentHash(sha256.Sum256([]byte(fmt.Sprint(size)))).String()
}

func TestRelativePaths(t *testing.T) {
	s := build(t, decl{rel: "b/c.txt", size: 1}, decl{rel: "a.txt", size: 2}, decl{rel: "link", dir: true})
	assert.Equal(t, []string{"a.txt", "b", "b/c.txt", "link"}, RelativePaths(s))
	assert.Empty(t, RelativePaths(snapshot.Empty))
}

func TestLines(t *testing.T) {
	s := build(t, decl{rel: "b/c.txt", size: 1}, decl{rel: "link", dir: true})
	assert.Equal(t, []string{
		".\tdirectory\tdirect\t-",
		"b\tdirectory\tdirect\t-",
		"b/c.txt\tfile\tdirect\t" + hashOf(1),
		"link\tdirectory\tvia_symlink\t-",
	}, Lines(s))
}

func TestLinesRootFile(t *testing.T) {
	b := snapshot.NewTreeBuilder(intern.Nop(), sizeHasher{}, symlinkResolver{})
	require.NoError(t, b.AddFile("/r/f", snapshot.PathSegments{}, "f", snapshot.FileMetadata{Size: 3}))
	s, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{".\tfile\tdirect\t" + hashOf(3)}, Lines(s))
	assert.Empty(t, RelativePaths(s))

	digest, err := MerkleRoot(s)
	require.NoError(t, err)
	assert.Equal(t, hashOf(3), digest.Hash)
	assert.Equal(t, int64(3), digest.SizeBytes)
}

func TestMerkleRootOfEmpty(t *testing.T) {
	digest, err := MerkleRoot(snapshot.Empty)
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest.Hash)
	assert.Equal(t, int64(0), digest.SizeBytes)
}

func TestMerkleRootMatchesHandBuiltDirectories(t *testing.T) {
	s := build(t, decl{rel: "sub/x", size: 5}, decl{rel: "a", size: 7})

	sub := &remoteexecution.Directory{
		Files: []*remoteexecution.FileNode{
			{Name: "x", Digest: &remoteexecution.Digest{Hash: hashOf(5), SizeBytes: 5}},
		},
	}
	subHash, subSize, err := fsproto.GetSha256(sub)
	require.NoError(t, err)
	root := &remoteexecution.Directory{
		Files: []*remoteexecution.FileNode{
			{Name: "a", Digest: &remoteexecution.Digest{Hash: hashOf(7), SizeBytes: 7}},
		},
		Directories: []*remoteexecution.DirectoryNode{
			{Name: "sub", Digest: &remoteexecution.Digest{Hash: subHash, SizeBytes: subSize}},
		},
	}
	rootHash, rootSize, err := fsproto.GetSha256(root)
	require.NoError(t, err)

	digest, err := MerkleRoot(s)
	require.NoError(t, err)
	assert.Equal(t, rootHash, digest.Hash)
	assert.Equal(t, rootSize, digest.SizeBytes)
}

func TestMerkleRootIgnoresDeclarationOrder(t *testing.T) {
	decls := []decl{
		{rel: "x/y/z", size: 1},
		{rel: "x/w", size: 2},
		{rel: "v", dir: true},
		{rel: "a", size: 3},
	}
	forward := build(t, decls...)
	reversed := build(t, decls[3], decls[2], decls[1], decls[0])

	d1, err := MerkleRoot(forward)
	require.NoError(t, err)
	d2, err := MerkleRoot(reversed)
	require.NoError(t, err)
	assert.Equal(t, d1.Hash, d2.Hash)
	assert.Equal(t, d1.SizeBytes, d2.SizeBytes)
	assert.Equal(t, Lines(forward), Lines(reversed))
}

func TestMerkleRootChangesWithContent(t *testing.T) {
	d1, err := MerkleRoot(build(t, decl{rel: "x/y/z", size: 1}))
	require.NoError(t, err)
	d2, err := MerkleRoot(build(t, decl{rel: "x/y/z", size: 2}))
	require.NoError(t, err)
	d3, err := MerkleRoot(build(t, decl{rel: "x/y/q", size: 1}))
	require.NoError(t, err)
	assert.NotEqual(t, d1.Hash, d2.Hash)
	assert.NotEqual(t, d1.Hash, d3.Hash)
}

func TestMerkleRootKeepsTheMarshalError(t *testing.T) {
	s := build(t, decl{rel: "d/\xff", size: 1})

	_, err := MerkleRoot(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/r/d")
	cause := errors.Cause(err)
	assert.NotEqual(t, err, cause)
	assert.Contains(t, cause.Error(), "invalid UTF-8")
	assert.NotContains(t, cause.Error(), "/r/d")
}
