// Package fingerprint turns built snapshots into stable, comparable forms:
// path listings, one line per entry, and a Bazel remote execution merkle digest.
package fingerprint

import (
	"strings"

	"github.com/luci/go-render/render"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	remoteexecution "google.golang.org/genproto/googleapis/devtools/remoteexecution/v1test"

	fsproto "github.com/twitter/fssnap/common/proto"
	"github.com/twitter/fssnap/snapshot"
)

// RootPath stands for the root entry in Lines.
const RootPath = "."

// RelativePaths lists every entry below the root in traversal order, slash separated.
func RelativePaths(s snapshot.Snapshot) []string {
	var paths []string
	s.Accept(snapshot.NewRelativePathTrackingVisitor(&lineVisitor{
		emit: func(rel string, tracker *snapshot.RelativePathTracker, _ snapshot.Snapshot) {
			if !tracker.IsRoot() {
				paths = append(paths, rel)
			}
		},
	}))
	return paths
}

// Lines describes every entry, root included, as "path<TAB>type<TAB>access<TAB>hash".
// Directories have "-" for a hash.
func Lines(s snapshot.Snapshot) []string {
	var lines []string
	s.Accept(snapshot.NewRelativePathTrackingVisitor(&lineVisitor{
		emit: func(rel string, tracker *snapshot.RelativePathTracker, entry snapshot.Snapshot) {
			if tracker.IsRoot() {
				rel = RootPath
			}
			hash := "-"
			if file, ok := entry.(*snapshot.RegularFileSnapshot); ok {
				hash = file.Hash().String()
			}
			lines = append(lines, strings.Join([]string{rel, entry.Type().String(), entry.AccessType().String(), hash}, "\t"))
		},
	}))
	return lines
}

type lineVisitor struct {
	emit func(rel string, tracker *snapshot.RelativePathTracker, entry snapshot.Snapshot)
}

func (v *lineVisitor) EnterDirectory(*snapshot.DirectorySnapshot, *snapshot.RelativePathTracker) {}
func (v *lineVisitor) LeaveDirectory(*snapshot.DirectorySnapshot, *snapshot.RelativePathTracker) {}
func (v *lineVisitor) VisitEntry(entry snapshot.Snapshot, tracker *snapshot.RelativePathTracker) snapshot.VisitResult {
	v.emit(tracker.RelativePath(), tracker, entry)
	return snapshot.Continue
}

// MerkleRoot digests s the way a remote execution CAS digests an input root:
// each directory is a Directory message of FileNodes and DirectoryNodes sorted by
// name, hashed over its wire format. File digests are the snapshot's content hashes.
// A root file yields its own digest and Empty yields the digest of an empty Directory.
// Access types don't contribute.
func MerkleRoot(s snapshot.Snapshot) (*remoteexecution.Digest, error) {
	if s.Type() == snapshot.EmptyType {
		return digestOf(&remoteexecution.Directory{})
	}
	m := &merkleVisitor{}
	s.Accept(m)
	if m.err != nil {
		return nil, m.err
	}
	return m.root, nil
}

// merkleVisitor keeps one open Directory per directory entered and not yet left.
type merkleVisitor struct {
	stack []*remoteexecution.Directory
	root  *remoteexecution.Digest
	err   error
}

func (m *merkleVisitor) EnterDirectory(*snapshot.DirectorySnapshot) {
	m.stack = append(m.stack, &remoteexecution.Directory{})
}

func (m *merkleVisitor) VisitEntry(entry snapshot.Snapshot) snapshot.VisitResult {
	file, ok := entry.(*snapshot.RegularFileSnapshot)
	if !ok {
		return snapshot.Continue
	}
	digest := &remoteexecution.Digest{Hash: file.Hash().String(), SizeBytes: int64(file.Metadata().Size)}
	if len(m.stack) == 0 {
		m.root = digest
		return snapshot.Continue
	}
	top := m.stack[len(m.stack)-1]
	top.Files = append(top.Files, &remoteexecution.FileNode{Name: file.Name(), Digest: digest})
	return snapshot.Continue
}

func (m *merkleVisitor) LeaveDirectory(dir *snapshot.DirectorySnapshot) {
	directory := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	if m.err != nil {
		return
	}
	digest, err := digestOf(directory)
	if err != nil {
		m.err = errors.Wrapf(err, "fingerprint: digesting %v", dir.AbsolutePath())
		return
	}
	if log.GetLevel() >= log.DebugLevel {
		log.WithFields(
			log.Fields{
				"path":      dir.AbsolutePath(),
				"directory": render.Render(directory),
				"hash":      digest.Hash,
			}).Debug("Digested directory")
	}
	if len(m.stack) == 0 {
		m.root = digest
		return
	}
	parent := m.stack[len(m.stack)-1]
	parent.Directories = append(parent.Directories, &remoteexecution.DirectoryNode{Name: dir.Name(), Digest: digest})
}

func digestOf(directory *remoteexecution.Directory) (*remoteexecution.Digest, error) {
	hash, size, err := fsproto.GetSha256(directory)
	if err != nil {
		return nil, err
	}
	return &remoteexecution.Digest{Hash: hash, SizeBytes: size}, nil
}
