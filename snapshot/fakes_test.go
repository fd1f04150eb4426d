package snapshot

import (
	"crypto/sha256"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/fssnap/common/log/hooks"
)

func init() {
	log.AddHook(hooks.NewContextHook())
}

// fakeHasher hashes what it's told instead of file content.
type fakeHasher struct {
	calls int
}

func (h *fakeHasher) Hash(absolutePath string, size uint64, lastModified time.Time) (ContentHash, error) {
	h.calls++
	return fakeHash(absolutePath, size, lastModified), nil
}

func fakeHash(absolutePath string, size uint64, lastModified time.Time) ContentHash {
	return ContentHash(sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", absolutePath, size, lastModified.UnixNano()))))
}

// fakeResolver reports the paths in symlinks as ViaSymlink and fails for paths in missing.
type fakeResolver struct {
	symlinks map[string]bool
	missing  map[string]bool
	resolved []string
}

func newFakeResolver(symlinks ...string) *fakeResolver {
	r := &fakeResolver{symlinks: map[string]bool{}, missing: map[string]bool{}}
	for _, s := range symlinks {
		r.symlinks[s] = true
	}
	return r
}

func (r *fakeResolver) Resolve(absolutePath string) (AccessType, error) {
	r.resolved = append(r.resolved, absolutePath)
	if r.missing[absolutePath] {
		return DirectAccess, fmt.Errorf("no such file or directory: %v", absolutePath)
	}
	return AccessTypeOf(r.symlinks[absolutePath]), nil
}

// countingInterner hands back the first instance it saw of each value.
type countingInterner struct {
	pool  map[string]string
	calls int
}

func newCountingInterner() *countingInterner {
	return &countingInterner{pool: map[string]string{}}
}

func (i *countingInterner) Intern(value string) string {
	i.calls++
	if v, ok := i.pool[value]; ok {
		return v
	}
	i.pool[value] = value
	return value
}

var testTime = time.Unix(1500000000, 0)

func meta(size uint64) FileMetadata {
	return FileMetadata{Size: size, LastModified: testTime, AccessType: DirectAccess}
}

// event is one callback seen by recordingVisitor.
type event struct {
	kind string
	path string
}

func (e event) String() string {
	return e.kind + ":" + e.path
}

// recordingVisitor records every callback with the relative path of the entry,
// and returns Stop when it visits stopAt.
type recordingVisitor struct {
	events []event
	stopAt string
}

func (v *recordingVisitor) EnterDirectory(dir *DirectorySnapshot, tracker *RelativePathTracker) {
	v.events = append(v.events, event{"enter", tracker.RelativePath()})
}

func (v *recordingVisitor) VisitEntry(s Snapshot, tracker *RelativePathTracker) VisitResult {
	path := tracker.RelativePath()
	if tracker.IsRoot() {
		path = "<root>"
	}
	v.events = append(v.events, event{"visit", path})
	if v.stopAt != "" && path == v.stopAt {
		return Stop
	}
	return Continue
}

func (v *recordingVisitor) LeaveDirectory(dir *DirectorySnapshot, tracker *RelativePathTracker) {
	v.events = append(v.events, event{"leave", tracker.RelativePath()})
}

// relativePaths collects the relative path of every non-root entry.
func relativePaths(s Snapshot) []string {
	var paths []string
	s.Accept(NewRelativePathTrackingVisitor(&pathCollector{paths: &paths}))
	return paths
}

type pathCollector struct {
	paths *[]string
}

func (c *pathCollector) EnterDirectory(dir *DirectorySnapshot, tracker *RelativePathTracker) {}
func (c *pathCollector) LeaveDirectory(dir *DirectorySnapshot, tracker *RelativePathTracker) {}
func (c *pathCollector) VisitEntry(s Snapshot, tracker *RelativePathTracker) VisitResult {
	if !tracker.IsRoot() {
		*c.paths = append(*c.paths, tracker.RelativePath())
	}
	return Continue
}
