package snapshot

// VisitResult tells the traversal driver what to do after VisitEntry.
type VisitResult int

const (
	// Continue the walk normally.
	Continue VisitResult = iota
	// Stop ends the walk right away. No further callbacks are made, not even
	// LeaveDirectory for the directories being walked.
	Stop
)

func (r VisitResult) String() string {
	if r == Stop {
		return "stop"
	}
	return "continue"
}

// HierarchyVisitor receives a depth first walk of a Snapshot.
//
// For a directory the calls are EnterDirectory, VisitEntry with the directory itself,
// the walk of each child in name order, then LeaveDirectory.
// A root file gets a single VisitEntry with no EnterDirectory/LeaveDirectory around it.
// The Empty snapshot gets no calls.
type HierarchyVisitor interface {
	EnterDirectory(dir *DirectorySnapshot)
	VisitEntry(s Snapshot) VisitResult
	LeaveDirectory(dir *DirectorySnapshot)
}

// EntryVisitorFunc adapts a function to a HierarchyVisitor that only sees VisitEntry.
type EntryVisitorFunc func(s Snapshot) VisitResult

func (f EntryVisitorFunc) EnterDirectory(dir *DirectorySnapshot) {}
func (f EntryVisitorFunc) VisitEntry(s Snapshot) VisitResult   { return f(s) }
func (f EntryVisitorFunc) LeaveDirectory(dir *DirectorySnapshot) {}

// RelativePathTracker keeps the path from the root of a walk to the current entry.
// The root itself adds no segment.
type RelativePathTracker struct {
	segments []string
	depth    int
}

func NewRelativePathTracker() *RelativePathTracker {
	return &RelativePathTracker{}
}

func (t *RelativePathTracker) Enter(name string) {
	if t.depth > 0 {
		t.segments = append(t.segments, name)
	}
	t.depth++
}

func (t *RelativePathTracker) Leave() {
	if t.depth == 0 {
		return
	}
	t.depth--
	if t.depth > 0 {
		t.segments = t.segments[:len(t.segments)-1]
	}
}

// IsRoot is true while the current entry is the root of the walk.
func (t *RelativePathTracker) IsRoot() bool {
	return t.depth == 1
}

// Segments returns a copy of the current relative path.
func (t *RelativePathTracker) Segments() PathSegments {
	segments := make(PathSegments, len(t.segments))
	copy(segments, t.segments)
	return segments
}

// RelativePath joins the current segments with '/'.
func (t *RelativePathTracker) RelativePath() string {
	return PathSegments(t.segments).String()
}

// RelativePathVisitor is a HierarchyVisitor that is also handed the current relative path.
type RelativePathVisitor interface {
	EnterDirectory(dir *DirectorySnapshot, tracker *RelativePathTracker)
	VisitEntry(s Snapshot, tracker *RelativePathTracker) VisitResult
	LeaveDirectory(dir *DirectorySnapshot, tracker *RelativePathTracker)
}

// NewRelativePathTrackingVisitor wraps delegate so it sees the relative path of every
// entry: a directory's name is pushed on EnterDirectory and popped after LeaveDirectory,
// a file's name is pushed only for its VisitEntry. The wrapper may be passed to Accept
// again after a walk that ended in Stop; the next walk starts from the root.
func NewRelativePathTrackingVisitor(delegate RelativePathVisitor) HierarchyVisitor {
	return &relativePathTrackingVisitor{delegate: delegate, tracker: NewRelativePathTracker()}
}

type relativePathTrackingVisitor struct {
	delegate RelativePathVisitor
	tracker  *RelativePathTracker
	// set when the delegate stopped a walk, whose pending leaves never ran
	stopped bool
}

// restart drops the state of a walk that was stopped; no callback follows a Stop
// within one walk, so the next callback begins a new one.
func (v *relativePathTrackingVisitor) restart() {
	if v.stopped {
		v.tracker = NewRelativePathTracker()
		v.stopped = false
	}
}

func (v *relativePathTrackingVisitor) EnterDirectory(dir *DirectorySnapshot) {
	v.restart()
	v.tracker.Enter(dir.Name())
	v.delegate.EnterDirectory(dir, v.tracker)
}

func (v *relativePathTrackingVisitor) VisitEntry(s Snapshot) VisitResult {
	v.restart()
	var result VisitResult
	if s.Type() == DirectoryType {
		result = v.delegate.VisitEntry(s, v.tracker)
	} else {
		v.tracker.Enter(s.Name())
		result = v.delegate.VisitEntry(s, v.tracker)
		v.tracker.Leave()
	}
	v.stopped = result == Stop
	return result
}

func (v *relativePathTrackingVisitor) LeaveDirectory(dir *DirectorySnapshot) {
	v.delegate.LeaveDirectory(dir, v.tracker)
	v.tracker.Leave()
}
