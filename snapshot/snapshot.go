package snapshot

// Snapshot is an immutable description of a file system entry and, for directories,
// everything below it. Implementations are EmptySnapshot, RegularFileSnapshot and
// DirectorySnapshot; no others exist.
type Snapshot interface {
	Type() SnapshotType
	AbsolutePath() string
	Name() string
	AccessType() AccessType

	// Accept walks the snapshot depth first, see HierarchyVisitor.
	Accept(visitor HierarchyVisitor) VisitResult

	isSnapshot()
}

// Empty is the snapshot of nothing. It's the only EmptySnapshot.
var Empty Snapshot = &EmptySnapshot{}

type EmptySnapshot struct{}

func (e *EmptySnapshot) Type() SnapshotType     { return EmptyType }
func (e *EmptySnapshot) AbsolutePath() string   { return "" }
func (e *EmptySnapshot) Name() string           { return "" }
func (e *EmptySnapshot) AccessType() AccessType { return DirectAccess }
func (e *EmptySnapshot) isSnapshot()            {}

func (e *EmptySnapshot) Accept(visitor HierarchyVisitor) VisitResult {
	return Continue
}

// RegularFileSnapshot is a file with the hash of its content.
type RegularFileSnapshot struct {
	absolutePath string
	name         string
	hash         ContentHash
	metadata     FileMetadata
}

func NewRegularFileSnapshot(absolutePath, name string, hash ContentHash, metadata FileMetadata) *RegularFileSnapshot {
	return &RegularFileSnapshot{absolutePath: absolutePath, name: name, hash: hash, metadata: metadata}
}

func (f *RegularFileSnapshot) Type() SnapshotType     { return RegularFileType }
func (f *RegularFileSnapshot) AbsolutePath() string   { return f.absolutePath }
func (f *RegularFileSnapshot) Name() string           { return f.name }
func (f *RegularFileSnapshot) AccessType() AccessType { return f.metadata.AccessType }
func (f *RegularFileSnapshot) Hash() ContentHash      { return f.hash }
func (f *RegularFileSnapshot) Metadata() FileMetadata { return f.metadata }
func (f *RegularFileSnapshot) isSnapshot()            {}

func (f *RegularFileSnapshot) Accept(visitor HierarchyVisitor) VisitResult {
	return visitor.VisitEntry(f)
}

// DirectorySnapshot is a directory and its children, sorted by name.
type DirectorySnapshot struct {
	absolutePath string
	name         string
	accessType   AccessType
	children     []Snapshot
}

// NewDirectorySnapshot takes ownership of children, which must already be sorted by name.
func NewDirectorySnapshot(absolutePath, name string, accessType AccessType, children []Snapshot) *DirectorySnapshot {
	return &DirectorySnapshot{absolutePath: absolutePath, name: name, accessType: accessType, children: children}
}

func (d *DirectorySnapshot) Type() SnapshotType     { return DirectoryType }
func (d *DirectorySnapshot) AbsolutePath() string   { return d.absolutePath }
func (d *DirectorySnapshot) Name() string           { return d.name }
func (d *DirectorySnapshot) AccessType() AccessType { return d.accessType }
func (d *DirectorySnapshot) NumChildren() int       { return len(d.children) }
func (d *DirectorySnapshot) Child(i int) Snapshot   { return d.children[i] }
func (d *DirectorySnapshot) isSnapshot()            {}

// Children returns a copy of the children.
func (d *DirectorySnapshot) Children() []Snapshot {
	children := make([]Snapshot, len(d.children))
	copy(children, d.children)
	return children
}

func (d *DirectorySnapshot) Accept(visitor HierarchyVisitor) VisitResult {
	visitor.EnterDirectory(d)
	if visitor.VisitEntry(d) == Stop {
		return Stop
	}
	for _, child := range d.children {
		if child.Accept(visitor) == Stop {
			return Stop
		}
	}
	visitor.LeaveDirectory(d)
	return Continue
}
