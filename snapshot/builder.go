package snapshot

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/fssnap/common/stats"
)

// TreeBuilder accumulates file and directory declarations into a tree and freezes it
// into a Snapshot. Declarations may come in any order. A TreeBuilder is used by one
// goroutine and built once.
//
// Any failed declaration fails the whole builder: later calls, Build included,
// return the first error. A partial tree is never handed out.
type TreeBuilder struct {
	interner StringInterner
	hasher   ContentHasher
	resolver AncestorAccessResolver
	stat     stats.StatsReceiver
	log      *log.Entry

	rootPath string
	root     *treeNode
	entries  int
	built    bool
	err      error
}

type BuilderOption func(*TreeBuilder)

// WithStats records builder metrics under the "builder" scope of stat.
func WithStats(stat stats.StatsReceiver) BuilderOption {
	return func(b *TreeBuilder) {
		b.stat = stat.Scope("builder")
	}
}

func WithLogger(entry *log.Entry) BuilderOption {
	return func(b *TreeBuilder) {
		b.log = entry
	}
}

func NewTreeBuilder(interner StringInterner, hasher ContentHasher, resolver AncestorAccessResolver, opts ...BuilderOption) *TreeBuilder {
	b := &TreeBuilder{
		interner: interner,
		hasher:   hasher,
		resolver: resolver,
		stat:     stats.NilStatsReceiver(),
		log:      log.NewEntry(log.StandardLogger()),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// treeNode is the mutable form of a Snapshot, owned by the builder until Build.
type treeNode struct {
	kind         SnapshotType
	absolutePath string
	name         string
	accessType   AccessType
	explicit     bool

	hash     ContentHash
	metadata FileMetadata

	children map[string]*treeNode
}

// AddFile declares a regular file. segments is the file's path relative to the
// snapshot root, its own name included; no segments makes the file the root.
// name must equal the last segment.
// Missing parent directories are created.
//
// The path is checked before the hasher is called, so a rejected file is never hashed.
// An accepted file is hashed exactly once, before AddFile returns.
func (b *TreeBuilder) AddFile(absolutePath string, segments PathSegments, name string, metadata FileMetadata) error {
	if err := b.checkUsable(); err != nil {
		return err
	}
	absolutePath = filepath.Clean(absolutePath)
	if err := b.checkRoot(absolutePath, segments); err != nil {
		return b.fail(err)
	}
	if !segments.IsRoot() && name != segments[len(segments)-1] {
		return b.fail(&LeafNameMismatchError{AbsolutePath: absolutePath, Name: name, Segment: segments[len(segments)-1]})
	}
	existing, err := b.lookup(segments)
	if err != nil {
		return b.fail(err)
	}
	if existing != nil {
		if existing.kind != RegularFileType {
			return b.fail(&TypeConflictError{AbsolutePath: absolutePath, Existing: existing.kind, Requested: RegularFileType})
		}
		return b.fail(&DuplicateEntryError{AbsolutePath: absolutePath, Type: RegularFileType})
	}

	hash, err := b.hash(absolutePath, metadata)
	if err != nil {
		return b.fail(errors.Wrapf(err, "snapshot: hashing %v", absolutePath))
	}

	node := &treeNode{
		kind:         RegularFileType,
		absolutePath: absolutePath,
		name:         b.interner.Intern(name),
		accessType:   metadata.AccessType,
		explicit:     true,
		hash:         hash,
		metadata:     metadata,
	}
	if segments.IsRoot() {
		b.root = node
	} else {
		parent, err := b.ensureDirectories(absolutePath, segments, len(segments)-1)
		if err != nil {
			return b.fail(err)
		}
		parent.children[b.interner.Intern(segments[len(segments)-1])] = node
	}
	b.entries++
	b.stat.Counter(stats.BuilderFilesAddedCounter).Inc(1)
	return nil
}

// AddDir declares a directory. segments is the directory's path relative to the
// snapshot root, its own name included; no segments declares the root.
// Its access type is looked up with the AncestorAccessResolver.
func (b *TreeBuilder) AddDir(absolutePath string, segments PathSegments) error {
	return b.addDir(absolutePath, segments, nil)
}

// AddDirWithAccess is AddDir for callers that already know whether the directory
// was reached through a symlink. The resolver isn't consulted for it.
func (b *TreeBuilder) AddDirWithAccess(absolutePath string, segments PathSegments, accessType AccessType) error {
	return b.addDir(absolutePath, segments, &accessType)
}

func (b *TreeBuilder) addDir(absolutePath string, segments PathSegments, known *AccessType) error {
	if err := b.checkUsable(); err != nil {
		return err
	}
	absolutePath = filepath.Clean(absolutePath)
	if err := b.checkRoot(absolutePath, segments); err != nil {
		return b.fail(err)
	}
	existing, err := b.lookup(segments)
	if err != nil {
		return b.fail(err)
	}
	if existing != nil {
		if existing.kind != DirectoryType {
			return b.fail(&TypeConflictError{AbsolutePath: absolutePath, Existing: existing.kind, Requested: DirectoryType})
		}
		if existing.explicit {
			return b.fail(&DuplicateEntryError{AbsolutePath: absolutePath, Type: DirectoryType})
		}
		// Synthesized earlier for a deeper entry; its access type is already resolved.
		existing.explicit = true
		if known != nil {
			existing.accessType = *known
		}
		b.stat.Counter(stats.BuilderDirsDeclaredCounter).Inc(1)
		return nil
	}

	var parent *treeNode
	if !segments.IsRoot() {
		if parent, err = b.ensureDirectories(absolutePath, segments, len(segments)-1); err != nil {
			return b.fail(err)
		}
	}
	var accessType AccessType
	if known != nil {
		accessType = *known
	} else if accessType, err = b.resolve(absolutePath); err != nil {
		return b.fail(err)
	}

	node := newDirectoryNode(absolutePath, b.interner.Intern(filepath.Base(absolutePath)), accessType)
	node.explicit = true
	if parent == nil {
		b.root = node
	} else {
		key := b.interner.Intern(segments[len(segments)-1])
		node.name = key
		parent.children[key] = node
	}
	b.entries++
	b.stat.Counter(stats.BuilderDirsDeclaredCounter).Inc(1)
	return nil
}

// Build freezes the tree. With nothing declared it returns Empty.
// A root-level declaration is returned as is, without a wrapping directory.
func (b *TreeBuilder) Build() (Snapshot, error) {
	if b.built {
		return nil, ErrBuilderSpent
	}
	b.built = true
	if b.err != nil {
		return nil, b.err
	}

	root := b.root
	b.root = nil
	b.stat.Gauge(stats.BuilderLastBuildEntriesGauge).Update(int64(b.entries))
	if root == nil {
		return Empty, nil
	}
	return freeze(root), nil
}

func freeze(node *treeNode) Snapshot {
	if node.kind == RegularFileType {
		return NewRegularFileSnapshot(node.absolutePath, node.name, node.hash, node.metadata)
	}
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)
	children := make([]Snapshot, len(names))
	for i, name := range names {
		children[i] = freeze(node.children[name])
	}
	return NewDirectorySnapshot(node.absolutePath, node.name, node.accessType, children)
}

func newDirectoryNode(absolutePath, name string, accessType AccessType) *treeNode {
	return &treeNode{
		kind:         DirectoryType,
		absolutePath: absolutePath,
		name:         name,
		accessType:   accessType,
		children:     map[string]*treeNode{},
	}
}

func (b *TreeBuilder) checkUsable() error {
	if b.built {
		b.stat.Counter(stats.BuilderFailedAddCounter).Inc(1)
		return ErrBuilderSpent
	}
	return b.err
}

// checkRoot makes sure every declaration agrees on the absolute path of the root.
func (b *TreeBuilder) checkRoot(absolutePath string, segments PathSegments) error {
	rootPath := ancestorPath(absolutePath, len(segments))
	if b.rootPath == "" {
		b.rootPath = rootPath
		return nil
	}
	if rootPath != b.rootPath {
		return &RootMismatchError{Root: b.rootPath, AbsolutePath: absolutePath, Segments: segments}
	}
	return nil
}

// lookup returns the node at segments, or nil if there is none yet.
// It fails if a file sits where a directory is needed on the way down.
func (b *TreeBuilder) lookup(segments PathSegments) (*treeNode, error) {
	node := b.root
	for _, segment := range segments {
		if node == nil {
			return nil, nil
		}
		if node.kind != DirectoryType {
			return nil, &TypeConflictError{AbsolutePath: node.absolutePath, Existing: node.kind, Requested: DirectoryType}
		}
		node = node.children[segment]
	}
	return node, nil
}

// ensureDirectories returns the directory at segments[:depth], synthesizing the root
// and any intermediate directory that doesn't exist yet. lookup must have been called
// on the same segments first.
func (b *TreeBuilder) ensureDirectories(absolutePath string, segments PathSegments, depth int) (*treeNode, error) {
	if b.root == nil {
		rootPath := ancestorPath(absolutePath, len(segments))
		root, err := b.synthesize(rootPath, filepath.Base(rootPath))
		if err != nil {
			return nil, err
		}
		b.root = root
	}
	node := b.root
	for i := 0; i < depth; i++ {
		child, ok := node.children[segments[i]]
		if !ok {
			var err error
			key := b.interner.Intern(segments[i])
			child, err = b.synthesize(ancestorPath(absolutePath, len(segments)-i-1), key)
			if err != nil {
				return nil, err
			}
			node.children[key] = child
		}
		node = child
	}
	return node, nil
}

func (b *TreeBuilder) synthesize(absolutePath, name string) (*treeNode, error) {
	accessType, err := b.resolve(absolutePath)
	if err != nil {
		return nil, err
	}
	b.entries++
	b.stat.Counter(stats.BuilderDirsSynthesizedCounter).Inc(1)
	b.log.WithFields(
		log.Fields{
			"path":       absolutePath,
			"accessType": accessType,
		}).Debug("Synthesized directory")
	return newDirectoryNode(absolutePath, b.interner.Intern(name), accessType), nil
}

func (b *TreeBuilder) resolve(absolutePath string) (AccessType, error) {
	accessType, err := b.resolver.Resolve(absolutePath)
	if err != nil {
		return DirectAccess, errors.Wrapf(err, "snapshot: resolving access type of %v", absolutePath)
	}
	return accessType, nil
}

func (b *TreeBuilder) hash(absolutePath string, metadata FileMetadata) (ContentHash, error) {
	defer b.stat.Precision(time.Millisecond).Latency(stats.BuilderHashLatency_ms).Time().Stop()
	return b.hasher.Hash(absolutePath, metadata.Size, metadata.LastModified)
}

func (b *TreeBuilder) fail(err error) error {
	if IsTypeConflict(err) {
		b.stat.Counter(stats.BuilderTypeConflictCounter).Inc(1)
	} else {
		b.stat.Counter(stats.BuilderFailedAddCounter).Inc(1)
	}
	b.log.WithFields(
		log.Fields{
			"err":  err,
			"root": b.rootPath,
		}).Debug("Tree builder failed")
	b.err = err
	return err
}

// ancestorPath strips levels trailing components from absolutePath.
func ancestorPath(absolutePath string, levels int) string {
	for i := 0; i < levels; i++ {
		absolutePath = filepath.Dir(absolutePath)
	}
	return absolutePath
}
