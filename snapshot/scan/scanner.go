// Package scan walks a directory tree and declares what it finds to a snapshot.TreeBuilder.
package scan

import (
	"context"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"time"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/fssnap/common/stats"
	"github.com/twitter/fssnap/snapshot"
)

// Scanner builds a Snapshot of everything under a root path.
// A Scanner may run several scans concurrently; each gets its own builder.
type Scanner struct {
	config   Config
	hasher   snapshot.ContentHasher
	interner snapshot.StringInterner
	resolver snapshot.AncestorAccessResolver
	stat     stats.StatsReceiver
}

func NewScanner(
	config Config,
	hasher snapshot.ContentHasher,
	interner snapshot.StringInterner,
	resolver snapshot.AncestorAccessResolver,
	stat stats.StatsReceiver,
) *Scanner {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Scanner{
		config:   config,
		hasher:   hasher,
		interner: interner,
		resolver: resolver,
		stat:     stat,
	}
}

// scan is the state of one Scan call.
type scan struct {
	*Scanner
	ctx     context.Context
	builder *snapshot.TreeBuilder
	log     *log.Entry
	stat    stats.StatsReceiver

	// real paths of the directories on the current walk, to stop symlink cycles
	active map[string]bool
}

// Scan snapshots root. A root that is a symlink is always followed. Only regular files
// and directories are recorded. ctx is checked before each directory is read.
func (s *Scanner) Scan(ctx context.Context, root string) (snapshot.Snapshot, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "scan: couldn't create scan id")
	}
	stat := s.stat.Scope("scanner")
	stat.Counter(stats.ScannerScanCounter).Inc(1)
	defer stat.Precision(time.Millisecond).Latency(stats.ScannerScanLatency_ms).Time().Stop()

	root, err = filepath.Abs(root)
	if err != nil {
		stat.Counter(stats.ScannerScanErrCounter).Inc(1)
		return nil, errors.Wrap(err, "scan: bad root")
	}
	entry := log.WithFields(
		log.Fields{
			"scanID": id.String(),
			"root":   root,
		})
	entry.Info("Starting scan")

	sc := &scan{
		Scanner: s,
		ctx:     ctx,
		builder: snapshot.NewTreeBuilder(s.interner, s.hasher, s.resolver,
			snapshot.WithStats(s.stat), snapshot.WithLogger(entry)),
		log:    entry,
		stat:   stat,
		active: map[string]bool{},
	}
	result, err := sc.run(root)
	if err != nil {
		stat.Counter(stats.ScannerScanErrCounter).Inc(1)
		entry.WithFields(log.Fields{"err": err}).Info("Scan failed")
		return nil, err
	}
	entry.WithFields(log.Fields{"type": result.Type()}).Info("Finished scan")
	return result, nil
}

func (sc *scan) run(root string) (snapshot.Snapshot, error) {
	fi, err := os.Lstat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "scan: couldn't stat root %v", root)
	}
	accessType := snapshot.AccessTypeOf(fi.Mode()&os.ModeSymlink != 0)
	if accessType == snapshot.ViaSymlink {
		if fi, err = os.Stat(root); err != nil {
			return nil, errors.Wrapf(err, "scan: couldn't follow root %v", root)
		}
	}

	switch {
	case fi.IsDir():
		err = sc.walk(root, snapshot.PathSegments{}, accessType)
	case fi.Mode().IsRegular():
		err = sc.builder.AddFile(root, snapshot.PathSegments{}, filepath.Base(root), metadataOf(fi, accessType))
	default:
		err = errors.Errorf("scan: root %v is neither a regular file nor a directory (%v)", root, fi.Mode())
	}
	if err != nil {
		return nil, err
	}
	return sc.builder.Build()
}

// walk declares the directory at dirPath and everything under it.
func (sc *scan) walk(dirPath string, segments snapshot.PathSegments, accessType snapshot.AccessType) error {
	if err := sc.ctx.Err(); err != nil {
		return errors.Wrapf(err, "scan: interrupted at %v", dirPath)
	}
	if err := sc.builder.AddDirWithAccess(dirPath, segments, accessType); err != nil {
		return err
	}

	realPath, err := filepath.EvalSymlinks(dirPath)
	if err != nil {
		return errors.Wrapf(err, "scan: couldn't resolve %v", dirPath)
	}
	sc.active[realPath] = true
	defer delete(sc.active, realPath)

	// ReadDir lstat's entries and sorts them by name.
	infos, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return errors.Wrapf(err, "scan: couldn't list %v", dirPath)
	}
	for _, fi := range infos {
		name := fi.Name()
		childSegments := make(snapshot.PathSegments, len(segments)+1)
		copy(childSegments, segments)
		childSegments[len(segments)] = name
		if sc.config.excluded(name, path.Join(childSegments...)) {
			sc.stat.Counter(stats.ScannerExcludedCounter).Inc(1)
			continue
		}
		if err := sc.entry(filepath.Join(dirPath, name), childSegments, fi); err != nil {
			return err
		}
	}
	return nil
}

func (sc *scan) entry(absolutePath string, segments snapshot.PathSegments, fi os.FileInfo) error {
	name := fi.Name()
	switch {
	case fi.IsDir():
		return sc.walk(absolutePath, segments, snapshot.DirectAccess)
	case fi.Mode().IsRegular():
		return sc.builder.AddFile(absolutePath, segments, name, metadataOf(fi, snapshot.DirectAccess))
	case fi.Mode()&os.ModeSymlink != 0:
		return sc.symlink(absolutePath, segments, name)
	}
	sc.stat.Counter(stats.ScannerIrregularSkippedCounter).Inc(1)
	sc.log.WithFields(
		log.Fields{
			"path": absolutePath,
			"mode": fi.Mode(),
		}).Debug("Skipping irregular file")
	return nil
}

func (sc *scan) symlink(absolutePath string, segments snapshot.PathSegments, name string) error {
	target, err := os.Stat(absolutePath)
	if err != nil {
		sc.notFollowed(absolutePath, "dangling")
		return nil
	}
	switch {
	case target.Mode().IsRegular():
		return sc.builder.AddFile(absolutePath, segments, name, metadataOf(target, snapshot.ViaSymlink))
	case !target.IsDir():
		sc.stat.Counter(stats.ScannerIrregularSkippedCounter).Inc(1)
		return nil
	}

	if sc.config.FollowSymlinks {
		realPath, err := filepath.EvalSymlinks(absolutePath)
		if err != nil {
			return errors.Wrapf(err, "scan: couldn't resolve %v", absolutePath)
		}
		if !sc.active[realPath] {
			return sc.walk(absolutePath, segments, snapshot.ViaSymlink)
		}
		sc.notFollowed(absolutePath, "cycle")
	} else {
		sc.notFollowed(absolutePath, "not following symlinks")
	}
	return sc.builder.AddDirWithAccess(absolutePath, segments, snapshot.ViaSymlink)
}

func (sc *scan) notFollowed(absolutePath, reason string) {
	sc.stat.Counter(stats.ScannerSymlinkNotFollowedCounter).Inc(1)
	sc.log.WithFields(
		log.Fields{
			"path":   absolutePath,
			"reason": reason,
		}).Debug("Not following symlink")
}

func metadataOf(fi os.FileInfo, accessType snapshot.AccessType) snapshot.FileMetadata {
	return snapshot.FileMetadata{
		Size:         uint64(fi.Size()),
		LastModified: fi.ModTime(),
		AccessType:   accessType,
	}
}
