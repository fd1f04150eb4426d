/*
package snapshot describes a portion of a file system as an immutable tree.

The main entry point is TreeBuilder. Scanning code declares files and directories to a
TreeBuilder in any order (AddFile, AddDir) and then calls Build once to get a Snapshot.

A Snapshot is one of three kinds:
 Empty, when nothing was declared.
 A RegularFileSnapshot, when the declared root is a file.
 A DirectorySnapshot, whose children are sorted by name so that two builds of the
 same file system state produce the same tree.

Directories that were never declared but are needed to hold a deeper entry are
synthesized by the builder. Their access type (direct or via a symlink) is looked up
with an AncestorAccessResolver on their own absolute path; it can't be derived from the
entry below them.

Downstream code walks a Snapshot with a HierarchyVisitor. VisitEntry returns Continue or
Stop; Stop ends the walk immediately. RelativePathTracker rebuilds the relative path of
each visited entry.

A built Snapshot has no mutable state and can be walked from many goroutines at once.
A TreeBuilder is meant to be fed by a single goroutine.
*/
package snapshot
