// Package temp makes hierarchical temporary directories and lays out small file
// trees in them. Tests build their scan fixtures with it, and the CLI uses it for
// scratch space.
package temp

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Create a new TempDir in directory dir with prefix string.
func NewTempDir(dir, prefix string) (*TempDir, error) {
	p, err := ioutil.TempDir(dir, prefix)
	if err != nil {
		return nil, err
	}
	return &TempDir{Dir: p}, nil
}

// TempDir is a temporary directory, that may live under other temporary directories.
type TempDir struct {
	Dir string
}

// TempDirDefault creates a TempDir rooted in the default temp dir
func TempDirDefault() (*TempDir, error) {
	tmpDir, err := ioutil.TempDir("", "fssnap-tmp-")
	if err != nil {
		return nil, errors.Wrap(err, "temp.TempDirDefault: couldn't ioutil.TempDir")
	}
	// Resolve /tmp style symlinks so paths compare equal to what a scan reports.
	if real, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = real
	}
	return &TempDir{tmpDir}, nil
}

// Create a new directory with a fixed name (this lets us structure our temp files)
func (d *TempDir) FixedDir(name string) (*TempDir, error) {
	if strings.ContainsRune(name, os.PathSeparator) {
		return nil, errors.Errorf("temp.TempDir.FixedDir: Invalid name %v", name)
	}
	p := filepath.Join(d.Dir, name)
	if err := os.MkdirAll(p, 0777); err != nil {
		return nil, err
	}
	return &TempDir{p}, nil
}

// Create a new temporary directory under d
func (d *TempDir) TempDir(prefix string) (*TempDir, error) {
	return NewTempDir(d.Dir, prefix)
}

// Create a new temporary file under d
func (d *TempDir) TempFile(prefix string) (*os.File, error) {
	return ioutil.TempFile(d.Dir, prefix)
}

// Path joins slash separated rel onto d.
func (d *TempDir) Path(rel string) string {
	return filepath.Join(d.Dir, filepath.FromSlash(rel))
}

// WriteFile writes data to rel under d, creating parent directories.
func (d *TempDir) WriteFile(rel string, data []byte) error {
	p := d.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0777); err != nil {
		return err
	}
	return ioutil.WriteFile(p, data, 0666)
}

// Mkdir creates rel under d with its parents.
func (d *TempDir) Mkdir(rel string) error {
	return os.MkdirAll(d.Path(rel), 0777)
}

// Symlink creates a symlink at rel under d pointing to target, as given.
func (d *TempDir) Symlink(target, rel string) error {
	p := d.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0777); err != nil {
		return err
	}
	return os.Symlink(target, p)
}

// Remove deletes d and everything under it.
func (d *TempDir) Remove() error {
	return os.RemoveAll(d.Dir)
}
