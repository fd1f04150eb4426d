package scan

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Config controls what a Scanner walks.
type Config struct {
	// Follow symlinks to directories and scan what they point to. When false a symlink
	// to a directory is recorded as a directory with no children.
	FollowSymlinks bool `json:"followSymlinks"`

	// filepath.Match patterns; an entry is skipped if its name or its slash separated
	// path relative to the scan root matches one of them.
	Excludes []string `json:"excludes"`

	// Entries in the memo hasher. 0 means hasher.DefaultMemoEntries, < 0 disables it.
	HashCacheSize int `json:"hashCacheSize"`
}

const DefaultConfigName = "default"

var presets = map[string]Config{
	DefaultConfigName: {},
	"follow":          {FollowSymlinks: true},
}

// PresetNames lists the named configs, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetConfig returns a copy of the named preset.
func GetConfig(name string) (Config, error) {
	c, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("Unrecognized scan config %q, expected one of %v", name, PresetNames())
	}
	c.Excludes = append([]string(nil), c.Excludes...)
	return c, nil
}

// Parse overlays the JSON in text on base. Fields missing from text keep base's value.
func Parse(base Config, text []byte) (Config, error) {
	if len(text) == 0 {
		return base, base.Validate()
	}
	c := base
	if err := json.Unmarshal(text, &c); err != nil {
		return Config{}, errors.Wrap(err, "scan: couldn't parse config")
	}
	return c, c.Validate()
}

// LoadFile is Parse with the JSON read from path.
func LoadFile(base Config, path string) (Config, error) {
	text, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "scan: couldn't read config %v", path)
	}
	return Parse(base, text)
}

// Validate rejects malformed exclude patterns.
func (c Config) Validate() error {
	for _, pattern := range c.Excludes {
		if _, err := filepath.Match(pattern, pattern); err != nil {
			return errors.Wrapf(err, "scan: bad exclude pattern %q", pattern)
		}
	}
	return nil
}

func (c Config) excluded(name, relativePath string) bool {
	for _, pattern := range c.Excludes {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, relativePath); ok {
			return true
		}
	}
	return false
}
