package cli

import (
	"github.com/spf13/cobra"

	"github.com/twitter/fssnap/common/stats"
	"github.com/twitter/fssnap/snapshot"
	"github.com/twitter/fssnap/snapshot/access"
	"github.com/twitter/fssnap/snapshot/hasher"
	"github.com/twitter/fssnap/snapshot/intern"
	"github.com/twitter/fssnap/snapshot/scan"
)

// DefaultInjector scans the local file system: sha256 content hashes behind an
// LRU memo, a shared string pool and lstat for ancestor directories.
type DefaultInjector struct{}

func NewDefaultInjector() *DefaultInjector {
	return &DefaultInjector{}
}

func (i *DefaultInjector) RegisterFlags(rootCmd *cobra.Command) {}

// Inject builds fresh collaborators, so nothing is cached from one scan to the next.
func (i *DefaultInjector) Inject(config scan.Config, stat stats.StatsReceiver) (*scan.Scanner, error) {
	var h snapshot.ContentHasher = hasher.NewFileHasher(stat)
	if config.HashCacheSize >= 0 {
		h = hasher.NewMemoHasher(h, config.HashCacheSize, stat)
	}
	return scan.NewScanner(config, h, intern.NewPool(), access.NewLstatResolver(), stat), nil
}
