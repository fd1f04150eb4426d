package hasher

import (
	"sync"
	"time"

	"github.com/twitter/groupcache/lru"

	"github.com/twitter/fssnap/common/stats"
	"github.com/twitter/fssnap/snapshot"
)

const DefaultMemoEntries = 64 * 1024

type memoKey struct {
	path         string
	size         uint64
	lastModified int64
}

// MemoHasher remembers the hashes of recently seen (path, size, mtime) triples so a
// file declared again under the same metadata isn't read twice within a scan.
// It is safe for concurrent use; callers create one per scan.
type MemoHasher struct {
	mu       sync.Mutex
	cache    *lru.Cache
	delegate snapshot.ContentHasher
	stat     stats.StatsReceiver
}

// NewMemoHasher wraps delegate with an LRU of at most maxEntries hashes.
// maxEntries <= 0 means DefaultMemoEntries.
func NewMemoHasher(delegate snapshot.ContentHasher, maxEntries int, stat stats.StatsReceiver) *MemoHasher {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoEntries
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &MemoHasher{
		cache:    lru.New(maxEntries),
		delegate: delegate,
		stat:     stat.Scope("hasher"),
	}
}

func (m *MemoHasher) Hash(absolutePath string, size uint64, lastModified time.Time) (snapshot.ContentHash, error) {
	key := memoKey{path: absolutePath, size: size, lastModified: lastModified.UnixNano()}

	m.mu.Lock()
	cached, ok := m.cache.Get(key)
	m.mu.Unlock()
	if ok {
		m.stat.Counter(stats.HasherCacheHitCounter).Inc(1)
		return cached.(snapshot.ContentHash), nil
	}

	m.stat.Counter(stats.HasherCacheMissCounter).Inc(1)
	hash, err := m.delegate.Hash(absolutePath, size, lastModified)
	if err != nil {
		return hash, err
	}
	m.mu.Lock()
	m.cache.Add(key, hash)
	m.mu.Unlock()
	return hash, nil
}

// Len is the number of remembered hashes.
func (m *MemoHasher) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}
