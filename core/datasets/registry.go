// Package datasets maintains the registry of benchmark datasets and their
// loaders. Loaded datasets are cached with a cost-aware policy since triple
// sets vary in size by orders of magnitude.
package datasets

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dgraph-io/ristretto"
	"github.com/gobwas/glob"

	"github.com/weiweivv2222/pykeen/core/triples"
)

// Loader produces a dataset on demand. Loaders must be pure: the registry
// may call them any number of times.
type Loader func() (*triples.Dataset, error)

const (
	cacheNumCounters = 1 << 12
	cacheMaxCost     = 1 << 30 // 1 GiB of triples
	cacheBufferItems = 64

	// bytesPerTriple approximates the in-memory cost of one triple.
	bytesPerTriple = 12
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Loader)

	cacheOnce sync.Once
	cache     *ristretto.Cache
)

func loadCache() *ristretto.Cache {
	cacheOnce.Do(func() {
		cache, _ = ristretto.NewCache(&ristretto.Config{
			NumCounters: cacheNumCounters,
			MaxCost:     cacheMaxCost,
			BufferItems: cacheBufferItems,
		})
	})
	return cache
}

// Register adds a named loader. Re-registering a name replaces its loader.
func Register(name string, loader Loader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = loader
}

// Names returns every registered dataset name in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Match returns the registered names matching a glob pattern, sorted.
func Match(pattern string) ([]string, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("dataset pattern %q: %w", pattern, err)
	}
	var names []string
	for _, name := range Names() {
		if matcher.Match(name) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Get loads a dataset by name, serving repeated loads from the cache.
func Get(name string) (*triples.Dataset, error) {
	registryMu.RLock()
	loader, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownDataset)
	}

	c := loadCache()
	if cached, ok := c.Get(name); ok {
		return cached.(*triples.Dataset), nil
	}

	d, err := loader()
	if err != nil {
		return nil, fmt.Errorf("%q: %w: %v", name, ErrDatasetLoad, err)
	}
	cost := int64(len(d.AllTriples()))*bytesPerTriple + 64
	c.Set(name, d, cost)
	return d, nil
}
