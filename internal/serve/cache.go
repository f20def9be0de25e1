package serve

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the number of parsed directories held in memory.
const cacheSize = 16

// dataCache holds parsed viewer data keyed by absolute directory path.
// A filesystem watcher drops entries when anything under them changes, so
// re-running an analysis shows up on the next request without a restart.
type dataCache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *ViewerData]
	watcher *fsnotify.Watcher
	roots   map[string]string // watched dir -> cache key that owns it
}

func newDataCache() (*dataCache, error) {
	entries, err := lru.New[string, *ViewerData](cacheSize)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	c := &dataCache{
		entries: entries,
		watcher: watcher,
		roots:   make(map[string]string),
	}
	go c.run()
	return c, nil
}

// Load returns the viewer data for dir, parsing it on a cache miss.
func (c *dataCache) Load(dir string) (*ViewerData, error) {
	key, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if data, ok := c.entries.Get(key); ok {
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	data, err := loadViewerData(key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries.Add(key, data)
	c.watch(key, key)
	// Subdirectory writes do not bubble up to the root watch, so each
	// analyzed repo dir gets its own.
	if subs, err := os.ReadDir(key); err == nil {
		for _, sub := range subs {
			if sub.IsDir() {
				c.watch(filepath.Join(key, sub.Name()), key)
			}
		}
	}
	c.mu.Unlock()

	return data, nil
}

// watch registers dir under the cache key. Watch errors are ignored: a dir
// that cannot be watched just misses invalidation, it does not break serving.
func (c *dataCache) watch(dir, key string) {
	if _, ok := c.roots[dir]; ok {
		return
	}
	if err := c.watcher.Add(dir); err != nil {
		return
	}
	c.roots[dir] = key
}

// run drops cache entries as change events arrive. It exits when the
// watcher closes.
func (c *dataCache) run() {
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			c.invalidate(event.Name)
		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// invalidate drops the entry owning the changed path along with its watch
// registrations. The next Load re-parses and re-registers, which also picks
// up subdirectories created since.
func (c *dataCache) invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, dir := range []string{filepath.Dir(name), name} {
		key, ok := c.roots[dir]
		if !ok {
			continue
		}
		c.entries.Remove(key)
		for watched, owner := range c.roots {
			if owner == key {
				delete(c.roots, watched)
			}
		}
		return
	}
}

// Close stops the watcher and its event loop.
func (c *dataCache) Close() error {
	return c.watcher.Close()
}
