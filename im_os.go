package rancher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.hasen.dev/generic"
	"go.uber.org/zap"
)

// fileCache keeps values derived from files (raw bytes, decoded images, sizes) and
// drops everything cached for a file when fsnotify reports that it changed.
type fileCache struct {
	lock    sync.RWMutex
	content map[string]map[string]any // group by file so one event wipes all of it
	watched map[string]bool

	watcher *fsnotify.Watcher
	done    chan struct{}

	// called after a file is invalidated, from the watcher goroutine
	onInvalidate func(fpath string)
}

func newFileCache() (*fileCache, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("file cache: %w", err)
	}
	c := &fileCache{
		content: make(map[string]map[string]any),
		watched: make(map[string]bool),
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go c.loop()
	return c, nil
}

func (c *fileCache) loop() {
	for {
		select {
		case <-c.done:
			return
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			Log().Warn("file cache watcher", zap.Error(err))
		case e, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) &&
				!e.Has(fsnotify.Remove) && !e.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(e.Name)
			var dropped bool
			generic.WithWriteLock(&c.lock, func() {
				_, dropped = c.content[name]
				delete(c.content, name)
			})
			if dropped {
				Log().Debug("file cache invalidated", zap.String("path", name))
				if c.onInvalidate != nil {
					c.onInvalidate(name)
				}
			}
		}
	}
}

func (c *fileCache) set(fpath string, contentType string, value any) {
	c.lock.Lock()
	defer c.lock.Unlock()

	submap := c.content[fpath]
	if submap == nil {
		submap = make(map[string]any)
	}
	submap[contentType] = value
	c.content[fpath] = submap
}

func fileCacheGet[T any](c *fileCache, fpath string, contentType string) (T, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	var zero T
	submap, ok := c.content[fpath]
	if !ok {
		return zero, ok
	}
	content, ok := submap[contentType]
	if !ok {
		return zero, ok
	}
	typed, ok := content.(T)
	return typed, ok
}

// watch starts watching the file's directory, once per directory.
func (c *fileCache) watch(fpath string) {
	dir := filepath.Dir(fpath)
	c.lock.Lock()
	seen := c.watched[dir]
	c.watched[dir] = true
	c.lock.Unlock()
	if seen {
		return
	}
	if err := c.watcher.Add(dir); err != nil {
		Log().Debug("file cache watch", zap.String("dir", dir), zap.Error(err))
	}
}

// readFile returns the file bytes, cached until the file changes.
func (c *fileCache) readFile(fpath string) ([]byte, error) {
	const key = "content"
	fpath = filepath.Clean(fpath)
	if content, found := fileCacheGet[[]byte](c, fpath, key); found {
		return content, nil
	}
	content, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	c.watch(fpath)
	c.set(fpath, key, content)
	return content, nil
}

func (c *fileCache) close() error {
	select {
	case <-c.done:
		return nil
	default:
		close(c.done)
	}
	return c.watcher.Close()
}
