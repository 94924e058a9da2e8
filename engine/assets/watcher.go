// Package assets watches on-disk assets and hands fresh versions to the
// render thread.
package assets

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/bubble/engine/config"
	"github.com/spaghettifunk/bubble/engine/core"
)

var ErrWatcherClosed = errors.New("config watcher already closed")

// ConfigWatcher re-reads a configuration file whenever it changes. Parsing
// happens on the watcher goroutine; results are picked up with Poll from the
// render thread. Files that fail to parse are logged and skipped.
type ConfigWatcher struct {
	path     string
	debounce time.Duration

	fsnotify *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup

	mutex    sync.Mutex
	pending  *config.Config
	lastErr  error
	isClosed bool
	reloads  uint64
}

// NewConfigWatcher starts watching the directory holding path. Editors often
// replace files instead of writing them in place, so the directory is
// watched and events are filtered by name.
func NewConfigWatcher(path string, debounce time.Duration) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		path:     abs,
		debounce: debounce,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}
	cw.wg.Add(1)
	go cw.start()
	core.LogDebug("watching %s for configuration changes", abs)
	return cw, nil
}

func (cw *ConfigWatcher) start() {
	defer cw.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case e, ok := <-cw.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != cw.path {
				continue
			}
			if !e.Has(fsnotify.Create) && !e.Has(fsnotify.Write) && !e.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(cw.debounce)
			} else {
				timer.Reset(cw.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cw.reload()

		case err, ok := <-cw.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("config watcher: %s", err)

		case <-cw.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := config.Load(cw.path)

	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	if err != nil {
		cw.lastErr = err
		core.LogWarn("ignoring configuration change: %s", err)
		return
	}
	cw.lastErr = nil
	cw.pending = cfg
	cw.reloads++
	core.LogInfo("configuration %s reloaded", cw.path)
}

// Poll returns the newest successfully parsed configuration since the last
// call, or nil.
func (cw *ConfigWatcher) Poll() *config.Config {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	cfg := cw.pending
	cw.pending = nil
	return cfg
}

// LastError is the parse error of the most recent change, if it failed.
func (cw *ConfigWatcher) LastError() error {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	return cw.lastErr
}

func (cw *ConfigWatcher) Reloads() uint64 {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	return cw.reloads
}

func (cw *ConfigWatcher) Path() string {
	return cw.path
}

func (cw *ConfigWatcher) Close() error {
	cw.mutex.Lock()
	if cw.isClosed {
		cw.mutex.Unlock()
		return ErrWatcherClosed
	}
	cw.isClosed = true
	cw.mutex.Unlock()

	close(cw.done)
	cw.wg.Wait()
	return cw.fsnotify.Close()
}
