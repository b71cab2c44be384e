package game

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WorldWatcher watches a world file and reports when it changes, so a
// running session can pick up edits without restarting.
type WorldWatcher struct {
	path    string
	reloads chan struct{}
	stop    chan struct{}
	watcher *fsnotify.Watcher
	lastMod time.Time
}

// WatchWorld starts watching the directory containing path. Editors replace
// files rather than writing in place, so the directory is watched and events
// are filtered down to the world file itself.
func WatchWorld(path string) (*WorldWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	var modTime time.Time
	if stat, err := os.Stat(path); err == nil {
		modTime = stat.ModTime()
	}

	w := &WorldWatcher{
		path:    path,
		reloads: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		watcher: watcher,
		lastMod: modTime,
	}
	go w.loop()
	return w, nil
}

// Reloads delivers one value per observed change. The channel is closed when
// the watcher shuts down.
func (w *WorldWatcher) Reloads() <-chan struct{} { return w.reloads }

func (w *WorldWatcher) Close() error {
	close(w.stop)
	return w.watcher.Close()
}

func (w *WorldWatcher) loop() {
	defer close(w.reloads)
	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			stat, err := os.Stat(w.path)
			if err != nil {
				continue
			}
			if !stat.ModTime().After(w.lastMod) {
				continue
			}
			w.lastMod = stat.ModTime()

			// Let the editor finish writing before readers reload.
			time.Sleep(100 * time.Millisecond)

			select {
			case w.reloads <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("world watcher: %v", err)
		}
	}
}
