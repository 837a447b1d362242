package file

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// Watcher reloads a ConfigStore whenever its file changes on disk and
// signals the change on Changes.
//
// The directory is watched rather than the file: editors that save by
// renaming a temporary file would otherwise detach the watch.
type Watcher struct {
	store   *ConfigStore
	fs      *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	log     logger.Scoped
}

// NewWatcher starts watching the store's directory.
func NewWatcher(store *ConfigStore) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(store.Dir()); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		store:   store,
		fs:      fsw,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     logger.For("config"),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Changes delivers one signal per reload burst. Signals coalesce while
// nobody is receiving.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !isConfigEvent(event) {
				continue
			}
			if err := w.store.Load(); err != nil {
				w.log.Warn("reload %s: %v", w.store.Path(), err)
				continue
			}
			w.log.Debug("reloaded %s after %s", w.store.Path(), event.Op)
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
		}
	}
}

// isConfigEvent reports whether event touches the config file contents.
func isConfigEvent(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != FileName {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
