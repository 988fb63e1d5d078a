package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading.
const DefaultDebounce = 500 * time.Millisecond

// ReloadObserver is notified after every reload attempt. titles is the size of
// the published catalog (the previous one when err is non-nil).
type ReloadObserver interface {
	ObserveReload(titles int, err error)
}

// Watcher reloads the catalog from disk when metadata files change and
// publishes the result to a Store.
type Watcher struct {
	store    *Store
	fs       afero.Fs
	root     string
	log      *slog.Logger
	observer ReloadObserver
	debounce time.Duration
}

// NewWatcher returns a Watcher for the catalog under root. observer may be nil.
func NewWatcher(store *Store, fs afero.Fs, root string, log *slog.Logger, observer ReloadObserver) *Watcher {
	return &Watcher{
		store:    store,
		fs:       fs,
		root:     root,
		log:      log,
		observer: observer,
		debounce: DefaultDebounce,
	}
}

// Reload loads a fresh snapshot and publishes it. On failure the current
// snapshot stays in place.
func (w *Watcher) Reload() error {
	snap, err := LoadSnapshot(w.fs, w.root)
	if err != nil {
		w.log.Error("catalog reload failed, keeping previous catalog",
			slog.String("root", w.root),
			slog.String("error", err.Error()))
		if w.observer != nil {
			w.observer.ObserveReload(w.store.Snapshot().Len(), err)
		}
		return err
	}

	w.store.Replace(snap)
	w.log.Info("catalog reloaded",
		slog.Int("titles", snap.Len()),
		slog.Int("episodes", snap.EpisodeCount()))
	if w.observer != nil {
		w.observer.ObserveReload(snap.Len(), nil)
	}
	return nil
}

// Run watches the media root and every title folder until ctx is done.
// Bursts of events are collapsed into one reload.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	watched := make(map[string]bool)
	w.sync(fw, watched)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != MetaFile && !event.Has(fsnotify.Create) {
				continue
			}
			w.log.Debug("catalog change detected",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("catalog watcher error", slog.String("error", err.Error()))
		case <-timer.C:
			_ = w.Reload()
			w.sync(fw, watched)
		}
	}
}

// sync adds the root and any title folder not yet watched.
func (w *Watcher) sync(fw *fsnotify.Watcher, watched map[string]bool) {
	dirs := []string{w.root}
	if folders, err := Folders(w.fs, w.root); err == nil {
		dirs = append(dirs, folders...)
	}
	for _, dir := range dirs {
		if watched[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			w.log.Warn("cannot watch catalog folder", slog.String("path", dir), slog.String("error", err.Error()))
			continue
		}
		watched[dir] = true
	}
}
