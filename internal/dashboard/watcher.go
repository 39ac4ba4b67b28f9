package dashboard

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports well files that change under the data directory after
// start-up. The loaded project is never reloaded; OnChange is told instead.
type Watcher struct {
	root     string
	pattern  string
	log      *zap.Logger
	fsw      *fsnotify.Watcher
	OnChange func(path string)
}

// NewWatcher watches root and every directory below it.
func NewWatcher(root, pattern string, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{root: root, pattern: pattern, log: logger, fsw: fsw}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

// Run blocks until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		// new subdirectories may hold well files too
		if err := w.addTree(ev.Name); err == nil {
			w.log.Debug("watching", zap.String("path", ev.Name))
		}
	}
	if ev.Has(fsnotify.Chmod) {
		return
	}
	if ok, _ := filepath.Match(w.pattern, filepath.Base(ev.Name)); !ok {
		return
	}
	w.log.Warn("well file changed on disk; restart to reload",
		zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
	if w.OnChange != nil {
		w.OnChange(ev.Name)
	}
}
