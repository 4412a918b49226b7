package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultDebounce = 200 * time.Millisecond

type WatchOptions struct {
	// Dirs are watched recursively.
	Dirs []string
	// Files are watched through their parent directory; other entries in
	// that directory are ignored.
	Files []string
	// Debounce is how long to wait after the last change before rebuilding.
	Debounce time.Duration
}

// Watcher calls a rebuild function whenever sources of the site change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dirs     []string
	files    map[string]bool
	debounce time.Duration
	log      logrus.FieldLogger
}

// NewWatcher starts watching opts. Paths that do not exist are skipped.
func NewWatcher(log logrus.FieldLogger, opts WatchOptions) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "could not create watcher")
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool),
		debounce: opts.Debounce,
		log:      log,
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}

	for _, dir := range opts.Dirs {
		dir = filepath.Clean(dir)
		if err := w.addTree(dir); err != nil {
			fw.Close()
			return nil, err
		}
		w.dirs = append(w.dirs, dir)
	}

	for _, file := range opts.Files {
		if file == "" {
			continue
		}
		file = filepath.Clean(file)
		err := fw.Add(filepath.Dir(file))
		switch {
		case errors.Is(err, os.ErrNotExist):
			w.log.WithField("file", file).Warn("not watching file in missing directory")
			continue
		case err != nil:
			fw.Close()
			return nil, errors.Wrapf(err, "could not watch %s", file)
		}
		w.files[file] = true
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		w.log.WithField("dir", path).Debug("watching directory")
		return w.watcher.Add(path)
	})
	if errors.Is(err, os.ErrNotExist) {
		w.log.WithField("dir", root).Warn("not watching missing directory")
		return nil
	}
	return errors.Wrapf(err, "could not watch %s", root)
}

// relevant reports whether a change to path should trigger a rebuild.
func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if w.files[path] {
		return true
	}
	for _, dir := range w.dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, calling rebuild once changes settle. Rebuild
// errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, rebuild func() error) error {
	defer w.watcher.Close()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.log.WithError(err).Warn("could not watch new directory")
					}
				}
			}
			w.log.WithFields(logrus.Fields{"path": ev.Name, "op": ev.Op.String()}).Debug("change detected")
			fire = time.After(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")

		case <-fire:
			fire = nil
			w.log.Info("rebuilding")
			if err := rebuild(); err != nil {
				w.log.WithError(err).Error("rebuild failed")
			}
		}
	}
}
