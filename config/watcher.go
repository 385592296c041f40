package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// ReloadFunc receives the freshly loaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(cfg *Config, err error)

// Watcher watches the configuration files and reloads on change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	startDir string
	files    map[string]bool
	debounce time.Duration
	onReload ReloadFunc
	logger   *logrus.Entry

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches the directories of every file in sources, plus the
// global config directory. Changes to any of those files, or to a project
// config created later in startDir, trigger a reload from startDir after
// debounce has passed without further writes.
func NewWatcher(startDir string, sources []string, debounce time.Duration, logger *logrus.Entry, onReload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	if abs, err := filepath.Abs(startDir); err == nil {
		startDir = abs
	}

	w := &Watcher{
		watcher:  fw,
		startDir: startDir,
		files:    map[string]bool{},
		debounce: debounce,
		onReload: onReload,
		logger:   logger,
	}

	dirs := map[string]bool{startDir: true}
	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			continue
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	if global := GlobalConfigPath(); global != "" {
		w.files[global] = true
		dirs[filepath.Dir(global)] = true
	}
	for _, name := range append(append([]string{}, ConfigNames...), overrideNames...) {
		w.files[filepath.Join(startDir, name)] = true
	}

	added := 0
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			logger.WithError(err).Debugf("Not watching %s", dir)
			continue
		}
		added++
	}
	if added == 0 {
		fw.Close()
		return nil, fsnotify.ErrNonExistentWatch
	}

	return w, nil
}

// Start processes file events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.Close()
			return
		}
	}
}

// schedule (re)arms the reload timer so a burst of writes reloads once.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.startDir)
	if err != nil {
		w.logger.WithError(err).Warn("Config reload failed")
	} else {
		w.logger.WithField("sources", cfg.Sources()).Info("Config reloaded")
	}
	if w.onReload != nil {
		w.onReload(cfg, err)
	}
}

// Close stops the watcher and any pending reload.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
