package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"

	"dashcap/internal/config"
	"dashcap/internal/logging"
	"dashcap/internal/overlay"
)

const lockFileName = ".dashcap.lock"

// Converter runs a single folder conversion. *overlay.Service satisfies it.
type Converter interface {
	Process(ctx context.Context, req overlay.Request) (*overlay.Result, error)
}

// settleEvent marks a folder whose settle window expired. The sequence number
// lets the loop discard firings that were superseded by newer activity.
type settleEvent struct {
	folder string
	seq    uint64
}

type pendingFolder struct {
	seq   uint64
	timer *time.Timer
}

// Watcher monitors one drop root and converts folders sequentially.
type Watcher struct {
	root      string
	settle    time.Duration
	logger    *slog.Logger
	converter Converter

	lockPath string
	lock     *flock.Flock

	running atomic.Bool

	// pending is only touched from the Run loop goroutine; settle timers
	// communicate through the ready channel instead of sharing state.
	pending map[string]pendingFolder
	nextSeq uint64
	ready   chan settleEvent
}

// New builds a watcher over root using the configured settle window.
func New(cfg *config.Config, root string, converter Converter, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || converter == nil {
		return nil, errors.New("watcher requires config and converter")
	}
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return nil, errors.New("watch root is required")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %q is not a directory", abs)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(abs, lockFileName)
	return &Watcher{
		root:      abs,
		settle:    time.Duration(cfg.Watch.SettleSeconds) * time.Second,
		logger:    logging.NewComponentLogger(logger, "watch"),
		converter: converter,
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
		pending:   make(map[string]pendingFolder),
		ready:     make(chan settleEvent, 16),
	}, nil
}

// Root returns the absolute drop root being watched.
func (w *Watcher) Root() string { return w.root }

// LockPath returns the path of the single-instance lock file.
func (w *Watcher) LockPath() string { return w.lockPath }

// Run watches the root until ctx is cancelled. Each new subdirectory is
// converted once its settle window passes without further activity.
// Conversion failures are logged and the watch continues.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return errors.New("watcher is already running")
	}
	defer w.running.Store(false)

	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire watch lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another watcher already holds %s", w.root)
	}
	defer func() {
		if err := w.lock.Unlock(); err != nil {
			w.logger.Warn("failed to release watch lock", logging.Error(err))
		}
	}()

	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	defer notify.Close()

	if err := notify.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}

	w.logger.Info("watch started",
		logging.String("root", w.root),
		logging.Duration("settle", w.settle),
		logging.String("lock", w.lockPath))

	defer w.stopPending()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil
		case event, open := <-notify.Events:
			if !open {
				return nil
			}
			w.handleEvent(ctx, notify, event)
		case err, open := <-notify.Errors:
			if !open {
				return nil
			}
			w.logger.Warn("watch event error", logging.Error(err))
		case settled := <-w.ready:
			w.convert(ctx, notify, settled)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, notify *fsnotify.Watcher, event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if strings.HasPrefix(filepath.Base(name), ".") {
		return
	}
	parent := filepath.Dir(name)
	if parent == w.root {
		w.handleRootEntry(ctx, notify, name, event)
		return
	}
	// Writes inside a folder that is still settling restart its window.
	if _, pending := w.pending[parent]; pending {
		w.schedule(ctx, parent)
	}
}

func (w *Watcher) handleRootEntry(ctx context.Context, notify *fsnotify.Watcher, name string, event fsnotify.Event) {
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.forget(name)
		return
	}
	if _, pending := w.pending[name]; pending {
		w.schedule(ctx, name)
		return
	}
	if !event.Has(fsnotify.Create) {
		return
	}
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return
	}
	// Watch the folder itself so an in-progress copy keeps deferring
	// conversion until the files stop changing.
	if err := notify.Add(name); err != nil {
		w.logger.Debug("unable to watch folder contents",
			logging.String(logging.FieldFolder, name),
			logging.Error(err))
	}
	w.logger.Info("recording folder detected", logging.String(logging.FieldFolder, name))
	w.schedule(ctx, name)
}

func (w *Watcher) schedule(ctx context.Context, folder string) {
	if prev, ok := w.pending[folder]; ok {
		prev.timer.Stop()
	}
	w.nextSeq++
	seq := w.nextSeq
	timer := time.AfterFunc(w.settle, func() {
		select {
		case w.ready <- settleEvent{folder: folder, seq: seq}:
		case <-ctx.Done():
		}
	})
	w.pending[folder] = pendingFolder{seq: seq, timer: timer}
}

func (w *Watcher) forget(folder string) {
	p, ok := w.pending[folder]
	if !ok {
		return
	}
	p.timer.Stop()
	delete(w.pending, folder)
	w.logger.Debug("folder removed before conversion", logging.String(logging.FieldFolder, folder))
}

func (w *Watcher) convert(ctx context.Context, notify *fsnotify.Watcher, settled settleEvent) {
	p, ok := w.pending[settled.folder]
	if !ok || p.seq != settled.seq {
		return
	}
	delete(w.pending, settled.folder)
	_ = notify.Remove(settled.folder)

	if _, err := os.Stat(settled.folder); err != nil {
		w.logger.Debug("folder vanished before conversion",
			logging.String(logging.FieldFolder, settled.folder))
		return
	}

	log := w.logger.With(logging.String(logging.FieldFolder, settled.folder))
	log.Info("folder settled, starting conversion")
	result, err := w.converter.Process(ctx, overlay.Request{Folder: settled.folder})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Error("conversion failed", logging.Error(err))
		return
	}
	log.Info("conversion finished",
		logging.String("subtitle", result.SubtitlePath),
		logging.String("output_video", result.OutputVideoPath),
		logging.Int("sample_count", result.SampleCount),
		logging.Int("skipped_count", result.SkippedCount))
}

func (w *Watcher) stopPending() {
	for folder, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, folder)
	}
}
