package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a drop directory and feeds newly arrived batch files to
// the processor. Writes are debounced per file so a file still being copied
// in is not read half-written.
type Watcher struct {
	processor *Processor
	watcher   *fsnotify.Watcher
	logger    *slog.Logger
	config    WatcherConfig

	mu      sync.Mutex
	pending map[string]*time.Timer
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WatcherConfig configures the drop directory watcher.
type WatcherConfig struct {
	// DropDir is the directory to watch.
	DropDir string

	// FilePattern is the glob matched against base file names (e.g. "*.csv").
	FilePattern string

	// SettleInterval is how long a file must be quiet before processing.
	// Default: 500ms.
	SettleInterval time.Duration
}

// NewWatcher creates a drop directory watcher.
func NewWatcher(cfg WatcherConfig, processor *Processor, logger *slog.Logger) (*Watcher, error) {
	if cfg.DropDir == "" {
		return nil, fmt.Errorf("drop directory is required")
	}
	if cfg.FilePattern == "" {
		cfg.FilePattern = "*.csv"
	}
	if cfg.SettleInterval <= 0 {
		cfg.SettleInterval = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		processor: processor,
		watcher:   fsw,
		logger:    logger.With("component", "pipeline.watcher"),
		config:    cfg,
		pending:   make(map[string]*time.Timer),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Watch blocks, processing files as they arrive, until the context is
// cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.watcher.Add(w.config.DropDir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.config.DropDir, err)
	}

	w.logger.Info("watching drop directory",
		"dir", w.config.DropDir,
		"pattern", w.config.FilePattern,
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcessEvent(event) {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			w.schedule(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", "error", err)
			// Keep watching despite errors.
		}
	}
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// schedule arms (or re-arms) the settle timer for a file. The file is
// processed once no further events arrive within the settle interval.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}

	w.pending[path] = time.AfterFunc(w.config.SettleInterval, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		if _, err := w.processor.ProcessFile(ctx, path); err != nil {
			w.logger.Error("failed to process file", "file", path, "error", err)
		}
	})
}

// shouldProcessEvent reports whether an event refers to a batch file arrival.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	matched, err := filepath.Match(w.config.FilePattern, filepath.Base(event.Name))
	if err != nil || !matched {
		return false
	}
	return true
}
