package pipeline

import (
	"context"
	"testing"
	"time"
)

func TestNewWatcher(t *testing.T) {
	p, _ := newTestProcessor(t, testDefinitions(), "")
	w, err := NewWatcher(WatcherConfig{DropDir: t.TempDir()}, p, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if w.config.FilePattern != "*.csv" {
		t.Errorf("FilePattern = %q, want default *.csv", w.config.FilePattern)
	}
	if w.config.SettleInterval != 500*time.Millisecond {
		t.Errorf("SettleInterval = %v, want default 500ms", w.config.SettleInterval)
	}
	_ = w.watcher.Close()
}

func TestNewWatcher_RequiresDropDir(t *testing.T) {
	p, _ := newTestProcessor(t, testDefinitions(), "")
	if _, err := NewWatcher(WatcherConfig{}, p, nil); err == nil {
		t.Error("expected error for missing drop directory")
	}
}

func TestWatcher_ProcessesDroppedFile(t *testing.T) {
	dir := t.TempDir()
	p, snk := newTestProcessor(t, testDefinitions(), "")

	w, err := NewWatcher(WatcherConfig{
		DropDir:        dir,
		FilePattern:    "*.csv",
		SettleInterval: 50 * time.Millisecond,
	}, p, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Watch(ctx)
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	writeBatchFile(t, dir, "batch.csv", testBatchCSV)

	// Wait for the settle timer and processing to complete.
	deadline := time.After(5 * time.Second)
	for len(snk.Violations()) == 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for file to be processed")
		case <-time.After(20 * time.Millisecond):
		}
	}

	if got := len(snk.Violations()); got != 3 {
		t.Errorf("sink received %d violations, want 3", got)
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := <-watchErr; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

func TestWatcher_IgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	p, snk := newTestProcessor(t, testDefinitions(), "")

	w, err := NewWatcher(WatcherConfig{
		DropDir:        dir,
		FilePattern:    "*.csv",
		SettleInterval: 30 * time.Millisecond,
	}, p, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Watch(ctx) }()
	time.Sleep(100 * time.Millisecond)

	writeBatchFile(t, dir, "notes.txt", "not a batch")
	time.Sleep(200 * time.Millisecond)

	if got := len(snk.Violations()); got != 0 {
		t.Errorf("sink received %d violations for non-matching file, want 0", got)
	}

	_ = w.Stop()
}
