package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScheduler_Sweep(t *testing.T) {
	dir := t.TempDir()
	processed := filepath.Join(dir, "processed")
	writeBatchFile(t, dir, "a.csv", testBatchCSV)
	writeBatchFile(t, dir, "b.csv", testBatchCSV)
	writeBatchFile(t, dir, "notes.txt", "ignored")

	p, snk := newTestProcessor(t, testDefinitions(), processed)
	s := NewScheduler(SchedulerConfig{
		DropDir:     dir,
		FilePattern: "*.csv",
	}, p, nil)

	n, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Sweep() = %d files, want 2", n)
	}
	if got := len(snk.Violations()); got != 6 {
		t.Errorf("sink received %d violations, want 6", got)
	}

	// Swept files were archived and are not picked up again.
	n, err = s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("second Sweep() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second Sweep() = %d files, want 0", n)
	}
}

func TestScheduler_SweepCancelled(t *testing.T) {
	dir := t.TempDir()
	writeBatchFile(t, dir, "a.csv", testBatchCSV)

	p, _ := newTestProcessor(t, testDefinitions(), "")
	s := NewScheduler(SchedulerConfig{DropDir: dir, FilePattern: "*.csv"}, p, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Sweep(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestScheduler_Prune(t *testing.T) {
	dir := t.TempDir()
	processed := filepath.Join(dir, "processed")
	if err := os.MkdirAll(processed, 0o755); err != nil {
		t.Fatal(err)
	}

	oldFile := writeBatchFile(t, processed, "old.csv", testBatchCSV)
	writeBatchFile(t, processed, "recent.csv", testBatchCSV)

	stale := time.Now().AddDate(0, 0, -40)
	if err := os.Chtimes(oldFile, stale, stale); err != nil {
		t.Fatal(err)
	}

	p, _ := newTestProcessor(t, testDefinitions(), processed)
	s := NewScheduler(SchedulerConfig{
		DropDir:       dir,
		FilePattern:   "*.csv",
		ProcessedDir:  processed,
		RetentionDays: 30,
	}, p, nil)

	deleted, err := s.prune()
	if err != nil {
		t.Fatalf("prune() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("prune() = %d, want 1", deleted)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("expired file still present")
	}
	if _, err := os.Stat(filepath.Join(processed, "recent.csv")); err != nil {
		t.Errorf("recent file was deleted: %v", err)
	}
}

func TestScheduler_StartWithoutSchedule(t *testing.T) {
	p, _ := newTestProcessor(t, testDefinitions(), "")
	s := NewScheduler(SchedulerConfig{DropDir: t.TempDir(), FilePattern: "*.csv"}, p, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler running with empty schedule")
	}
}

func TestScheduler_StartInvalidSchedule(t *testing.T) {
	p, _ := newTestProcessor(t, testDefinitions(), "")
	s := NewScheduler(SchedulerConfig{
		DropDir:     t.TempDir(),
		FilePattern: "*.csv",
		Schedule:    "not a cron expression",
	}, p, nil)

	if err := s.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestScheduler_StartAndStop(t *testing.T) {
	p, _ := newTestProcessor(t, testDefinitions(), "")
	s := NewScheduler(SchedulerConfig{
		DropDir:     t.TempDir(),
		FilePattern: "*.csv",
		Schedule:    "*/5 * * * *",
	}, p, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Error("scheduler not running after Start")
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler still running after Stop")
	}
}
