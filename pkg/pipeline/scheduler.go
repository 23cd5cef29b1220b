package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically sweeps the drop directory for files the watcher
// missed (files present before startup, or dropped during a watcher outage)
// and prunes processed files past their retention.
type Scheduler struct {
	processor *Processor
	cron      *cron.Cron
	logger    *slog.Logger
	config    SchedulerConfig

	mu      sync.Mutex
	running bool
}

// SchedulerConfig configures the sweep scheduler.
type SchedulerConfig struct {
	// DropDir is the directory swept for unprocessed files.
	DropDir string

	// FilePattern is the glob matched against base file names.
	FilePattern string

	// Schedule is a standard cron expression. Empty disables the scheduler.
	Schedule string

	// ProcessedDir is the directory pruned by retention.
	ProcessedDir string

	// RetentionDays is how long processed files are kept. 0 disables pruning.
	RetentionDays int
}

// NewScheduler creates a sweep scheduler.
func NewScheduler(cfg SchedulerConfig, processor *Processor, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		processor: processor,
		cron:      cron.New(),
		logger:    logger.With("component", "pipeline.scheduler"),
		config:    cfg,
	}
}

// Start begins scheduled sweeps. If no schedule is configured the scheduler
// does nothing.
//
// Common cron expressions:
//   - "*/5 * * * *" - Every 5 minutes
//   - "0 3 * * *"   - Daily at 3 AM
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.Schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.config.Schedule, err)
	}

	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("sweep scheduler started",
		"schedule", s.config.Schedule,
		"retention_days", s.config.RetentionDays,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("sweep scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// runSweep executes one sweep cycle.
func (s *Scheduler) runSweep(ctx context.Context) {
	processed, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("sweep failed", "error", err)
		return
	}
	if processed > 0 {
		s.logger.Info("sweep completed", "files_processed", processed)
	} else {
		s.logger.Debug("sweep completed, no files found")
	}

	if s.config.RetentionDays > 0 && s.config.ProcessedDir != "" {
		pruned, err := s.prune()
		if err != nil {
			s.logger.Error("retention pruning failed", "error", err)
			return
		}
		if pruned > 0 {
			s.logger.Info("retention pruning completed", "files_deleted", pruned)
		}
	}
}

// Sweep processes every matching file currently in the drop directory and
// returns the number of files processed.
func (s *Scheduler) Sweep(ctx context.Context) (int, error) {
	matches, err := filepath.Glob(filepath.Join(s.config.DropDir, s.config.FilePattern))
	if err != nil {
		return 0, fmt.Errorf("failed to scan drop directory: %w", err)
	}

	var processed int
	for _, path := range matches {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if _, err := s.processor.ProcessFile(ctx, path); err != nil {
			s.logger.Error("failed to process swept file", "file", path, "error", err)
			continue
		}
		processed++
	}
	return processed, nil
}

// prune deletes processed files older than the retention window and returns
// the number deleted.
func (s *Scheduler) prune() (int, error) {
	cutoff := time.Now().AddDate(0, 0, -s.config.RetentionDays)

	entries, err := os.ReadDir(s.config.ProcessedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read processed directory: %w", err)
	}

	var deleted int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.config.ProcessedDir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.logger.Warn("failed to delete expired file", "file", path, "error", err)
				continue
			}
			deleted++
		}
	}
	return deleted, nil
}
