package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"veridian-hq/verdict/pkg/cli"
	"veridian-hq/verdict/pkg/pipeline"
)

var watchFlags struct {
	sweepOnStart bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the drop directory and process files as they arrive",
	Long: `Run verdict as a daemon that watches the configured drop directory.

New batch files matching the configured pattern are processed as they arrive.
A cron sweep picks up files the watcher missed and prunes processed files
past their retention window. When metrics are enabled a Prometheus endpoint
is served on the configured address.

Examples:
  # Watch with the default config
  verdict watch

  # Watch with a custom config, processing pre-existing files first
  verdict watch --config /etc/verdict/config.yaml --sweep-on-start`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchFlags.sweepOnStart, "sweep-on-start", true,
		"process files already in the drop directory at startup")
}

func runWatch(cmd *cobra.Command, args []string) error {
	deps, err := buildRuntime(true, 0)
	if err != nil {
		return err
	}
	defer deps.Close()

	cfg := deps.cfg
	logger := deps.logger
	ctx := cli.SetupSignalHandler()

	if deps.collector != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", deps.collector.Handler())
		srv := &http.Server{
			Addr:         cfg.Telemetry.Metrics.ListenAddress,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("metrics endpoint listening", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	scheduler := pipeline.NewScheduler(pipeline.SchedulerConfig{
		DropDir:       cfg.Ingest.DropDir,
		FilePattern:   cfg.Ingest.FilePattern,
		Schedule:      cfg.Ingest.SweepSchedule,
		ProcessedDir:  cfg.Ingest.ProcessedDir,
		RetentionDays: cfg.Ingest.RetentionDays,
	}, deps.processor, logger)

	if watchFlags.sweepOnStart {
		if n, err := scheduler.Sweep(ctx); err != nil {
			logger.Error("startup sweep failed", "error", err)
		} else if n > 0 {
			logger.Info("startup sweep completed", "files_processed", n)
		}
	}

	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer scheduler.Stop()

	watcher, err := pipeline.NewWatcher(pipeline.WatcherConfig{
		DropDir:     cfg.Ingest.DropDir,
		FilePattern: cfg.Ingest.FilePattern,
	}, deps.processor, logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer watcher.Stop()

	fmt.Printf("Watching %s for %s files. Press Ctrl+C to stop.\n",
		cfg.Ingest.DropDir, cfg.Ingest.FilePattern)

	if err := watcher.Watch(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}
