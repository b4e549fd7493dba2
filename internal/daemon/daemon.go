package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pilot_logbook/internal/database"
	"pilot_logbook/internal/scheduler"
	"pilot_logbook/internal/tasks"
)

// Daemon represents the watch mode daemon
type Daemon struct {
	ctx       context.Context
	cancel    context.CancelFunc
	scheduler *scheduler.Scheduler
	database  database.Repository
	task      *tasks.CurrencyCheckTask
	done      chan struct{}
}

// Config holds daemon configuration
type Config struct {
	LogbookPath   string        // ForeFlight export to watch
	DBPath        string        // Path to SQLite archive, empty disables archiving
	CategoryClass string        // Category and class for the currency rules
	WatchInterval time.Duration // How often the export is re-read
	WarnDays      int           // Warn when a currency expires within this many days
}

// New creates a new daemon instance
func New(cfg Config) (*Daemon, error) {
	if cfg.LogbookPath == "" {
		return nil, fmt.Errorf("LogbookPath is required")
	}

	interval := time.Hour
	if cfg.WatchInterval > 0 {
		interval = cfg.WatchInterval
	}

	var (
		db      database.Repository
		archive tasks.Archiver
	)
	if cfg.DBPath != "" {
		sqlDB, err := database.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		db, archive = sqlDB, sqlDB
	}

	ctx, cancel := context.WithCancel(context.Background())

	sched := scheduler.New(ctx)

	task := tasks.NewCurrencyCheckTask(tasks.CurrencyCheckConfig{
		LogbookPath:   cfg.LogbookPath,
		CategoryClass: cfg.CategoryClass,
		Interval:      interval,
		WarnDays:      cfg.WarnDays,
	}, archive)
	if err := sched.AddTask(task); err != nil {
		cancel()
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("failed to schedule currency check: %w", err)
	}

	return &Daemon{
		ctx:       ctx,
		cancel:    cancel,
		scheduler: sched,
		database:  db,
		task:      task,
		done:      make(chan struct{}),
	}, nil
}

func (d *Daemon) Start() error {
	slog.Info("Starting daemon", "interval", d.task.Interval())

	d.scheduler.Start()

	// Wait for context cancellation
	go func() {
		<-d.ctx.Done()
		close(d.done)
	}()

	slog.Info("Daemon started successfully")
	return nil
}

// Stop gracefully stops the daemon
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")
	d.cancel()
	<-d.done

	d.scheduler.Stop()

	if d.database != nil {
		if err := d.database.Close(); err != nil {
			slog.Error("Error closing database", "error", err)
		}
	}

	slog.Info("Daemon stopped")
	return nil
}
