package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pilot_logbook/internal/database"
	"pilot_logbook/internal/logbook"
	"pilot_logbook/internal/models"
)

// Archiver stores a freshly loaded logbook
type Archiver interface {
	SaveLogbook(source string, lb *logbook.Logbook) (*database.Import, error)
}

// CurrencyCheckConfig holds the settings of a CurrencyCheckTask
type CurrencyCheckConfig struct {
	LogbookPath   string
	CategoryClass string
	Interval      time.Duration
	WarnDays      int // warn when a rule expires within this many days
}

// CurrencyCheckTask re-reads the logbook export on every run, archives it and logs the pilot's currency
type CurrencyCheckTask struct {
	cfg     CurrencyCheckConfig
	archive Archiver // nil disables archiving

	now  func() time.Time
	load func(path string) (*logbook.Logbook, error)

	mu   sync.Mutex
	last *logbook.Summary
}

// NewCurrencyCheckTask creates a task reading cfg.LogbookPath. archive may be nil.
func NewCurrencyCheckTask(cfg CurrencyCheckConfig, archive Archiver) *CurrencyCheckTask {
	if cfg.CategoryClass == "" {
		cfg.CategoryClass = logbook.DefaultCategoryClass
	}
	return &CurrencyCheckTask{
		cfg:     cfg,
		archive: archive,
		now:     time.Now,
		load:    logbook.Load,
	}
}

func (t *CurrencyCheckTask) Name() string {
	return "currency_check"
}

func (t *CurrencyCheckTask) Interval() time.Duration {
	return t.cfg.Interval
}

// Run loads the whole export again; each run works on its own Logbook
func (t *CurrencyCheckTask) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lb, err := t.load(t.cfg.LogbookPath)
	if err != nil {
		return fmt.Errorf("failed to load logbook: %w", err)
	}

	if t.archive != nil {
		if _, err := t.archive.SaveLogbook(t.cfg.LogbookPath, lb); err != nil {
			// Currency is still reported from the file
			slog.Error("Failed to archive logbook", "path", t.cfg.LogbookPath, "error", err)
		}
	}

	summary, err := lb.Summarize(t.now(), t.cfg.CategoryClass)
	if err != nil {
		return fmt.Errorf("failed to summarize logbook: %w", err)
	}

	t.report(summary)

	t.mu.Lock()
	t.last = summary
	t.mu.Unlock()
	return nil
}

// Last returns the summary of the most recent successful run, or nil
func (t *CurrencyCheckTask) Last() *logbook.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

func (t *CurrencyCheckTask) report(s *logbook.Summary) {
	for _, row := range s.Currency {
		switch {
		case !row.IsCurrent():
			slog.Warn("Not current", "rule", row.Label)
		case row.DaysRemaining <= t.cfg.WarnDays:
			slog.Warn("Currency expiring soon",
				"rule", row.Label,
				"expires", row.Expiration.Format(models.DateLayout),
				"days_remaining", row.DaysRemaining,
			)
		default:
			slog.Info("Current",
				"rule", row.Label,
				"expires", row.Expiration.Format(models.DateLayout),
				"days_remaining", row.DaysRemaining,
			)
		}
	}

	slog.Info("Checked logbook currency",
		"as_of", s.AsOf.Format(models.DateLayout),
		"total_hours", s.Hours[0].Hours,
	)
}
