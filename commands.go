package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pilot_logbook/internal/config"
	"pilot_logbook/internal/daemon"
	"pilot_logbook/internal/database"
	"pilot_logbook/internal/logbook"
	"pilot_logbook/internal/models"
	"pilot_logbook/internal/report"
)

// cli holds the persistent flags and the configuration loaded from them
type cli struct {
	configPath    string
	asOf          string
	categoryClass string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:               "pilot_logbook [file]",
		Short:             "Flight totals and currency from a ForeFlight logbook export",
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runSummary,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Path to config file (YAML)")
	flags.StringVar(&c.asOf, "as-of", "", "Evaluate currency as of this date (YYYY-MM-DD), default today")
	flags.StringVar(&c.categoryClass, "category-class", "", "Category and class for the currency rules")

	rootCmd.AddCommand(c.summaryCmd())
	rootCmd.AddCommand(c.importCmd())
	rootCmd.AddCommand(c.watchCmd())

	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if c.configPath != "" {
		os.Setenv(config.ConfigPathEnv, c.configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.categoryClass != "" {
		cfg.CategoryClass = c.categoryClass
	}
	c.cfg = cfg

	initLogger(cfg, cmd.ErrOrStderr())
	return nil
}

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [file]",
		Short: "Print flight-time totals and currency",
		Long: `Print six flight-time totals and four currency rules.

The logbook is read from the file argument, else from logbook_path in the
configuration, else from the last import in the archive.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runSummary,
	}
}

func (c *cli) runSummary(cmd *cobra.Command, args []string) error {
	today, err := c.today()
	if err != nil {
		return err
	}

	lb, err := c.resolveLogbook(args)
	if err != nil {
		return err
	}

	summary, err := lb.Summarize(today, c.cfg.CategoryClass)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), summary)
}

// resolveLogbook loads the logbook named by args or the config, falling back to the archive
func (c *cli) resolveLogbook(args []string) (*logbook.Logbook, error) {
	if path := c.logbookPath(args); path != "" {
		return logbook.Load(path)
	}

	db, err := database.New(c.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	lb, err := db.LoadLogbook()
	if errors.Is(err, database.ErrNoImports) {
		return nil, fmt.Errorf("no logbook file given and %w", err)
	}
	return lb, err
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a logbook export and archive it in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lb, err := logbook.Load(args[0])
			if err != nil {
				return err
			}

			db, err := database.New(c.cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			imp, err := db.SaveLogbook(args[0], lb)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d aircraft and %d flights from %s (%s)\n",
				imp.AircraftCount, imp.FlightCount, imp.Source, imp.ID)
			return nil
		},
	}
}

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-read the logbook periodically and log currency warnings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.logbookPath(args)
			if path == "" {
				return errors.New("watch needs a logbook file argument or logbook_path in the configuration")
			}

			d, err := daemon.New(daemon.Config{
				LogbookPath:   path,
				DBPath:        c.cfg.DBPath,
				CategoryClass: c.cfg.CategoryClass,
				WatchInterval: c.cfg.WatchInterval,
				WarnDays:      c.cfg.WarnDays,
			})
			if err != nil {
				return err
			}
			if err := d.Start(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			return d.Stop()
		},
	}
}

func (c *cli) logbookPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.cfg.LogbookPath
}

// today returns the --as-of date, or the current local date
func (c *cli) today() (time.Time, error) {
	if c.asOf == "" {
		return models.Civil(time.Now()), nil
	}
	d, err := models.ParseDate(c.asOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q: %w", c.asOf, err)
	}
	return d, nil
}
