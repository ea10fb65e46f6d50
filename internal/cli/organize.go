package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/babarot/tidyup/internal/organizer"
	"github.com/babarot/tidyup/internal/report"
	"github.com/babarot/tidyup/internal/schedule"
	"github.com/babarot/tidyup/internal/utils/log"
	"github.com/fatih/color"
)

// Organize runs the engine once, prints the summary and saves the report
// files when enabled.
func (c *CLI) Organize(ctx context.Context) error {
	slog.Debug("cli.organize started")
	defer slog.Debug("cli.organize finished")

	if err := validatePath(c.config.SourceDir); err != nil {
		return err
	}

	engine := organizer.New(c.config,
		organizer.WithLogger(slog.Default()),
		organizer.WithDryRun(c.option.DryRun),
	)
	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	if len(result.Summary.Seeded) > 0 {
		fmt.Fprintf(c.stdout, "Source directory %s did not exist.\n", c.config.SourceDir)
		fmt.Fprintf(c.stdout, "%s Created %d example files; run again to organize them.\n",
			color.GreenString("✓"), len(result.Summary.Seeded))
		return nil
	}

	report.Print(c.stdout, result)

	if !c.config.GenerateReport || c.option.DryRun {
		return nil
	}
	files, err := report.Save(c.config.ReportDir, result)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	log.Important(slog.Default(), "report saved", "json", files.JSON, "csv", files.CSV)
	fmt.Fprintf(c.stdout, "Report saved: %s\n", files.JSON)
	fmt.Fprintf(c.stdout, "Summary saved: %s\n", files.CSV)
	return nil
}

// Schedule runs Organize on the configured interval until interrupted.
func (c *CLI) Schedule(ctx context.Context) error {
	interval, err := schedule.ParseInterval(c.option.Schedule)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "Scheduler started: running every %s. Press Ctrl+C to stop.\n", interval)
	s := schedule.New(interval, schedule.WithLogger(slog.Default()))
	if err := s.Run(ctx, c.Organize); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Scheduler stopped.")
	return nil
}

// validatePath refuses to organize system directories.
func validatePath(path string) error {
	protected := []string{
		"/",
		"/bin",
		"/boot",
		"/dev",
		"/etc",
		"/home",
		"/lib",
		"/proc",
		"/root",
		"/sbin",
		"/sys",
		"/usr",
		"/var",
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for _, p := range protected {
		if absPath == p {
			return fmt.Errorf("refusing to organize protected path: %s", path)
		}
	}

	return nil
}
