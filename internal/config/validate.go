package config

import (
	"fmt"
	"strings"
	"time"

	"scrapewatch/internal/errors"
)

// Validate checks config invariants after loading. It returns structured
// errors with fix suggestions rather than bare messages.
func Validate(cfg *Config) error {
	if cfg.Session == "" {
		return errors.New(errors.ErrConfig,
			"Session name cannot be empty",
			"Set 'session' to the tmux session hosting the worker")
	}
	if strings.ContainsAny(cfg.Session, ":.") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Session name %q cannot contain ':' or '.'", cfg.Session),
			"tmux treats these as target separators")
	}

	if cfg.Worker.Pattern == "" {
		return errors.New(errors.ErrConfig,
			"Worker pattern cannot be empty",
			"Set 'worker.pattern' to a substring of the worker's command line")
	}
	if len(cfg.Worker.Scripts) == 0 {
		return errors.New(errors.ErrConfig,
			"No worker scripts configured",
			"List at least one entry-point filename under 'worker.scripts'")
	}

	if cfg.Log.File == "" {
		return errors.New(errors.ErrConfig,
			"Log file cannot be empty",
			"Set 'log.file' to the worker's log filename")
	}
	if cfg.Log.Recent < 1 || cfg.Log.Recent > 20 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("log.recent must be between 1 and 20, got %d", cfg.Log.Recent),
			"Pick a small tail size; the dashboard shows only a few lines")
	}
	if cfg.Log.Width < 20 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("log.width must be at least 20, got %d", cfg.Log.Width),
			"Displayed lines need room for the marker token itself")
	}
	if cfg.Log.Markers.Error == "" {
		return errors.New(errors.ErrConfig,
			"log.markers.error cannot be empty",
			"The error marker drives the dashboard's error panel")
	}

	if cfg.Refresh < time.Second {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh interval too short: %s", cfg.Refresh),
			"Use at least 1s; probes shell out to ps and tmux each cycle")
	}

	if len(cfg.Artifacts.ExcelExts) == 0 && len(cfg.Artifacts.CSVExts) == 0 {
		return errors.New(errors.ErrConfig,
			"No artifact extensions configured",
			"List extensions under 'artifacts.excel_exts' or 'artifacts.csv_exts'")
	}

	return nil
}
