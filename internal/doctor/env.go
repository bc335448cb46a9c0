package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scrapewatch/internal/config"
	"scrapewatch/internal/exec"
)

// listDir returns the entries of dir through the runner, so the same check
// works against a remote working directory.
func listDir(ctx context.Context, runner exec.Runner, dir string) ([]string, error) {
	out, err := runner.Run(ctx, "ls -1 "+exec.Quote(dir))
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// WorkerScriptCheck verifies the working directory actually holds the
// worker. Running the dashboard from the wrong directory is the most common
// operator mistake, so this one is fatal.
type WorkerScriptCheck struct {
	Runner exec.Runner
	Cfg    *config.Config
}

func (c *WorkerScriptCheck) Name() string { return "worker_script" }
func (c *WorkerScriptCheck) Fatal() bool  { return true }

func (c *WorkerScriptCheck) Run(ctx context.Context) CheckResult {
	entries, err := listDir(ctx, c.Runner, c.Cfg.Dir)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't read working directory %s", c.Cfg.Dir),
			Suggestion: "Check the directory exists and is readable",
		}
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e] = true
	}
	for _, script := range c.Cfg.Worker.Scripts {
		if present[script] {
			return CheckResult{
				Name:    c.Name(),
				Status:  StatusPass,
				Message: fmt.Sprintf("worker script %s found", script),
			}
		}
	}

	return CheckResult{
		Name:       c.Name(),
		Status:     StatusFail,
		Message:    fmt.Sprintf("No worker script found in %s", c.Cfg.Dir),
		Suggestion: "Run scrapewatch from the scraper's directory, or pass it with --dir",
	}
}

// WorkerOutputCheck verifies the worker has ever produced output. With no
// log and no artifacts there is nothing to monitor yet.
type WorkerOutputCheck struct {
	Runner exec.Runner
	Cfg    *config.Config
}

func (c *WorkerOutputCheck) Name() string { return "worker_output" }
func (c *WorkerOutputCheck) Fatal() bool  { return true }

func (c *WorkerOutputCheck) Run(ctx context.Context) CheckResult {
	entries, err := listDir(ctx, c.Runner, c.Cfg.Dir)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't read working directory %s", c.Cfg.Dir),
			Suggestion: "Check the directory exists and is readable",
		}
	}

	tracked := append(append([]string{}, c.Cfg.Artifacts.ExcelExts...), c.Cfg.Artifacts.CSVExts...)
	for _, e := range entries {
		if e == c.Cfg.Log.File {
			return CheckResult{
				Name:    c.Name(),
				Status:  StatusPass,
				Message: "worker log present",
			}
		}
		ext := strings.ToLower(filepath.Ext(e))
		for _, want := range tracked {
			if strings.EqualFold(ext, want) {
				return CheckResult{
					Name:    c.Name(),
					Status:  StatusPass,
					Message: "worker artifacts present",
				}
			}
		}
	}

	return CheckResult{
		Name:       c.Name(),
		Status:     StatusFail,
		Message:    "The worker has never produced output here",
		Suggestion: "Start the scraper first; the dashboard needs its log or result files",
	}
}

// TmuxCheck verifies tmux is installed. Not fatal: the dashboard still runs
// without it, with session features reported unavailable.
type TmuxCheck struct {
	Runner exec.Runner
}

func (c *TmuxCheck) Name() string { return "tmux" }
func (c *TmuxCheck) Fatal() bool  { return false }

func (c *TmuxCheck) Run(ctx context.Context) CheckResult {
	out, err := c.Runner.Run(ctx, "command -v tmux")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "tmux not found",
			Suggestion: "Install tmux to attach to or stop the worker session",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "tmux found at " + out,
	}
}

// PsCheck verifies the process table is queryable.
type PsCheck struct {
	Runner exec.Runner
}

func (c *PsCheck) Name() string { return "ps" }
func (c *PsCheck) Fatal() bool  { return false }

func (c *PsCheck) Run(ctx context.Context) CheckResult {
	if _, err := c.Runner.Run(ctx, "ps -eo pid,args | head -2"); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "ps not usable",
			Suggestion: "Worker liveness will show as unknown; install procps",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "process table readable",
	}
}

// defaultStaleAfter is how old the last log write may be before the log
// stops counting as growing.
const defaultStaleAfter = 15 * time.Minute

// LogActivityCheck reports whether the worker log is still growing. Reads
// the local filesystem, so it only applies when supervising locally.
type LogActivityCheck struct {
	Path string

	// StaleAfter overrides the default staleness window.
	StaleAfter time.Duration
}

func (c *LogActivityCheck) Name() string { return "log_activity" }
func (c *LogActivityCheck) Fatal() bool  { return false }

func (c *LogActivityCheck) Run(_ context.Context) CheckResult {
	stale := c.StaleAfter
	if stale == 0 {
		stale = defaultStaleAfter
	}

	fi, err := os.Stat(c.Path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "worker log not found",
			Suggestion: "The worker may not have started yet",
		}
	}

	age := time.Since(fi.ModTime())
	if age > stale {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("log last grew %s ago", age.Round(time.Minute)),
			Suggestion: "The worker may be stuck; attach and check: scrapewatch",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("log active, last write %s ago", age.Round(time.Second)),
	}
}

// RemoteCheck reports where a remote destination actually points.
type RemoteCheck struct {
	Destination string
}

func (c *RemoteCheck) Name() string { return "remote" }
func (c *RemoteCheck) Fatal() bool  { return false }

func (c *RemoteCheck) Run(ctx context.Context) CheckResult {
	resolved := exec.ResolveAlias(c.Destination)
	msg := "supervising " + c.Destination
	if resolved != c.Destination {
		msg += " (" + resolved + ")"
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: msg,
	}
}

// StartupChecks returns the checks run before the dashboard loop starts.
func StartupChecks(runner exec.Runner, cfg *config.Config) []Check {
	checks := []Check{
		&WorkerScriptCheck{Runner: runner, Cfg: cfg},
		&WorkerOutputCheck{Runner: runner, Cfg: cfg},
		&TmuxCheck{Runner: runner},
	}
	if cfg.Remote != "" {
		checks = append(checks, &RemoteCheck{Destination: cfg.Remote})
	}
	return checks
}

// AllChecks returns the full diagnostic set for `scrapewatch doctor`.
func AllChecks(runner exec.Runner, cfg *config.Config) []Check {
	checks := append(StartupChecks(runner, cfg), &PsCheck{Runner: runner})
	if cfg.Remote == "" {
		checks = append(checks, &LogActivityCheck{Path: cfg.LogPath()})
	}
	return checks
}
