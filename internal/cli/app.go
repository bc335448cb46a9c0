package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"scrapewatch/internal/config"
	"scrapewatch/internal/doctor"
	"scrapewatch/internal/errors"
	"scrapewatch/internal/exec"
	"scrapewatch/internal/logger"
	"scrapewatch/internal/ui"
)

// app carries the resolved config and runner shared by all subcommands.
type app struct {
	cfg    *config.Config
	runner exec.Runner
	log    logger.Logger
}

// buildApp resolves flags into a ready-to-use app: working directory, config
// file, flag overrides, and the local or remote runner.
func buildApp() (*app, error) {
	dir := dirFlag
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "Couldn't determine the current directory")
		}
		dir = cwd
	}

	cfg, err := config.Load(configFlag, dir)
	if err != nil {
		return nil, err
	}

	if remoteFlag != "" {
		cfg.Remote = remoteFlag
	}
	if intervalFlag != "" {
		parsed, err := time.ParseDuration(intervalFlag)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Invalid interval: "+intervalFlag,
				"Use a duration like 10s, 30s, or 1m")
		}
		if parsed < time.Second {
			return nil, errors.New(errors.ErrConfig,
				"Interval too short",
				"Minimum refresh interval is 1s")
		}
		cfg.Refresh = parsed
	}

	var runner exec.Runner = exec.NewLocal()
	if cfg.Remote != "" {
		runner = exec.NewRemote(cfg.Remote)
	}

	return &app{
		cfg:    cfg,
		runner: runner,
		log:    logger.Default(),
	}, nil
}

// runStartupGate runs the fatal environment checks. Warnings are printed and
// tolerated; a failed fatal check stops the tool with exit code 1.
func runStartupGate(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	checks := doctor.StartupChecks(a.runner, a.cfg)
	fatal := false
	for _, check := range checks {
		result := check.Run(ctx)
		switch {
		case result.Status == doctor.StatusFail && check.Fatal():
			fatal = true
			fmt.Fprintf(os.Stderr, "%s %s\n", ui.Paint(ui.ColorError, ui.SymbolFail), result.Message)
			if result.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "  %s\n", result.Suggestion)
			}
		case result.Status != doctor.StatusPass:
			fmt.Fprintf(os.Stderr, "%s %s\n", ui.Paint(ui.ColorWarning, ui.SymbolWarn), result.Message)
		}
	}
	if fatal {
		return errors.New(errors.ErrConfig,
			"Startup checks failed",
			"Run 'scrapewatch doctor' for the full diagnosis")
	}
	return nil
}
