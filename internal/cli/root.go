package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scrapewatch/internal/dashboard"
	"scrapewatch/internal/errors"
)

// Global flags available to all subcommands.
var (
	configFlag   string
	dirFlag      string
	remoteFlag   string
	intervalFlag string
)

// rootCmd runs the interactive dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "scrapewatch",
	Short: "Supervise a detached scraper worker",
	Long: `Scrapewatch supervises a long-running scraper worker that was started
inside a tmux session and left to run after the terminal went away.

Run it from the worker's directory (or point --dir at it) and it shows a
live dashboard: process liveness, the tmux session, host resources, log
progress, and result files. From the dashboard you can attach to the
session, follow the log, or stop the worker.

Examples:
  scrapewatch
  scrapewatch --dir /srv/scraper
  scrapewatch --remote scraperbox
  scrapewatch status --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New(errors.ErrConfig,
				"The dashboard needs an interactive terminal",
				"Use 'scrapewatch status --json' for scripted output")
		}

		if err := runStartupGate(cmd.Context(), app); err != nil {
			return err
		}

		collector := dashboard.NewCollector(app.runner, app.cfg, app.log)
		return dashboard.Run(collector, app.cfg, app.log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "worker working directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&remoteFlag, "remote", "", "supervise a remote host (user@host or ssh config alias)")
	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "refresh interval (e.g. 10s, 1m)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
