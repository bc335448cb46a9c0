package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"scrapewatch/internal/errors"
	"scrapewatch/internal/logscan"
)

var (
	logsFollow bool
	logsTail   int
)

// logsCmd prints worker log statistics, or streams the log with --follow.
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show worker log statistics or follow the log",
	Long: `Scan the worker's log once and print marker statistics, or keep
streaming newly appended lines with --follow.

Following reads only appended bytes per poll, so it is safe on logs that
have grown large. Interrupt with Ctrl+C.

Examples:
  scrapewatch logs
  scrapewatch logs --follow
  scrapewatch logs --tail 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		if a.cfg.Remote != "" {
			return errors.New(errors.ErrLog,
				"Log reading is not available for remote hosts",
				"Run scrapewatch on the worker's host, or attach with: scrapewatch")
		}

		if logsFollow {
			return followLog(a.cfg.LogPath())
		}
		return printLogStats(a)
	},
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "stream newly appended lines")
	logsCmd.Flags().IntVar(&logsTail, "tail", 0, "also print the last N matching progress lines")
	rootCmd.AddCommand(logsCmd)
}

func printLogStats(a *app) error {
	recent := a.cfg.Log.Recent
	if logsTail > 0 {
		recent = logsTail
	}
	scanner := logscan.NewScanner(a.cfg.LogPath(), logscan.Markers{
		Error:        a.cfg.Log.Markers.Error,
		Success:      a.cfg.Log.Markers.Success,
		Search:       a.cfg.Log.Markers.Search,
		NewItem:      a.cfg.Log.Markers.NewItem,
		LocationDone: a.cfg.Log.Markers.LocationDone,
	}, logscan.WithRecent(recent), logscan.WithWidth(a.cfg.Log.Width))

	stats, err := scanner.Scan()
	if err != nil {
		return err
	}

	fmt.Printf("log: %s\n", a.cfg.LogPath())
	fmt.Printf("searches %d, found %d, locations done %d, success %d, errors %d\n",
		stats.SearchCount, stats.ShopsFound, stats.LocationsDone,
		stats.SuccessCount, stats.ErrorCount)
	for _, line := range stats.RecentErrors {
		fmt.Println("  " + line)
	}
	for _, line := range stats.RecentNewItems {
		fmt.Println("  " + line)
	}
	return nil
}

// followLog streams appended lines to stdout until interrupted.
func followLog(path string) error {
	tail := logscan.NewTail(path)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	fmt.Fprintf(os.Stderr, "following %s (Ctrl+C to stop)\n", path)
	for {
		select {
		case <-stop:
			return nil
		case <-ticker.C:
			lines, err := tail.Next()
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrLog,
					"Couldn't read the worker log",
					"Check the log file is readable: "+path)
			}
			for _, line := range lines {
				fmt.Println(line)
			}
		}
	}
}
