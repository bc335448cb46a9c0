package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scrapewatch/internal/dashboard"
	"scrapewatch/internal/errors"
	"scrapewatch/internal/ui"
)

var statusJSON bool

// StatusOutput is the machine-readable form of one report.
type StatusOutput struct {
	GeneratedAt time.Time `json:"generated_at"`
	Target      string    `json:"target"`
	Healthy     bool      `json:"healthy"`

	Process struct {
		Running   bool       `json:"running"`
		PID       int        `json:"pid,omitempty"`
		StartedAt *time.Time `json:"started_at,omitempty"`
		Ambiguous bool       `json:"ambiguous,omitempty"`
		Matches   int        `json:"matches,omitempty"`
		Error     string     `json:"error,omitempty"`
	} `json:"process"`

	Session struct {
		Exists   bool   `json:"exists"`
		Name     string `json:"name"`
		Attached bool   `json:"attached"`
		Error    string `json:"error,omitempty"`
	} `json:"session"`

	Resources struct {
		CPUPercent  float64  `json:"cpu_percent"`
		MemUsed     int64    `json:"mem_used_bytes"`
		MemTotal    int64    `json:"mem_total_bytes"`
		SwapUsed    int64    `json:"swap_used_bytes"`
		SwapTotal   int64    `json:"swap_total_bytes"`
		DiskUsed    int64    `json:"disk_used_bytes"`
		DiskTotal   int64    `json:"disk_total_bytes"`
		Unavailable []string `json:"unavailable,omitempty"`
	} `json:"resources"`

	Log struct {
		Errors        int      `json:"errors"`
		Successes     int      `json:"successes"`
		Searches      int      `json:"searches"`
		ShopsFound    int      `json:"shops_found"`
		LocationsDone int      `json:"locations_done"`
		RecentErrors  []string `json:"recent_errors,omitempty"`
		Error         string   `json:"error,omitempty"`
	} `json:"log"`

	Artifacts struct {
		ExcelCount int    `json:"excel_count"`
		CSVCount   int    `json:"csv_count"`
		Latest     string `json:"latest,omitempty"`
		LatestRows *int   `json:"latest_rows,omitempty"`
		Error      string `json:"error,omitempty"`
	} `json:"artifacts"`

	Network struct {
		URL       string `json:"url"`
		Reachable bool   `json:"reachable"`
		LatencyMS int64  `json:"latency_ms"`
	} `json:"network"`
}

// statusCmd prints one report and exits, for scripts and cron.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print one supervision report and exit",
	Long: `Collect a single report without starting the dashboard.

The default output is a short human-readable summary. With --json the full
report is printed as a single JSON object, suitable for scripts.

Examples:
  scrapewatch status
  scrapewatch status --json
  scrapewatch status --remote scraperbox --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		collector := dashboard.NewCollector(a.runner, a.cfg, a.log)
		r := collector.Collect(cmd.Context())

		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(buildStatusOutput(r))
		}

		printStatusSummary(r)
		if !r.Healthy() {
			return errors.New(errors.ErrProcess,
				"Worker is not running and its session is gone",
				"Check the log for a crash, then restart the worker")
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(statusCmd)
}

func buildStatusOutput(r *dashboard.Report) StatusOutput {
	var out StatusOutput
	out.GeneratedAt = r.GeneratedAt
	out.Target = r.Target
	if out.Target == "" {
		out.Target = "local"
	}
	out.Healthy = r.Healthy()

	out.Process.Running = r.Process.Running
	out.Process.PID = r.Process.PID
	if !r.Process.StartedAt.IsZero() {
		t := r.Process.StartedAt
		out.Process.StartedAt = &t
	}
	out.Process.Ambiguous = r.Process.Ambiguous
	out.Process.Matches = r.Process.Matches
	if r.ProcessErr != nil {
		out.Process.Error = r.ProcessErr.Error()
	}

	out.Session.Exists = r.Session.Exists
	out.Session.Name = r.Session.Name
	out.Session.Attached = r.Session.Attached
	if r.SessionErr != nil {
		out.Session.Error = r.SessionErr.Error()
	}

	out.Resources.CPUPercent = r.Resources.CPUPercent
	out.Resources.MemUsed = r.Resources.MemUsed
	out.Resources.MemTotal = r.Resources.MemTotal
	out.Resources.SwapUsed = r.Resources.SwapUsed
	out.Resources.SwapTotal = r.Resources.SwapTotal
	out.Resources.DiskUsed = r.Resources.DiskUsed
	out.Resources.DiskTotal = r.Resources.DiskTotal
	out.Resources.Unavailable = r.Resources.Unavailable

	out.Log.Errors = r.Log.ErrorCount
	out.Log.Successes = r.Log.SuccessCount
	out.Log.Searches = r.Log.SearchCount
	out.Log.ShopsFound = r.Log.ShopsFound
	out.Log.LocationsDone = r.Log.LocationsDone
	out.Log.RecentErrors = r.Log.RecentErrors
	if r.LogErr != nil {
		out.Log.Error = r.LogErr.Error()
	}

	out.Artifacts.ExcelCount = r.Artifacts.ExcelCount
	out.Artifacts.CSVCount = r.Artifacts.CSVCount
	if r.Artifacts.Latest != nil {
		out.Artifacts.Latest = r.Artifacts.Latest.Path
		out.Artifacts.LatestRows = r.Artifacts.Latest.RowCount
	}
	if r.ArtifactsErr != nil {
		out.Artifacts.Error = r.ArtifactsErr.Error()
	}

	out.Network.URL = r.Net.URL
	out.Network.Reachable = r.Net.Reachable
	out.Network.LatencyMS = r.Net.Latency.Milliseconds()
	return out
}

func printStatusSummary(r *dashboard.Report) {
	if r.Process.Running {
		fmt.Printf("%s worker running (pid %d)\n", ui.Paint(ui.ColorSuccess, ui.SymbolSuccess), r.Process.PID)
	} else {
		fmt.Printf("%s worker not running\n", ui.Paint(ui.ColorError, ui.SymbolFail))
	}
	if r.Session.Exists {
		fmt.Printf("%s session '%s' alive\n", ui.Paint(ui.ColorSuccess, ui.SymbolSuccess), r.Session.Name)
	} else {
		fmt.Printf("%s no session '%s'\n", ui.Paint(ui.ColorMuted, ui.SymbolPending), r.Session.Name)
	}
	if r.LogErr == nil {
		fmt.Printf("  searches %d, found %d, locations done %d, errors %d\n",
			r.Log.SearchCount, r.Log.ShopsFound, r.Log.LocationsDone, r.Log.ErrorCount)
	}
	if r.ArtifactsErr == nil {
		fmt.Printf("  %d spreadsheet and %d csv files\n",
			r.Artifacts.ExcelCount, r.Artifacts.CSVCount)
	}
}
