package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"scrapewatch/internal/config"
	"scrapewatch/internal/errors"
	"scrapewatch/internal/ui"
)

var initForce bool

// configTemplate is the starter config. Values here mirror the built-in
// defaults; durations stay as strings so the file round-trips through the
// loader unchanged.
const configTemplate = `# scrapewatch configuration
# Place this file in the worker's working directory.

# tmux session hosting the worker
session: scraper

# supervise a remote host instead of this one (user@host or ssh alias)
# remote: scraperbox

# dashboard refresh interval
refresh: 30s

worker:
  # entry-point scripts expected in the working directory
  scripts:
    - google_maps_scraper_turbo_firefox.py
    - google_maps_scraper_detailed.py
    - google_maps_scraper_kaohsiung_precision.py
  # process-table substring identifying the worker
  pattern: google_maps_scraper

log:
  file: scraper_turbo_firefox.log
  # substrings that classify log lines
  markers:
    error: ERROR
    success: SUCCESS
    search: "搜尋"
    new_item: "找到"
    location_done: "完成"
  # how many recent matching lines to keep per category
  recent: 3
  # trim displayed lines to this many characters
  width: 120

artifacts:
  excel_exts: [".xlsx"]
  csv_exts: [".csv"]

net:
  url: https://maps.google.com
  timeout: 5s
`

// initCmd writes a starter config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a " + config.ConfigFileName + " starter config",
	Long: `Write a commented starter configuration into the working directory.

The generated file mirrors the built-in defaults, so it changes nothing
until edited. Refuses to overwrite an existing file unless --force.

Examples:
  scrapewatch init
  scrapewatch init --dir /srv/scraper
  scrapewatch init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dirFlag
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "Couldn't determine the current directory")
			}
			dir = cwd
		}
		path := filepath.Join(dir, config.ConfigFileName)

		if _, err := os.Stat(path); err == nil && !initForce {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+path,
				"Pass --force to overwrite it")
		}

		// The template must stay parseable; catch drift before writing.
		var probe map[string]interface{}
		if err := yaml.Unmarshal([]byte(configTemplate), &probe); err != nil {
			return errors.Wrap(err, "Built-in config template is invalid")
		}

		if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't write "+path,
				"Check the directory is writable")
		}

		fmt.Printf("%s wrote %s\n", ui.SymbolSuccess, path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}
