package config

import "time"

// ConfigFileName is the default config file name, looked up in the worker's
// working directory.
const ConfigFileName = ".scrapewatch.yaml"

// Config represents the complete .scrapewatch.yaml configuration file.
// Every field has a default, so the tool runs without any config file.
type Config struct {
	// Dir is the worker's working directory. Defaults to the invocation
	// directory; the --dir flag overrides it. Every probe receives this
	// explicitly rather than relying on the process cwd.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Session is the tmux session name hosting the worker.
	Session string `yaml:"session" mapstructure:"session"`

	// Remote is an optional ssh destination (user@host or ~/.ssh/config
	// alias). When set, every probe runs on that host.
	Remote string `yaml:"remote" mapstructure:"remote"`

	// Refresh is the dashboard's input-wait timeout; a refresh happens at
	// least once per interval.
	Refresh time.Duration `yaml:"refresh" mapstructure:"refresh"`

	Worker    WorkerConfig    `yaml:"worker" mapstructure:"worker"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Artifacts ArtifactsConfig `yaml:"artifacts" mapstructure:"artifacts"`
	Net       NetConfig       `yaml:"net" mapstructure:"net"`
}

// WorkerConfig identifies the supervised worker process.
type WorkerConfig struct {
	// Scripts are the worker entry-point filenames expected in Dir.
	// At least one must be present for the dashboard to start.
	Scripts []string `yaml:"scripts" mapstructure:"scripts"`

	// Pattern is the process-table substring that identifies the worker.
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
}

// LogConfig describes the worker's append-only log and its marker tokens.
type LogConfig struct {
	// File is the log filename, relative to Dir.
	File string `yaml:"file" mapstructure:"file"`

	// Markers classify log lines into countable categories. The progress
	// tokens are natural-language substrings from the worker's locale,
	// so they are configuration, not code.
	Markers MarkerConfig `yaml:"markers" mapstructure:"markers"`

	// Recent caps how many matching lines are kept per category.
	Recent int `yaml:"recent" mapstructure:"recent"`

	// Width trims displayed log lines to this many runes.
	Width int `yaml:"width" mapstructure:"width"`
}

// MarkerConfig holds one match token per marker category.
type MarkerConfig struct {
	Error        string `yaml:"error" mapstructure:"error"`
	Success      string `yaml:"success" mapstructure:"success"`
	Search       string `yaml:"search" mapstructure:"search"`
	NewItem      string `yaml:"new_item" mapstructure:"new_item"`
	LocationDone string `yaml:"location_done" mapstructure:"location_done"`
}

// ArtifactsConfig describes the worker's tabular output files.
type ArtifactsConfig struct {
	// ExcelExts are spreadsheet extensions (dot included).
	ExcelExts []string `yaml:"excel_exts" mapstructure:"excel_exts"`

	// CSVExts are delimited-text extensions (dot included).
	CSVExts []string `yaml:"csv_exts" mapstructure:"csv_exts"`
}

// NetConfig controls the advisory reachability probe.
type NetConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}
