package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"scrapewatch/internal/errors"
)

// Defaults mirror the worker this tool grew up supervising: a Google Maps
// scraper logging Traditional Chinese progress lines and writing xlsx/csv
// result files.
func setDefaults(v *viper.Viper) {
	v.SetDefault("session", "scraper")
	v.SetDefault("refresh", 30*time.Second)

	v.SetDefault("worker.scripts", []string{
		"google_maps_scraper_turbo_firefox.py",
		"google_maps_scraper_detailed.py",
		"google_maps_scraper_kaohsiung_precision.py",
	})
	v.SetDefault("worker.pattern", "google_maps_scraper")

	v.SetDefault("log.file", "scraper_turbo_firefox.log")
	v.SetDefault("log.markers.error", "ERROR")
	v.SetDefault("log.markers.success", "SUCCESS")
	v.SetDefault("log.markers.search", "搜尋")
	v.SetDefault("log.markers.new_item", "找到")
	v.SetDefault("log.markers.location_done", "完成")
	v.SetDefault("log.recent", 3)
	v.SetDefault("log.width", 120)

	v.SetDefault("artifacts.excel_exts", []string{".xlsx"})
	v.SetDefault("artifacts.csv_exts", []string{".csv"})

	v.SetDefault("net.url", "https://maps.google.com")
	v.SetDefault("net.timeout", 5*time.Second)
}

// Defaults returns a config with every field at its default value and the
// working directory set to the current directory.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshal of pure defaults cannot fail
	_ = v.Unmarshal(&cfg)
	cfg.Dir = "."
	return &cfg
}

// Load reads config for the given working directory. The search order is:
// explicit path (--config flag), then <dir>/.scrapewatch.yaml, then pure
// defaults. A missing config file is not an error.
func Load(explicit, dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	path := explicit
	if path == "" {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found: "+path,
					"Check the path passed to --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file is valid YAML")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file",
			"Check the field types in "+ConfigFileName)
	}

	cfg.Dir = dir
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LogPath returns the absolute path of the worker log.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, c.Log.File)
}
