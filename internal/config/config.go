// Package config defines scout settings and how they are layered.
package config

import (
	"os"
	"path/filepath"
)

// Config holds process settings. Query thresholds here are defaults that
// individual commands may override with flags.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataPath is the CSV loaded when no other source is given.
	DataPath string `koanf:"data_path"`

	// DBPath is the SQLite archive used by import, imports, sql and --from-db.
	DBPath string `koanf:"db_path"`

	// MinSamples is the smallest group that can be reported as a tendency.
	MinSamples int `koanf:"min_samples"`

	// MinShare is the top-call share a group needs to be a tendency.
	MinShare float64 `koanf:"min_share"`

	// PreviewRows is how many rows `preview` prints.
	PreviewRows int `koanf:"preview_rows"`

	// MetricsFile, when set, receives Prometheus text output after each command.
	MetricsFile string `koanf:"metrics_file"`
}

// DefaultDataFile is the bundled demo dataset name.
const DefaultDataFile = "merged_offense_defense_tendency_heavy.csv"

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		DataPath:    DefaultDataFile,
		DBPath:      filepath.Join(userHome(), ".scout", "scout.db"),
		MinSamples:  3,
		MinShare:    0.65,
		PreviewRows: 5,
	}
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
