package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML field names. Bools are pointers so
// an absent key can be told apart from an explicit false.
type FileConfig struct {
	Source          string `toml:"source"`
	LogDir          string `toml:"log_dir"`
	Level           string `toml:"level"`
	FromStart       *bool  `toml:"from_start"`
	RolloverMB      int    `toml:"rollover_mb"`
	MaxRotatedFiles int    `toml:"max_rotated_files"`
	MetricsAddr     string `toml:"metrics_addr"`
	Debug           *bool  `toml:"debug"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.domainlog/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".domainlog", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("source", fc.Source, &cfg.Source)
	s.setString("log-dir", fc.LogDir, &cfg.LogDir)
	s.setString("level", fc.Level, &cfg.Level)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)

	s.setInt("rollover-mb", fc.RolloverMB, &cfg.RolloverMB)
	s.setInt("max-rotated-files", fc.MaxRotatedFiles, &cfg.MaxRotatedFiles)

	s.setBool("from-start", fc.FromStart, &cfg.FromStart)
	s.setBool("debug", fc.Debug, &cfg.Debug)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
