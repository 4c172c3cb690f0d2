package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (DOMAINLOG_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("source", os.Getenv("DOMAINLOG_SOURCE"), &cfg.Source)
	s.setString("log-dir", os.Getenv("DOMAINLOG_LOG_DIR"), &cfg.LogDir)
	s.setString("level", os.Getenv("DOMAINLOG_LEVEL"), &cfg.Level)
	s.setString("metrics-addr", os.Getenv("DOMAINLOG_METRICS_ADDR"), &cfg.MetricsAddr)

	if err := s.setIntFromString("rollover-mb", os.Getenv("DOMAINLOG_ROLLOVER_MB"), &cfg.RolloverMB); err != nil {
		return err
	}
	if err := s.setIntFromString("max-rotated-files", os.Getenv("DOMAINLOG_MAX_ROTATED_FILES"), &cfg.MaxRotatedFiles); err != nil {
		return err
	}

	s.setBoolFromString("from-start", os.Getenv("DOMAINLOG_FROM_START"), &cfg.FromStart)
	s.setBoolFromString("debug", os.Getenv("DOMAINLOG_DEBUG"), &cfg.Debug)

	return nil
}
