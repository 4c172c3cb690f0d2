// Package cliconfig loads the domainlog CLI configuration from a TOML
// file, DOMAINLOG_* environment variables and command-line flags, with
// flags taking precedence over environment, and environment over file.
package cliconfig

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/bft-labs/domainlog/pkg/event"
)

// Config holds CLI configuration for domainlog.
type Config struct {
	// Source is the host log file to follow.
	Source string

	// LogDir is the directory per-domain log files are written to.
	// Defaults to a "domains" directory next to Source.
	LogDir string

	// Level is the minimum severity name bound to the source.
	Level string

	// FromStart delivers the whole existing source file before following.
	FromStart bool

	// RolloverMB and MaxRotatedFiles are advertised to the administrative
	// rotation surface; the router does not enforce them.
	RolloverMB      int
	MaxRotatedFiles int

	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string

	// Debug enables debug-level CLI diagnostics.
	Debug bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Level:           event.Debug.String(),
		RolloverMB:      10,
		MaxRotatedFiles: 4096,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(filepath.Dir(c.Source), "domains")
	}
	if _, err := event.ParseSeverity(c.Level); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	if c.RolloverMB <= 0 {
		return fmt.Errorf("rollover-mb must be positive")
	}
	if c.MaxRotatedFiles <= 0 {
		return fmt.Errorf("max-rotated-files must be positive")
	}
	return nil
}

// MinSeverity returns the parsed Level. Call Validate first.
func (c *Config) MinSeverity() event.Severity {
	s, _ := event.ParseSeverity(c.Level)
	return s
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
