package domainlog

import (
	"fmt"

	"github.com/bft-labs/domainlog/pkg/event"
)

// Default administrative thresholds. Declared for the external rotation
// surface; the router itself never acts on them (see doc.go, Rotation).
const (
	// DefaultRolloverBytes is the advertised per-file rollover threshold (~10MB).
	DefaultRolloverBytes = 10 << 20

	// DefaultMaxRotatedFiles is the advertised cap on rotated files per domain.
	DefaultMaxRotatedFiles = 4096
)

// Config holds the configuration for a Router.
// Use SetDefaults to fill optional fields, then Validate.
type Config struct {
	// LogDir is the directory per-domain log files are written to.
	// Required. Created on Start if absent.
	LogDir string

	// MinSeverity is the minimum severity bound to the event source.
	// Defaults to event.Debug (everything).
	MinSeverity event.Severity

	// RolloverBytes is the advertised per-file rollover threshold for the
	// administrative rotation surface. Not enforced by the router.
	RolloverBytes int64

	// MaxRotatedFiles is the advertised cap on rotated files per domain
	// for the administrative rotation surface. Not enforced by the router.
	MaxRotatedFiles int
}

// SetDefaults fills unset optional fields with default values.
func (c *Config) SetDefaults() {
	if c.RolloverBytes <= 0 {
		c.RolloverBytes = DefaultRolloverBytes
	}
	if c.MaxRotatedFiles <= 0 {
		c.MaxRotatedFiles = DefaultMaxRotatedFiles
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.LogDir == "" {
		return fmt.Errorf("%w: log dir is required", ErrInvalidConfig)
	}
	if c.MinSeverity < event.Debug || c.MinSeverity > event.Console {
		return fmt.Errorf("%w: min severity %d out of range", ErrInvalidConfig, c.MinSeverity)
	}
	return nil
}
