package domainlog

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/domainlog/pkg/log"
)

// Option configures optional behavior of a Router.
type Option func(*options)

// options holds the optional configuration for a Router instance.
type options struct {
	logger     log.Logger
	source     EventSource
	registerer prometheus.Registerer
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for the router's own diagnostics.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSource sets the host event source the router binds to on Start.
// Without a source, events reach the router only through direct Route calls.
func WithSource(src EventSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithMetrics registers the router's counters with reg.
// If not provided, no metrics are collected.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}
