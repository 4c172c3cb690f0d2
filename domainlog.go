// Package domainlog re-exports the per-tenant log routing library for
// convenient access. The implementation lives in pkg/domainlog; import
// sub-packages directly for selective use.
//
// Example usage:
//
//	cfg := domainlog.Config{LogDir: "/var/log/domains"}
//	r, err := domainlog.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Stop()
package domainlog

import (
	"github.com/bft-labs/domainlog/pkg/event"
	"github.com/bft-labs/domainlog/pkg/log"

	router "github.com/bft-labs/domainlog/pkg/domainlog"
)

// Re-export the core types from sub-packages for convenient access.
type (
	// Config is the router configuration from pkg/domainlog.
	Config = router.Config

	// Router routes log events into per-domain log files.
	Router = router.Router

	// Option configures optional behavior of a Router.
	Option = router.Option

	// Handler consumes one log event.
	Handler = router.Handler

	// EventSource is a host log stream the router can attach to.
	EventSource = router.EventSource

	// Renderer is the optional rendered-message capability of a source.
	Renderer = router.Renderer

	// Event is one log event from pkg/event.
	Event = event.Event

	// Severity is the log event severity scale from pkg/event.
	Severity = event.Severity

	// Logger is the diagnostics logging interface from pkg/log.
	Logger = log.Logger
)

// New creates a new Router with the given configuration.
func New(cfg Config, opts ...Option) (*Router, error) {
	return router.New(cfg, opts...)
}
