package domainlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bft-labs/domainlog/pkg/cache"
	"github.com/bft-labs/domainlog/pkg/event"
	"github.com/bft-labs/domainlog/pkg/log"
	"github.com/bft-labs/domainlog/pkg/resolve"
)

// Marker file written on Start so operators can confirm the router has
// write permission in the log directory. Best effort; failure is logged
// and otherwise ignored.
const (
	markerFileName = "domainlog_loaded"
	markerLine     = "domainlog loaded\n"
)

// Router routes log events into per-domain log files.
// Use New() to create an instance, then Start() to begin routing.
type Router struct {
	cfg     Config
	logger  log.Logger
	source  EventSource
	metrics *metrics

	mu      sync.Mutex
	running bool
	table   *cache.Table
	render  Renderer
	unbind  func()
}

// New creates a new Router with the given configuration.
// The router is created stopped; call Start() to begin routing.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Router, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Router{
		cfg:    cfg,
		logger: o.logger,
		source: o.source,
	}
	if o.registerer != nil {
		r.metrics = newMetrics(o.registerer)
	}
	return r, nil
}

// Start initializes an empty domain table, writes the diagnostic marker
// file, probes the source for the rendering capability and binds Route to
// it. A router restarted after Stop always begins with an empty table;
// prior entries are never resurrected.
func (r *Router) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrAlreadyRunning
	}

	if err := os.MkdirAll(r.cfg.LogDir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	r.table = cache.NewTable(r.cfg.LogDir, r.logger)
	r.writeMarker()

	if r.source != nil {
		// Probe the optional rendering capability once, not per event.
		if rr, ok := r.source.(Renderer); ok {
			r.render = rr
			r.logger.Info("event source provides rendered messages")
		} else {
			r.render = nil
			r.logger.Info("event source has no renderer, using raw messages")
		}

		unbind, err := r.source.Bind(r.Route, r.cfg.MinSeverity)
		if err != nil {
			r.table = nil
			return fmt.Errorf("bind event source: %w", err)
		}
		r.unbind = unbind
	}

	r.running = true
	r.logger.Info("domain logging started",
		log.String("log_dir", r.cfg.LogDir),
		log.String("min_severity", r.cfg.MinSeverity.String()))
	return nil
}

// Stop unbinds from the event source first, so no new events can enter,
// then closes every cached file handle and discards the table.
func (r *Router) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return ErrNotRunning
	}

	if r.unbind != nil {
		r.unbind()
		r.unbind = nil
	}

	domains := r.table.Len()
	r.table.CloseAll()
	r.table = nil
	r.render = nil
	r.running = false

	r.logger.Info("domain logging stopped", log.Int("domains", domains))
	return nil
}

// Running reports whether the router is started.
func (r *Router) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Reopen closes every cached file handle; the next write to each domain
// reopens its file. Intended for the administrative rotation surface: an
// external tool renames domain_<x>.log out of band, then triggers Reopen
// (the CLI wires this to SIGHUP) so writes continue into fresh files.
func (r *Router) Reopen() error {
	r.mu.Lock()
	table := r.table
	r.mu.Unlock()

	if table == nil {
		return ErrNotRunning
	}
	table.CloseAll()
	r.logger.Info("domain log handles closed for reopen")
	return nil
}

// Route is the ingestion hook: it resolves, formats and appends one event.
// It reports whether the event was written and never returns an error or
// panics; every failure is contained here so logging can never destabilize
// the producer. Safe for concurrent use.
func (r *Router) Route(e event.Event) bool {
	r.mu.Lock()
	table := r.table
	render := r.render
	r.mu.Unlock()

	if table == nil {
		return false
	}

	// The router's own diagnostics must never re-enter the pipeline.
	if event.FromSubsystem(e) {
		r.metrics.drop(dropSelf)
		return false
	}

	if render != nil {
		if text, ok := render.Render(e); ok {
			e.Message = text
		}
	}

	domain := resolve.Resolve(e.Source, e.Message)
	if domain == "" {
		r.metrics.drop(dropNoDomain)
		return false
	}

	entry, err := table.GetOrCreate(domain)
	if err != nil {
		switch {
		case errors.Is(err, cache.ErrCacheFull):
			r.metrics.drop(dropCapacity)
		case errors.Is(err, cache.ErrEmptyDomain):
			r.metrics.drop(dropNoDomain)
		default:
			r.metrics.drop(dropOpenError)
		}
		return false
	}

	line := event.Format(e)
	if err := entry.Append(line); err != nil {
		r.logger.Error("append to domain log",
			log.String("domain", domain),
			log.Err(err))
		r.metrics.drop(dropWriteError)
		return false
	}

	r.metrics.wrote(len(line))
	return true
}

// writeMarker writes the fixed sentinel file to the log directory.
// Callers hold r.mu.
func (r *Router) writeMarker() {
	path := filepath.Join(r.cfg.LogDir, markerFileName)
	if err := os.WriteFile(path, []byte(markerLine), 0o644); err != nil {
		r.logger.Warn("could not write diagnostic marker file",
			log.String("path", path),
			log.Err(err))
	}
}
