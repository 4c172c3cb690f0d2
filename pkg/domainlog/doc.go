// Package domainlog provides an embeddable router that splits a stream of
// log events into per-domain (per-tenant) append-only log files.
//
// Each event is resolved to a domain key, first from its caller context
// ("domain_name", then "domain"), then by scanning the rendered message
// text. Events that resolve get one formatted line appended to
// <log-dir>/domain_<domain>.log; events that don't are ignored. The router
// never fails upward: a logging problem can cost at most the one line, not
// the host process.
//
// # Basic Usage
//
// To embed the router in your application:
//
//	cfg := domainlog.Config{
//	    LogDir: "/var/log/domains",
//	}
//
//	r, err := domainlog.New(cfg, domainlog.WithSource(src))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := r.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := r.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Event Sources
//
// An [EventSource] delivers host log events to the router. Start binds
// [Router.Route] to the source at the configured minimum severity; Stop
// unbinds it before any file is closed, so no write can race teardown.
// Hosts without a source abstraction can call [Router.Route] directly.
//
// A source that also implements [Renderer] is detected once at Start and
// used to render richer message text; otherwise the raw event message is
// used as is.
//
// # Rotation
//
// The router does not rotate files. [Config.RolloverBytes] and
// [Config.MaxRotatedFiles] are declared for the administrative surface
// that does; [Router.Reopen] closes all handles so that surface can rename
// files out of band (logrotate style) and writes continue into fresh ones.
//
// # Dependency Injection
//
// For testing, inject custom implementations of external dependencies:
//
//	r, err := domainlog.New(cfg,
//	    domainlog.WithLogger(customLogger),
//	    domainlog.WithMetrics(registry),
//	)
package domainlog
