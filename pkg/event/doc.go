// Package event defines the log event model shared by the domainlog
// pipeline: the event record delivered by a host event source, its severity
// scale, and the deterministic single-line rendering written to per-domain
// log files.
//
// Formatting is a pure function of the event; no I/O happens here.
package event
