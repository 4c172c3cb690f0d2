package domainlog

import "errors"

// Errors returned by the public API. Check with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running router.
	ErrAlreadyRunning = errors.New("domainlog: already running")

	// ErrNotRunning is returned when Stop() or Reopen() is called on a stopped router.
	ErrNotRunning = errors.New("domainlog: not running")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("domainlog: invalid configuration")
)
