package cache

import "errors"

// Errors returned by Table.GetOrCreate. Both mean "no entry"; callers are
// expected to drop the event and carry on.
var (
	// ErrEmptyDomain is returned for an empty domain key.
	ErrEmptyDomain = errors.New("cache: empty domain")

	// ErrCacheFull is returned when the table is at MaxDomains and the
	// domain has not been seen before.
	ErrCacheFull = errors.New("cache: domain cache full")
)
