package cache

import (
	"fmt"
	"os"
	"sync"
)

// Entry is the record for one domain: its log file path, the open append
// handle (nil while closed), and a running count of bytes appended. The
// entry mutex guards the handle and the counter; domain and path are
// immutable after creation.
type Entry struct {
	domain string
	path   string

	mu    sync.Mutex
	file  *os.File
	bytes int64
}

// Domain returns the domain key this entry was created for.
func (e *Entry) Domain() string { return e.domain }

// Path returns the log file path, <dir>/domain_<domain>.log.
func (e *Entry) Path() string { return e.path }

// BytesWritten returns the byte counter. The counter is seeded with the
// file size at open and advanced per successful append; it is best-effort
// bookkeeping for the administrative rotation surface, nothing in the
// write path acts on it.
func (e *Entry) BytesWritten() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bytes
}

// Append writes line to the entry's file under the entry lock. If the
// handle is absent or the write fails, the handle is discarded, the file is
// opened fresh (create-if-missing, append) and the write retried exactly
// once. A failed retry leaves the handle absent so the next append tries to
// open again; the line is lost.
func (e *Entry) Append(line string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file != nil {
		n, err := e.file.WriteString(line)
		if err == nil {
			e.bytes += int64(n)
			return nil
		}
		e.file.Close()
		e.file = nil
	}

	if err := e.open(); err != nil {
		return fmt.Errorf("reopen %s: %w", e.path, err)
	}
	n, err := e.file.WriteString(line)
	if err != nil {
		e.file.Close()
		e.file = nil
		return fmt.Errorf("append %s: %w", e.path, err)
	}
	e.bytes += int64(n)
	return nil
}

// open opens the backing file in create+append mode and seeds the byte
// counter from its current size. Callers hold the entry lock, or the entry
// is not yet published.
func (e *Entry) open() error {
	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	e.file = f
	e.bytes = 0
	if fi, err := f.Stat(); err == nil {
		e.bytes = fi.Size()
	}
	return nil
}

// Close closes the file handle if present. The entry stays valid; the next
// Append reopens the file.
func (e *Entry) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	return err
}

// HandleOpen reports whether the entry currently holds an open handle.
func (e *Entry) HandleOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.file != nil
}
