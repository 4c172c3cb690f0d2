// Package tail follows a host log file and delivers its lines to the
// domainlog router as events. It is the event source the CLI binds the
// router to; embedded hosts provide their own.
//
// The follower handles the source file appearing late, being renamed or
// removed (rotation of the source itself) and being truncated in place
// (copytruncate), reopening as needed. Partial lines are buffered until
// their newline arrives.
package tail

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/bft-labs/domainlog/pkg/domainlog"
	"github.com/bft-labs/domainlog/pkg/event"
	"github.com/bft-labs/domainlog/pkg/log"
)

// Tailer follows one source log file. Each Tailer carries a follow-session
// correlation ID attached to events that have none of their own, so lines
// routed from one follow run can be cross-referenced.
type Tailer struct {
	path      string
	fromStart bool
	logger    log.Logger
	corr      string

	wg sync.WaitGroup
}

// New creates a tailer for path. With fromStart the whole existing file is
// delivered before following; otherwise following begins at the current
// end. A nil logger disables diagnostics.
func New(path string, fromStart bool, logger log.Logger) *Tailer {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Tailer{
		path:      path,
		fromStart: fromStart,
		logger:    logger,
		corr:      uuid.NewString(),
	}
}

// Bind starts following the source file and delivers every parsed event at
// or above min to h on the follower goroutine. The returned func stops the
// follower and waits for it to exit.
func (t *Tailer) Bind(h domainlog.Handler, min event.Severity) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: rename/remove/create of the file
	// itself would otherwise drop the watch.
	if err := w.Add(filepath.Dir(t.path)); err != nil {
		w.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.wg.Add(1)
	go t.follow(ctx, w, h, min)

	return func() {
		cancel()
		w.Close()
		t.wg.Wait()
	}, nil
}

// follow is the follower goroutine: read what is available, then block on
// watcher events until more arrives or the context ends.
func (t *Tailer) follow(ctx context.Context, w *fsnotify.Watcher, h domainlog.Handler, min event.Severity) {
	defer t.wg.Done()

	var (
		f       *os.File
		r       *bufio.Reader
		pending []byte
	)
	defer func() {
		if f != nil {
			f.Close()
		}
	}()

	open := func(seekEnd bool) {
		if f != nil {
			f.Close()
			f, r = nil, nil
		}
		pending = pending[:0]
		nf, err := os.Open(t.path)
		if err != nil {
			if !os.IsNotExist(err) {
				t.logger.Warn("open source log", log.String("path", t.path), log.Err(err))
			}
			return
		}
		if seekEnd {
			if _, err := nf.Seek(0, io.SeekEnd); err != nil {
				t.logger.Warn("seek source log", log.String("path", t.path), log.Err(err))
			}
		}
		f = nf
		r = bufio.NewReader(nf)
	}

	open(!t.fromStart)
	t.deliver(r, &pending, h, min)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Name != t.path {
				continue
			}
			switch {
			case ev.Op&(fsnotify.Rename|fsnotify.Remove) != 0:
				// Source rotated away; wait for it to reappear.
				if f != nil {
					f.Close()
					f, r = nil, nil
				}
				pending = pending[:0]
			case ev.Op&fsnotify.Create != 0:
				open(false)
				t.deliver(r, &pending, h, min)
			case ev.Op&fsnotify.Write != 0:
				if f == nil {
					open(false)
				} else if t.truncated(f, r) {
					open(false)
				}
				t.deliver(r, &pending, h, min)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			t.logger.Warn("watch source log", log.Err(err))
		}
	}
}

// deliver reads complete lines until EOF, parsing and handing each to h.
// A trailing partial line stays in pending for the next call.
func (t *Tailer) deliver(r *bufio.Reader, pending *[]byte, h domainlog.Handler, min event.Severity) {
	if r == nil {
		return
	}
	for {
		chunk, err := r.ReadBytes('\n')
		*pending = append(*pending, chunk...)
		if err != nil {
			return
		}
		line := string(*pending)
		*pending = (*pending)[:0]
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		if line == "" {
			continue
		}
		e := ParseLine(line)
		if e.CorrelationID == "" {
			e.CorrelationID = t.corr
		}
		if e.Severity >= min {
			h(e)
		}
	}
}

// truncated reports whether the file shrank below the position we have
// consumed up to, which means it was truncated in place.
func (t *Tailer) truncated(f *os.File, r *bufio.Reader) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	consumed := pos - int64(r.Buffered())
	return fi.Size() < consumed
}
