package tail

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/domainlog/pkg/event"
)

// collector gathers delivered events for assertions.
type collector struct {
	mu     sync.Mutex
	events []event.Event
}

func (c *collector) handle(e event.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return true
}

func (c *collector) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]string, len(c.events))
	for i, e := range c.events {
		msgs[i] = e.Message
	}
	return msgs
}

func (c *collector) snapshot() []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]event.Event(nil), c.events...)
}

// waitFor polls until the collector holds want events or the deadline hits.
func (c *collector) waitFor(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		n := len(c.events)
		c.mu.Unlock()
		if n >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, have %d", want, len(c.messages()))
}

func appendLines(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestTailerDeliversAppendedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.log")
	appendLines(t, path, "before bind\n")

	var c collector
	tailer := New(path, false, nil)
	unbind, err := tailer.Bind(c.handle, event.Debug)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer unbind()

	appendLines(t, path, "first\nsecond\n")
	c.waitFor(t, 2)

	msgs := c.messages()
	if msgs[0] != "first" || msgs[1] != "second" {
		t.Fatalf("unexpected messages %v", msgs)
	}
	for _, e := range c.snapshot() {
		if e.CorrelationID == "" {
			t.Fatal("expected follow-session correlation id on events")
		}
	}
}

func TestTailerFromStart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.log")
	appendLines(t, path, "existing one\nexisting two\n")

	var c collector
	tailer := New(path, true, nil)
	unbind, err := tailer.Bind(c.handle, event.Debug)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer unbind()

	c.waitFor(t, 2)
	msgs := c.messages()
	if msgs[0] != "existing one" || msgs[1] != "existing two" {
		t.Fatalf("unexpected messages %v", msgs)
	}
}

func TestTailerBuffersPartialLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.log")
	appendLines(t, path, "")

	var c collector
	tailer := New(path, false, nil)
	unbind, err := tailer.Bind(c.handle, event.Debug)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer unbind()

	appendLines(t, path, "half a li")
	time.Sleep(100 * time.Millisecond)
	if len(c.messages()) != 0 {
		t.Fatalf("partial line delivered early: %v", c.messages())
	}

	appendLines(t, path, "ne\n")
	c.waitFor(t, 1)
	if got := c.messages()[0]; got != "half a line" {
		t.Fatalf("Message = %q, want \"half a line\"", got)
	}
}

func TestTailerSeverityFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.log")
	appendLines(t, path, "")

	var c collector
	tailer := New(path, false, nil)
	unbind, err := tailer.Bind(c.handle, event.Warning)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer unbind()

	appendLines(t, path,
		"2026-08-24 10:00:00 [DEBUG] f.c:1 too quiet\n"+
			"2026-08-24 10:00:01 [ERROR] f.c:2 loud enough\n")
	c.waitFor(t, 1)

	// Give the filtered line a moment to (not) arrive.
	time.Sleep(100 * time.Millisecond)
	msgs := c.messages()
	if len(msgs) != 1 || msgs[0] != "loud enough" {
		t.Fatalf("unexpected messages %v", msgs)
	}
}

func TestTailerFollowsRecreatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.log")
	appendLines(t, path, "old\n")

	var c collector
	tailer := New(path, false, nil)
	unbind, err := tailer.Bind(c.handle, event.Debug)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer unbind()

	if err := os.Rename(path, path+".1"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	appendLines(t, path, "fresh\n")
	c.waitFor(t, 1)

	if got := c.messages()[0]; got != "fresh" {
		t.Fatalf("Message = %q, want \"fresh\"", got)
	}
}
