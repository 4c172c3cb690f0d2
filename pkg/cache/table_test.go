package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestGetOrCreateIdempotent(t *testing.T) {
	tbl := NewTable(t.TempDir(), nil)

	first, err := tbl.GetOrCreate("sales.example.com")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	second, err := tbl.GetOrCreate("sales.example.com")
	if err != nil {
		t.Fatalf("GetOrCreate (second) returned error: %v", err)
	}
	if first != second {
		t.Fatal("expected the same entry for repeated GetOrCreate")
	}
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", tbl.Len())
	}
	if got, want := first.Path(), filepath.Join(filepath.Dir(first.Path()), "domain_sales.example.com.log"); got != want {
		t.Fatalf("expected path %s, got %s", want, got)
	}
}

func TestGetOrCreateEmptyDomain(t *testing.T) {
	tbl := NewTable(t.TempDir(), nil)

	if _, err := tbl.GetOrCreate(""); !errors.Is(err, ErrEmptyDomain) {
		t.Fatalf("expected ErrEmptyDomain, got %v", err)
	}
	if tbl.Len() != 0 {
		t.Fatalf("expected no entries, got %d", tbl.Len())
	}
}

func TestGetOrCreateCapacity(t *testing.T) {
	dir := t.TempDir()
	tbl := NewTable(dir, nil)

	for i := 0; i < MaxDomains; i++ {
		if _, err := tbl.GetOrCreate(fmt.Sprintf("tenant-%03d", i)); err != nil {
			t.Fatalf("GetOrCreate(%d) returned error: %v", i, err)
		}
	}
	if tbl.Len() != MaxDomains {
		t.Fatalf("expected %d entries, got %d", MaxDomains, tbl.Len())
	}

	if _, err := tbl.GetOrCreate("one-too-many"); !errors.Is(err, ErrCacheFull) {
		t.Fatalf("expected ErrCacheFull, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "domain_one-too-many.log")); !os.IsNotExist(err) {
		t.Fatal("refused domain must not leave a file behind")
	}

	// Cached domains stay writable at capacity.
	e, err := tbl.GetOrCreate("tenant-000")
	if err != nil {
		t.Fatalf("existing domain refused at capacity: %v", err)
	}
	if err := e.Append("still writable\n"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
}

func TestOpenFailureNotInserted(t *testing.T) {
	// Missing parent directory makes the open fail.
	tbl := NewTable(filepath.Join(t.TempDir(), "missing"), nil)

	if _, err := tbl.GetOrCreate("a.example.com"); err == nil {
		t.Fatal("expected open error")
	}
	if tbl.Len() != 0 {
		t.Fatalf("failed creation must not insert, got %d entries", tbl.Len())
	}
}

func TestDomainIsolation(t *testing.T) {
	dir := t.TempDir()
	tbl := NewTable(dir, nil)

	a, err := tbl.GetOrCreate("a.example.com")
	if err != nil {
		t.Fatalf("GetOrCreate(a): %v", err)
	}
	b, err := tbl.GetOrCreate("b.example.com")
	if err != nil {
		t.Fatalf("GetOrCreate(b): %v", err)
	}

	if err := a.Append("line for a\n"); err != nil {
		t.Fatalf("Append(a): %v", err)
	}
	if err := b.Append("line for b\n"); err != nil {
		t.Fatalf("Append(b): %v", err)
	}

	contentA, err := os.ReadFile(filepath.Join(dir, "domain_a.example.com.log"))
	if err != nil {
		t.Fatalf("read a: %v", err)
	}
	contentB, err := os.ReadFile(filepath.Join(dir, "domain_b.example.com.log"))
	if err != nil {
		t.Fatalf("read b: %v", err)
	}
	if string(contentA) != "line for a\n" {
		t.Fatalf("unexpected content in a's file: %q", contentA)
	}
	if string(contentB) != "line for b\n" {
		t.Fatalf("unexpected content in b's file: %q", contentB)
	}
}

func TestConcurrentAppendsSameDomain(t *testing.T) {
	const writers = 8
	const linesPerWriter = 50

	dir := t.TempDir()
	tbl := NewTable(dir, nil)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < linesPerWriter; i++ {
				e, err := tbl.GetOrCreate("busy.example.com")
				if err != nil {
					t.Errorf("GetOrCreate: %v", err)
					return
				}
				if err := e.Append(fmt.Sprintf("writer=%d line=%d\n", w, i)); err != nil {
					t.Errorf("Append: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	content, err := os.ReadFile(filepath.Join(dir, "domain_busy.example.com.log"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	if len(lines) != writers*linesPerWriter {
		t.Fatalf("expected %d lines, got %d", writers*linesPerWriter, len(lines))
	}
	// No interleaved partial lines: every line must be well formed.
	for _, l := range lines {
		if !strings.HasPrefix(l, "writer=") || !strings.Contains(l, " line=") {
			t.Fatalf("malformed line %q", l)
		}
	}
}

func TestCloseAllAndLazyReopen(t *testing.T) {
	dir := t.TempDir()
	tbl := NewTable(dir, nil)

	e, err := tbl.GetOrCreate("x.example.com")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if err := e.Append("before close\n"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	tbl.CloseAll()
	if e.HandleOpen() {
		t.Fatal("expected handle closed after CloseAll")
	}

	// Next append reopens the file and keeps appending.
	if err := e.Append("after close\n"); err != nil {
		t.Fatalf("Append after CloseAll: %v", err)
	}
	if !e.HandleOpen() {
		t.Fatal("expected handle reopened by Append")
	}

	content, err := os.ReadFile(filepath.Join(dir, "domain_x.example.com.log"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "before close\nafter close\n" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestBytesWrittenSeededFromFileSize(t *testing.T) {
	dir := t.TempDir()
	seed := "already here\n"
	if err := os.WriteFile(filepath.Join(dir, "domain_y.example.com.log"), []byte(seed), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	tbl := NewTable(dir, nil)
	e, err := tbl.GetOrCreate("y.example.com")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got := e.BytesWritten(); got != int64(len(seed)) {
		t.Fatalf("expected counter seeded to %d, got %d", len(seed), got)
	}

	if err := e.Append("more\n"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got := e.BytesWritten(); got != int64(len(seed)+len("more\n")) {
		t.Fatalf("expected counter %d, got %d", len(seed)+len("more\n"), got)
	}
}
