package cache

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bft-labs/domainlog/pkg/log"
)

// MaxDomains is the hard admission cap on distinct domains. Once the table
// holds this many entries, unseen domains are refused; nothing is evicted.
const MaxDomains = 256

// filePattern names the per-domain log file inside the log directory.
const filePattern = "domain_%s.log"

// Table is the bounded mapping from domain key to Entry. Entry creation and
// insertion are serialized by the table mutex; an entry, once returned, is
// written through its own lock only.
type Table struct {
	dir    string
	logger log.Logger

	mu      sync.Mutex
	entries map[string]*Entry
}

// NewTable creates an empty table writing files under dir. A nil logger
// disables diagnostics.
func NewTable(dir string, logger log.Logger) *Table {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Table{
		dir:     dir,
		logger:  logger,
		entries: make(map[string]*Entry),
	}
}

// GetOrCreate returns the entry for domain, creating it on first sight.
// It fails with ErrEmptyDomain for an empty key, ErrCacheFull once the
// table is at capacity, and the open error when the backing file cannot be
// created; in every failure case no entry is inserted and no partial state
// remains. Calling it twice with the same domain returns the same entry.
func (t *Table) GetOrCreate(domain string) (*Entry, error) {
	if domain == "" {
		return nil, ErrEmptyDomain
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[domain]; ok {
		return e, nil
	}

	if len(t.entries) >= MaxDomains {
		t.logger.Warn("domain cache full, refusing new domain",
			log.String("domain", domain),
			log.Int("max_domains", MaxDomains))
		return nil, ErrCacheFull
	}

	e := &Entry{
		domain: domain,
		path:   filepath.Join(t.dir, fmt.Sprintf(filePattern, domain)),
	}
	if err := e.open(); err != nil {
		t.logger.Error("open domain log file",
			log.String("domain", domain),
			log.String("path", e.path),
			log.Err(err))
		return nil, fmt.Errorf("open %s: %w", e.path, err)
	}

	t.entries[domain] = e
	t.logger.Debug("domain log file created",
		log.String("domain", domain),
		log.String("path", e.path))
	return e, nil
}

// Len returns the number of domains currently cached.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// CloseAll closes every entry's file handle under that entry's own lock.
// Entries remain in the table and reopen lazily on the next append, so this
// serves both shutdown (caller discards the table afterwards) and the
// reopen-after-rotation administrative trigger.
func (t *Table) CloseAll() {
	t.mu.Lock()
	entries := make([]*Entry, 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, e)
	}
	t.mu.Unlock()

	for _, e := range entries {
		if err := e.Close(); err != nil {
			t.logger.Warn("close domain log file",
				log.String("domain", e.domain),
				log.Err(err))
		}
	}
}
