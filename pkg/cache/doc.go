// Package cache holds the bounded domain-to-file mapping at the heart of
// domainlog and the resilient append path that writes through it.
//
// A Table maps each domain key seen at runtime to exactly one Entry owning
// that domain's append-mode log file and the mutex that serializes writes
// to it. The table admits at most MaxDomains distinct domains for the life
// of the process; once full, unseen domains are refused rather than
// evicting an existing entry. Entries are never removed individually.
//
// Locking is two-tier: one table mutex serializes entry creation only, and
// one mutex per entry serializes that entry's file handle and byte counter.
// No table-wide lock is ever held across a write syscall, so distinct
// domains write in parallel while writes within one domain are totally
// ordered.
package cache
