// Package dedup suppresses repeated deliveries of the same message. The
// satellite broadcasts each report on a repeating schedule, so the agent
// keeps a sliding window of recently seen reports and drops structural
// duplicates until they age out.
package dedup

import (
	"time"

	"dcragent/internal/report"
)

// Entry is one cached message with its arrival time. Arrival time orders
// the cache and drives eviction; duplicate identity is decided by the
// report alone.
type Entry struct {
	ReceivedAt time.Time
	Report     *report.Report
}

// Cache is the duplicate-suppression window. Entries are kept in arrival
// order, oldest first, so eviction only ever inspects the head. The
// pipeline is single threaded and the cache is not safe for concurrent
// use.
type Cache struct {
	window  time.Duration
	entries []Entry
}

func New(window time.Duration) *Cache {
	return &Cache{window: window}
}

// LookupOrInsert reports whether r duplicates a cached message. A miss
// inserts r with the given arrival time; a hit leaves the original entry
// untouched, so a message's cache lifetime counts from its first arrival.
func (c *Cache) LookupOrInsert(r *report.Report, now time.Time) bool {
	for i := range c.entries {
		if c.entries[i].Report.Equal(r) {
			return true
		}
	}
	c.entries = append(c.entries, Entry{ReceivedAt: now, Report: r})
	return false
}

// EvictExpired pops entries older than the validity window off the head
// and returns how many were dropped. An entry exactly at the window
// boundary is kept.
func (c *Cache) EvictExpired(now time.Time) int {
	cutoff := now.Add(-c.window)
	evicted := 0
	for len(c.entries) > 0 && c.entries[0].ReceivedAt.Before(cutoff) {
		c.entries[0] = Entry{}
		c.entries = c.entries[1:]
		evicted++
	}
	return evicted
}

// Snapshot returns a copy of the live entries in arrival order.
func (c *Cache) Snapshot() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Restore replaces the cache contents with entries, assumed oldest first.
// Nothing is aged out here; the caller evicts against the current clock
// after restoring.
func (c *Cache) Restore(entries []Entry) {
	c.entries = make([]Entry, len(entries))
	copy(c.entries, entries)
}

func (c *Cache) Len() int {
	return len(c.entries)
}
