// Package scan implements the scan-dedupe-notify loop: periodic polling of a
// listing source, match evaluation, seen-item tracking, and delivery of
// matched listings to a notifier.
package scan

import "time"

// DedupStore tracks listing IDs that have already been notified, mapping
// each to the time it was first seen. Entries are created on successful
// notification and never removed, so the store grows for the process
// lifetime. It is owned exclusively by the scan loop and must not be shared
// across goroutines.
type DedupStore struct {
	seen    map[string]time.Time
	nowFunc func() time.Time
}

// DedupOption configures a DedupStore.
type DedupOption func(*DedupStore)

// WithDedupNowFunc overrides the time function for testing.
func WithDedupNowFunc(f func() time.Time) DedupOption {
	return func(d *DedupStore) {
		d.nowFunc = f
	}
}

// NewDedupStore creates an empty store.
func NewDedupStore(opts ...DedupOption) *DedupStore {
	d := &DedupStore{
		seen:    make(map[string]time.Time),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HasSeen reports whether id has already been notified.
func (d *DedupStore) HasSeen(id string) bool {
	_, ok := d.seen[id]
	return ok
}

// MarkSeen records id as notified. Marking an already-seen id keeps the
// original first-seen timestamp.
func (d *DedupStore) MarkSeen(id string) {
	if _, ok := d.seen[id]; ok {
		return
	}
	d.seen[id] = d.nowFunc()
}

// FirstSeen returns when id was first marked, if it was.
func (d *DedupStore) FirstSeen(id string) (time.Time, bool) {
	ts, ok := d.seen[id]
	return ts, ok
}

// Len returns the number of tracked IDs.
func (d *DedupStore) Len() int {
	return len(d.seen)
}
