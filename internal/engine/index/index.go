// Package index maintains the identifier index: a mapping from
// identifier value (not kind) to the ordered list of entries that
// mention that value. Bucketing is purely by value; an entry carrying
// several distinct identifiers appears once per value.
package index

import "github.com/hejijunhao/kerf/internal/model"

// Index maps identifier values to the entries that carry them.
// Insertion order of values is preserved so that cross-bucket scans
// are deterministic. The zero value is not usable; call New.
type Index struct {
	buckets map[string][]*model.LogEntry
	// values holds bucket keys in first-insert order.
	values []string
}

// New returns an empty Index.
func New() *Index {
	return &Index{buckets: make(map[string][]*model.LogEntry)}
}

// Add appends the entry to the bucket of every identifier value it
// carries. Values are walked in fixed kind order so bucket creation
// order is deterministic.
func (ix *Index) Add(e *model.LogEntry) {
	for _, kind := range model.Kinds {
		value, ok := e.Identifiers[kind]
		if !ok {
			continue
		}
		if _, seen := ix.buckets[value]; !seen {
			ix.values = append(ix.values, value)
		}
		ix.buckets[value] = append(ix.buckets[value], e)
	}
}

// EntriesFor returns the bucket for the given value in original line
// order, or nil when the value is unknown. A miss never allocates a
// bucket.
func (ix *Index) EntriesFor(value string) []*model.LogEntry {
	return ix.buckets[value]
}

// Values returns every distinct identifier value in first-insert
// order. This is the "all users" surface.
func (ix *Index) Values() []string {
	return ix.values
}

// Len returns the number of distinct identifier values.
func (ix *Index) Len() int {
	return len(ix.values)
}
