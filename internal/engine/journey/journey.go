// Package journey reconstructs one actor's request timeline from the
// identifier index and locates the success-to-failure transition.
package journey

import (
	"sort"
	"strings"

	"github.com/hejijunhao/kerf/internal/engine/index"
	"github.com/hejijunhao/kerf/internal/model"
)

// Resolver answers journey queries against a frozen index.
type Resolver struct {
	index *index.Index
}

// NewResolver creates a Resolver over the given index.
func NewResolver(ix *index.Index) *Resolver {
	return &Resolver{index: ix}
}

// Journey returns every entry associated with the identifier, matched
// by case-insensitive substring against the entry's identifier values,
// sorted ascending by timestamp. An absent timestamp sorts as the
// empty string, before any real timestamp; the sort is stable on ties.
//
// The scan walks every bucket in first-insert order. Within one bucket
// pass an entry is appended at most once (first matching identifier
// value wins), but an entry living in several matching buckets is
// appended once per bucket; duplicates across buckets are intentional
// and preserved.
func (r *Resolver) Journey(identifier string) []*model.LogEntry {
	needle := strings.ToLower(identifier)

	var matched []*model.LogEntry
	for _, value := range r.index.Values() {
		for _, e := range r.index.EntriesFor(value) {
			for _, kind := range model.Kinds {
				v, ok := e.Identifiers[kind]
				if !ok {
					continue
				}
				if strings.Contains(strings.ToLower(v), needle) {
					matched = append(matched, e)
					break
				}
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp < matched[j].Timestamp
	})
	return matched
}

// ErrorSequence partitions one actor's journey into successful and
// failed requests and records where failures began.
type ErrorSequence struct {
	// TotalRequests is the journey length, duplicates included.
	TotalRequests int
	// Successful and Failed hold the partition in journey order.
	Successful []*model.LogEntry
	Failed     []*model.LogEntry
	// FirstError is the first failed entry in the sorted journey.
	FirstError *model.LogEntry
	// LastSuccessfulAPI is the API of the last successful entry
	// anywhere in the journey, not necessarily the one immediately
	// before FirstError.
	LastSuccessfulAPI *model.APICall
	// ErrorAPIs collects the API of every failed entry that has one,
	// in journey order.
	ErrorAPIs []*model.APICall
}

// ErrorSequence resolves the identifier's journey and partitions it.
// An entry is failed when it mentions an error or its status code is
// 400 or above; everything else is successful. The second return is
// false when the journey is empty: no data, not a fault.
func (r *Resolver) ErrorSequence(identifier string) (*ErrorSequence, bool) {
	logs := r.Journey(identifier)
	if len(logs) == 0 {
		return nil, false
	}

	seq := &ErrorSequence{TotalRequests: len(logs)}
	for _, e := range logs {
		if e.Failed() {
			seq.Failed = append(seq.Failed, e)
			if seq.FirstError == nil {
				seq.FirstError = e
			}
			if e.API != nil {
				seq.ErrorAPIs = append(seq.ErrorAPIs, e.API)
			}
		} else {
			seq.Successful = append(seq.Successful, e)
			if e.API != nil {
				seq.LastSuccessfulAPI = e.API
			}
		}
	}
	return seq, true
}
