// Package aggregate computes whole-document analysis products:
// statistics, per-endpoint summaries, common failure patterns, and
// query-relevance ranking of entries.
package aggregate

import (
	"sort"

	"github.com/hejijunhao/kerf/internal/engine/store"
	"github.com/hejijunhao/kerf/internal/model"
)

// Aggregator runs read-only scans over a frozen store.
type Aggregator struct {
	store *store.Store
}

// New creates an Aggregator over the given store.
func New(s *store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// Statistics summarizes the whole entry set.
type Statistics struct {
	TotalLogs int `json:"total_logs"`
	Errors    int `json:"errors"`
	// Warnings counts entries at level WARN only. WARNING is a
	// distinct level value and is deliberately not included.
	Warnings    int         `json:"warnings"`
	APICalls    int         `json:"api_calls"`
	UniqueUsers int         `json:"unique_users"`
	StatusCodes map[int]int `json:"status_codes"`
}

// Statistics scans the entry set and returns overall counts.
func (a *Aggregator) Statistics() Statistics {
	stats := Statistics{
		Errors:      len(a.store.Errors()),
		APICalls:    len(a.store.APICalls()),
		UniqueUsers: a.store.Index().Len(),
		StatusCodes: make(map[int]int),
	}
	for _, e := range a.store.Entries() {
		stats.TotalLogs++
		if e.Level == model.LevelWarn {
			stats.Warnings++
		}
		if e.HasStatus() {
			stats.StatusCodes[e.StatusCode]++
		}
	}
	return stats
}

// EndpointStats accumulates per-endpoint call outcomes.
type EndpointStats struct {
	TotalCalls int `json:"total_calls"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	// Errors lists the exception types seen on failed calls, in call
	// order. Calls without an exception type contribute nothing.
	Errors []string `json:"errors"`
}

// APISummary groups the API-call entries by "METHOD endpoint". A call
// with a status below 400 counts as successful even when the line also
// mentions an error; the status check wins, and only otherwise is the
// call examined for failure.
func (a *Aggregator) APISummary() map[string]*EndpointStats {
	summary := make(map[string]*EndpointStats)
	for _, e := range a.store.APICalls() {
		key := e.API.String()
		st, ok := summary[key]
		if !ok {
			st = &EndpointStats{Errors: []string{}}
			summary[key] = st
		}
		st.TotalCalls++

		switch {
		case e.HasStatus() && e.StatusCode < 400:
			st.Successful++
		case e.Failed():
			st.Failed++
			if e.ExceptionType != "" {
				st.Errors = append(st.Errors, e.ExceptionType)
			}
		}
	}
	return summary
}

// Patterns reports common failure patterns across the error entries.
type Patterns struct {
	MostCommonExceptions map[string]int `json:"most_common_exceptions"`
	MostFailedAPIs       map[string]int `json:"most_failed_apis"`
	ErrorByStatusCode    map[int]int    `json:"error_by_status_code"`
	// AffectedUsers is the deduplicated set of identifier values seen
	// on error entries, sorted for deterministic output.
	AffectedUsers []string `json:"affected_users"`
}

// CommonPatterns scans the error entries only.
func (a *Aggregator) CommonPatterns() Patterns {
	p := Patterns{
		MostCommonExceptions: make(map[string]int),
		MostFailedAPIs:       make(map[string]int),
		ErrorByStatusCode:    make(map[int]int),
	}
	affected := make(map[string]struct{})
	for _, e := range a.store.Errors() {
		if e.ExceptionType != "" {
			p.MostCommonExceptions[e.ExceptionType]++
		}
		if e.API != nil {
			p.MostFailedAPIs[e.API.String()]++
		}
		if e.HasStatus() {
			p.ErrorByStatusCode[e.StatusCode]++
		}
		for _, kind := range model.Kinds {
			if v, ok := e.Identifiers[kind]; ok {
				affected[v] = struct{}{}
			}
		}
	}
	p.AffectedUsers = make([]string, 0, len(affected))
	for v := range affected {
		p.AffectedUsers = append(p.AffectedUsers, v)
	}
	sort.Strings(p.AffectedUsers)
	return p
}
