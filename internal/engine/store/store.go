// Package store builds the frozen per-document snapshot: the ordered
// entry sequence plus the derived collections (error entries, API-call
// entries, identifier index) that the analysis queries lean on.
package store

import (
	"runtime"
	"strings"
	"sync"

	"github.com/hejijunhao/kerf/internal/engine/extract"
	"github.com/hejijunhao/kerf/internal/engine/index"
	"github.com/hejijunhao/kerf/internal/model"
)

// Store holds one parsed document. It is immutable after Build
// returns; concurrent readers need no locking.
type Store struct {
	entries  []*model.LogEntry
	errors   []*model.LogEntry
	apiCalls []*model.LogEntry
	index    *index.Index
}

// Build parses the whole document text into a Store. Lines are split
// on \n; blank lines (after trimming) are skipped and do not consume a
// line number. Extraction runs on a bounded worker pool writing results
// by position, so the entry order always matches the input order.
func Build(content string) *Store {
	lines := nonBlankLines(content)
	entries := extractAll(lines)

	s := &Store{
		entries: entries,
		index:   index.New(),
	}
	// Derived collections are built in one forward pass over the
	// finished sequence, keeping construction deterministic.
	for _, e := range entries {
		if e.HasError {
			s.errors = append(s.errors, e)
		}
		if e.API != nil {
			s.apiCalls = append(s.apiCalls, e)
		}
		s.index.Add(e)
	}
	return s
}

// nonBlankLines returns the document's non-blank lines in order.
// Returned lines keep their original text; only fully blank lines are
// dropped.
func nonBlankLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// extractAll parses each line into an entry. Per-line extraction is
// independent of neighboring lines, so it fans out across workers;
// each worker writes into the pre-sized result slice at the line's own
// position.
func extractAll(lines []string) []*model.LogEntry {
	entries := make([]*model.LogEntry, len(lines))

	workers := runtime.NumCPU()
	if workers > len(lines) {
		workers = len(lines)
	}
	if workers <= 1 {
		for i, line := range lines {
			e := extract.Line(i+1, line)
			entries[i] = &e
		}
		return entries
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				e := extract.Line(i+1, lines[i])
				entries[i] = &e
			}
		}()
	}
	for i := range lines {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return entries
}

// Entries returns the full ordered entry sequence.
func (s *Store) Entries() []*model.LogEntry {
	return s.entries
}

// Errors returns the entries flagged HasError, in line order.
func (s *Store) Errors() []*model.LogEntry {
	return s.errors
}

// APICalls returns the entries carrying an API field, in line order.
func (s *Store) APICalls() []*model.LogEntry {
	return s.apiCalls
}

// Index returns the identifier index built during construction.
func (s *Store) Index() *index.Index {
	return s.index
}

// Len returns the number of parsed entries.
func (s *Store) Len() int {
	return len(s.entries)
}
