package kerf

import (
	"errors"

	"github.com/hejijunhao/kerf/internal/config"
	"github.com/hejijunhao/kerf/internal/engine"
)

// ErrNoDocument is returned by queries made before Load.
var ErrNoDocument = engine.ErrNoDocument

// Analyzer is a log analysis engine. It holds one parsed document at a
// time and is safe for concurrent queries.
type Analyzer struct {
	engine     *engine.Engine
	depth      config.Depth
	maxContext int
}

// New creates an Analyzer with no document loaded.
func New(opts ...Option) *Analyzer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	var engOpts []engine.Option
	if o.logger != nil {
		engOpts = append(engOpts, engine.WithLogger(*o.logger))
	}
	return &Analyzer{
		engine:     engine.New(engOpts...),
		depth:      config.ParseDepth(o.depth),
		maxContext: o.maxContext,
	}
}

// Load parses the document text, replacing any previously loaded
// document. No input content can make parsing fail.
func (a *Analyzer) Load(content string) {
	a.engine.Load(content)
}

// Entries returns the ordered parsed entries of the current document.
func (a *Analyzer) Entries() ([]Entry, error) {
	entries, err := a.engine.Entries()
	if err != nil {
		return nil, err
	}
	return entriesFromModel(entries), nil
}

// Statistics returns overall counts for the current document.
func (a *Analyzer) Statistics() (Statistics, error) {
	stats, err := a.engine.Statistics()
	if err != nil {
		return Statistics{}, err
	}
	return statsFromAggregate(stats), nil
}

// APISummary returns per-endpoint call outcomes keyed by
// "METHOD endpoint".
func (a *Analyzer) APISummary() (map[string]EndpointStats, error) {
	summary, err := a.engine.APISummary()
	if err != nil {
		return nil, err
	}
	out := make(map[string]EndpointStats, len(summary))
	for k, st := range summary {
		out[k] = EndpointStats{
			TotalCalls: st.TotalCalls,
			Successful: st.Successful,
			Failed:     st.Failed,
			Errors:     append([]string(nil), st.Errors...),
		}
	}
	return out, nil
}

// CommonPatterns returns the failure-pattern report.
func (a *Analyzer) CommonPatterns() (Patterns, error) {
	p, err := a.engine.CommonPatterns()
	if err != nil {
		return Patterns{}, err
	}
	return Patterns{
		MostCommonExceptions: p.MostCommonExceptions,
		MostFailedAPIs:       p.MostFailedAPIs,
		ErrorByStatusCode:    p.ErrorByStatusCode,
		AffectedUsers:        p.AffectedUsers,
	}, nil
}

// Identifiers returns every distinct identifier value found in the
// document, in first-seen order.
func (a *Analyzer) Identifiers() ([]string, error) {
	return a.engine.Identifiers()
}

// Journey returns the time-ordered entries associated with the
// identifier (case-insensitive substring match against identifier
// values). Empty result means no matches.
func (a *Analyzer) Journey(identifier string) ([]Entry, error) {
	entries, err := a.engine.Journey(identifier)
	if err != nil {
		return nil, err
	}
	return entriesFromModel(entries), nil
}

// ErrorSequence partitions the identifier's journey into successes and
// failures. ok is false when the journey is empty.
func (a *Analyzer) ErrorSequence(identifier string) (seq *ErrorSequence, ok bool, err error) {
	inner, ok, err := a.engine.ErrorSequence(identifier)
	if err != nil || !ok {
		return nil, ok, err
	}
	return sequenceFromJourney(inner), true, nil
}

// Digest renders the bounded textual context block for an external
// analysis collaborator.
func (a *Analyzer) Digest() (string, error) {
	return a.engine.Digest(a.maxContext)
}

// RelevantEntries returns the entries most relevant to the free-text
// query, capped at the analyzer's depth sample size.
func (a *Analyzer) RelevantEntries(query string) ([]Entry, error) {
	entries, err := a.engine.RelevantEntries(query, a.depth.SampleCap())
	if err != nil {
		return nil, err
	}
	return entriesFromModel(entries), nil
}

// ResolveActor guesses which known identifier value a free-text query
// refers to. ok is false when nothing matches. The heuristic is
// non-authoritative; callers should treat the result as a suggestion.
func (a *Analyzer) ResolveActor(query string) (value string, ok bool, err error) {
	return a.engine.ResolveActor(query)
}

// IsNoDocument reports whether err is the not-yet-loaded contract
// violation, as opposed to an empty analysis result.
func IsNoDocument(err error) bool {
	return errors.Is(err, ErrNoDocument)
}
