// Package engine ties the analysis components together behind one
// facade. An Engine holds at most one frozen document snapshot; Load
// swaps snapshots atomically, so concurrent readers either see the old
// document completely or the new one completely, never a mix.
package engine

import (
	"errors"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/hejijunhao/kerf/internal/engine/aggregate"
	"github.com/hejijunhao/kerf/internal/engine/digest"
	"github.com/hejijunhao/kerf/internal/engine/journey"
	"github.com/hejijunhao/kerf/internal/engine/store"
	"github.com/hejijunhao/kerf/internal/model"
)

// ErrNoDocument is returned by every query made before a document has
// been loaded. It is a contract violation, distinct from "no matches".
var ErrNoDocument = errors.New("engine: no document loaded")

// snapshot bundles the components built from one document.
type snapshot struct {
	store    *store.Store
	resolver *journey.Resolver
	agg      *aggregate.Aggregator
	compiler *digest.Compiler
}

// Engine is the analysis engine facade. Safe for concurrent use:
// queries are pure reads over the current snapshot.
type Engine struct {
	current atomic.Pointer[snapshot]
	log     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Default: no-op.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine with no document loaded.
func New(opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load parses the document text and replaces the current snapshot.
// The previous snapshot, if any, is discarded wholesale.
func (e *Engine) Load(content string) {
	s := store.Build(content)
	agg := aggregate.New(s)
	snap := &snapshot{
		store:    s,
		resolver: journey.NewResolver(s.Index()),
		agg:      agg,
		compiler: digest.NewCompiler(s, agg),
	}
	e.current.Store(snap)
	e.log.Debug().
		Int("entries", s.Len()).
		Int("errors", len(s.Errors())).
		Int("api_calls", len(s.APICalls())).
		Int("identifiers", s.Index().Len()).
		Msg("document loaded")
}

func (e *Engine) snap() (*snapshot, error) {
	s := e.current.Load()
	if s == nil {
		return nil, ErrNoDocument
	}
	return s, nil
}

// Entries returns the ordered entry sequence of the current document.
func (e *Engine) Entries() ([]*model.LogEntry, error) {
	s, err := e.snap()
	if err != nil {
		return nil, err
	}
	return s.store.Entries(), nil
}

// Statistics returns overall counts for the current document.
func (e *Engine) Statistics() (aggregate.Statistics, error) {
	s, err := e.snap()
	if err != nil {
		return aggregate.Statistics{}, err
	}
	return s.agg.Statistics(), nil
}

// APISummary returns per-endpoint call outcomes.
func (e *Engine) APISummary() (map[string]*aggregate.EndpointStats, error) {
	s, err := e.snap()
	if err != nil {
		return nil, err
	}
	return s.agg.APISummary(), nil
}

// CommonPatterns returns the failure-pattern report.
func (e *Engine) CommonPatterns() (aggregate.Patterns, error) {
	s, err := e.snap()
	if err != nil {
		return aggregate.Patterns{}, err
	}
	return s.agg.CommonPatterns(), nil
}

// Identifiers returns every distinct identifier value, in first-seen
// order.
func (e *Engine) Identifiers() ([]string, error) {
	s, err := e.snap()
	if err != nil {
		return nil, err
	}
	return s.store.Index().Values(), nil
}

// Journey returns the timeline of entries for the identifier. An empty
// result means no matches, not an error.
func (e *Engine) Journey(identifier string) ([]*model.LogEntry, error) {
	s, err := e.snap()
	if err != nil {
		return nil, err
	}
	return s.resolver.Journey(identifier), nil
}

// ErrorSequence returns the success/failure partition of the
// identifier's journey. ok is false when the journey is empty.
func (e *Engine) ErrorSequence(identifier string) (seq *journey.ErrorSequence, ok bool, err error) {
	s, err := e.snap()
	if err != nil {
		return nil, false, err
	}
	seq, ok = s.resolver.ErrorSequence(identifier)
	return seq, ok, nil
}

// Digest renders the context block for the external analysis
// collaborator, with a tail window of at most maxLogs entries.
func (e *Engine) Digest(maxLogs int) (string, error) {
	s, err := e.snap()
	if err != nil {
		return "", err
	}
	return s.compiler.Compile(maxLogs), nil
}

// RelevantEntries returns the max most query-relevant entries.
func (e *Engine) RelevantEntries(query string, max int) ([]*model.LogEntry, error) {
	s, err := e.snap()
	if err != nil {
		return nil, err
	}
	return s.agg.RankForQuery(query, max), nil
}

// actorPatterns pull a candidate name out of a free-text query when no
// known identifier appears verbatim. Order matters: it is the
// tie-break sequence after the full-identifier scan.
var actorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`user\s+(\w+)`),
	regexp.MustCompile(`username[:\s]+(\w+)`),
	regexp.MustCompile(`for\s+(\w+)`),
}

// ResolveActor guesses which known identifier a free-text query refers
// to. Known full identifier values are checked first (substring of the
// query, first-seen order); only then are the keyword patterns tried,
// and a captured token is accepted only when it is a substring of some
// known value. The heuristic is order-sensitive and non-authoritative:
// the first hit wins. ok is false when nothing matches.
func (e *Engine) ResolveActor(query string) (value string, ok bool, err error) {
	s, err := e.snap()
	if err != nil {
		return "", false, err
	}
	lower := strings.ToLower(query)

	for _, v := range s.store.Index().Values() {
		if strings.Contains(lower, strings.ToLower(v)) {
			return v, true, nil
		}
	}

	for _, re := range actorPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		token := m[1]
		for _, v := range s.store.Index().Values() {
			if strings.Contains(strings.ToLower(v), token) {
				return v, true, nil
			}
		}
	}
	return "", false, nil
}
