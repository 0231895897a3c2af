package kerf

import "github.com/rs/zerolog"

type options struct {
	depth      string
	maxContext int
	logger     *zerolog.Logger
}

// Option configures an Analyzer.
type Option func(*options)

// WithDepth sets the analysis depth: "quick", "standard", or "deep".
// The depth caps how many entries query-relevance sampling returns
// (20, 50, 100). Default: "standard".
func WithDepth(depth string) Option {
	return func(o *options) {
		o.depth = depth
	}
}

// WithMaxContextEntries caps the digest's recent-entries window.
// Default: 100.
func WithMaxContextEntries(n int) Option {
	return func(o *options) {
		o.maxContext = n
	}
}

// WithLogger sets the engine logger. Default: no logging.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &log
	}
}

func defaultOptions() options {
	return options{
		depth:      "standard",
		maxContext: 100,
	}
}
