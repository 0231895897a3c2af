// Package digest renders the bounded textual context block handed to
// the external analysis collaborator. It serializes what the engine
// already computed; no analysis logic lives here.
package digest

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hejijunhao/kerf/internal/engine/aggregate"
	"github.com/hejijunhao/kerf/internal/engine/store"
)

// DefaultMaxLogs is the default size of the tail window of recent
// entries included in the digest.
const DefaultMaxLogs = 100

// rawLimit caps how much of each raw line the digest retains.
const rawLimit = 200

// Compiler renders digests for one frozen snapshot.
type Compiler struct {
	store *store.Store
	agg   *aggregate.Aggregator
}

// NewCompiler creates a Compiler over the given store and aggregator.
func NewCompiler(s *store.Store, agg *aggregate.Aggregator) *Compiler {
	return &Compiler{store: s, agg: agg}
}

// Compile renders the full context block: statistics, the serialized
// API summary, the serialized common-patterns report, and the most
// recent maxLogs entries as "[LEVEL] raw" with raw truncated. A
// maxLogs of zero or below falls back to DefaultMaxLogs. When the
// corpus is smaller than maxLogs the whole corpus is included.
func (c *Compiler) Compile(maxLogs int) string {
	if maxLogs <= 0 {
		maxLogs = DefaultMaxLogs
	}
	stats := c.agg.Statistics()

	var b strings.Builder
	b.WriteString("LOG ANALYSIS CONTEXT:\n\n")
	b.WriteString("STATISTICS:\n")
	fmt.Fprintf(&b, "- Total Logs: %d\n", stats.TotalLogs)
	fmt.Fprintf(&b, "- Errors: %d\n", stats.Errors)
	fmt.Fprintf(&b, "- Warnings: %d\n", stats.Warnings)
	fmt.Fprintf(&b, "- API Calls: %d\n", stats.APICalls)
	fmt.Fprintf(&b, "- Unique Users: %d\n", stats.UniqueUsers)

	b.WriteString("\nAPI SUMMARY:\n")
	b.WriteString(marshal(c.agg.APISummary()))

	b.WriteString("\n\nERROR PATTERNS:\n")
	b.WriteString(marshal(c.agg.CommonPatterns()))

	entries := c.store.Entries()
	window := maxLogs
	if window > len(entries) {
		window = len(entries)
	}
	fmt.Fprintf(&b, "\n\nRECENT LOGS (last %d entries):\n", window)
	for _, e := range entries[len(entries)-window:] {
		fmt.Fprintf(&b, "\n[%s] %s", e.Level, truncate(e.Raw, rawLimit))
	}
	return b.String()
}

// marshal renders v as indented JSON. Map keys come out sorted, which
// keeps the digest deterministic for identical documents.
func marshal(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Nothing the compiler serializes can fail to marshal.
		return "{}"
	}
	return string(data)
}

// truncate cuts s to maxLen runes. Cutting on runes rather than bytes
// keeps multibyte log text valid UTF-8.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}
