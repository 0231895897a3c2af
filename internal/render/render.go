// Package render formats analysis results as human-readable text for
// the CLI. Presentation only; all numbers come from the engine.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"

	"github.com/hejijunhao/kerf/internal/engine/aggregate"
	"github.com/hejijunhao/kerf/internal/engine/journey"
	"github.com/hejijunhao/kerf/internal/model"
)

// StatisticsTable renders the overall statistics as a two-column table.
func StatisticsTable(stats aggregate.Statistics) string {
	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.Header("Metric", "Value")
	table.Append([]string{"Total Logs", strconv.Itoa(stats.TotalLogs)})
	table.Append([]string{"Errors", strconv.Itoa(stats.Errors)})
	table.Append([]string{"Warnings", strconv.Itoa(stats.Warnings)})
	table.Append([]string{"API Calls", strconv.Itoa(stats.APICalls)})
	table.Append([]string{"Unique Users", strconv.Itoa(stats.UniqueUsers)})
	for _, code := range sortedCodes(stats.StatusCodes) {
		table.Append([]string{"Status " + strconv.Itoa(code), strconv.Itoa(stats.StatusCodes[code])})
	}
	table.Render()
	return buf.String()
}

// APISummaryTable renders per-endpoint outcomes, endpoints sorted.
func APISummaryTable(summary map[string]*aggregate.EndpointStats) string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.Header("Endpoint", "Calls", "Success", "Failed", "Exceptions")
	for _, k := range keys {
		st := summary[k]
		table.Append([]string{
			k,
			strconv.Itoa(st.TotalCalls),
			strconv.Itoa(st.Successful),
			strconv.Itoa(st.Failed),
			strings.Join(st.Errors, ", "),
		})
	}
	table.Render()
	return buf.String()
}

// PatternsBlock renders the common-failure-pattern report.
func PatternsBlock(p aggregate.Patterns) string {
	var b strings.Builder
	b.WriteString("ERROR PATTERNS:\n")
	b.WriteString("Most Common Exceptions:\n")
	for _, k := range sortedKeys(p.MostCommonExceptions) {
		fmt.Fprintf(&b, "  %s: %d\n", k, p.MostCommonExceptions[k])
	}
	b.WriteString("Most Failed APIs:\n")
	for _, k := range sortedKeys(p.MostFailedAPIs) {
		fmt.Fprintf(&b, "  %s: %d\n", k, p.MostFailedAPIs[k])
	}
	b.WriteString("Errors by Status Code:\n")
	for _, code := range sortedCodes(p.ErrorByStatusCode) {
		fmt.Fprintf(&b, "  %d: %d\n", code, p.ErrorByStatusCode[code])
	}
	fmt.Fprintf(&b, "Affected Users: %d\n", len(p.AffectedUsers))
	return b.String()
}

// JourneyBlock renders a journey one line per entry.
func JourneyBlock(entries []*model.LogEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "Line %d: [%s] %s\n", e.LineNumber, e.Level, truncate(e.Raw, 150))
	}
	return b.String()
}

// ErrorSequenceBlock renders the journey summary for one actor.
func ErrorSequenceBlock(seq *journey.ErrorSequence) string {
	var b strings.Builder
	b.WriteString("Journey Summary:\n")
	fmt.Fprintf(&b, "- Total Requests: %d\n", seq.TotalRequests)
	fmt.Fprintf(&b, "- Successful: %d\n", len(seq.Successful))
	fmt.Fprintf(&b, "- Failed: %d\n", len(seq.Failed))
	if seq.FirstError != nil {
		fmt.Fprintf(&b, "- First Error At: line %d\n", seq.FirstError.LineNumber)
	} else {
		b.WriteString("- First Error At: none\n")
	}
	if seq.LastSuccessfulAPI != nil {
		fmt.Fprintf(&b, "- Last Successful API: %s\n", seq.LastSuccessfulAPI)
	} else {
		b.WriteString("- Last Successful API: none\n")
	}
	return b.String()
}

// RelevantEntriesBlock renders query-ranked entries with their parsed
// fields inline.
func RelevantEntriesBlock(entries []*model.LogEntry) string {
	var b strings.Builder
	b.WriteString("RELEVANT LOG ENTRIES:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\nLine %d [%s]", e.LineNumber, e.Level)
		if e.Timestamp != "" {
			fmt.Fprintf(&b, " %s", e.Timestamp)
		}
		if e.API != nil {
			fmt.Fprintf(&b, " %s", e.API)
		}
		if e.HasStatus() {
			fmt.Fprintf(&b, " [%d]", e.StatusCode)
		}
		fmt.Fprintf(&b, "\n%s\n", e.Raw)
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCodes(m map[int]int) []int {
	codes := make([]int, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}
