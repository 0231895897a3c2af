// Package extract turns a single raw log line into a structured
// model.LogEntry by applying a fixed table of named patterns. Every
// field is extracted independently: a failed match on one field never
// short-circuits the others, and no input can make extraction fail.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hejijunhao/kerf/internal/model"
)

var (
	timestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[\sT]\d{2}:\d{2}:\d{2}`)
	levelRe     = regexp.MustCompile(`(?i)\b(DEBUG|INFO|WARN|WARNING|ERROR|FATAL|CRITICAL)\b`)
	apiRe       = regexp.MustCompile(`(GET|POST|PUT|DELETE|PATCH)\s+(/[^\s]*)`)
	statusRe    = regexp.MustCompile(`\b(1\d{2}|2\d{2}|3\d{2}|4\d{2}|5\d{2})\b`)
	errorRe     = regexp.MustCompile(`(?i)(Exception|Error|Traceback)`)
	// Suffix match is case-sensitive: "timeout_error" is not an
	// exception type, "TimeoutError" is.
	exceptionRe = regexp.MustCompile(`(\w+Exception|\w+Error)`)
)

// identifierPattern binds an identifier kind to its pattern. For
// patterns with a capture group the group is the stored value;
// otherwise the whole match is stored (email, ip_address).
type identifierPattern struct {
	kind string
	re   *regexp.Regexp
}

var identifierPatterns = []identifierPattern{
	{model.KindUserID, regexp.MustCompile(`(?i)user[_-]?id[=:\s]+([^\s,]+)`)},
	{model.KindUsername, regexp.MustCompile(`(?i)username[=:\s]+([^\s,]+)`)},
	{model.KindEmail, regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)},
	{model.KindTraceID, regexp.MustCompile(`(?i)trace[_-]?id[=:\s]+([a-zA-Z0-9-]+)`)},
	{model.KindRequestID, regexp.MustCompile(`(?i)request[_-]?id[=:\s]+([a-zA-Z0-9-]+)`)},
	{model.KindSessionID, regexp.MustCompile(`(?i)session[_-]?id[=:\s]+([a-zA-Z0-9-]+)`)},
	{model.KindIPAddress, regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
}

// Line parses one non-blank log line into a LogEntry. lineNumber is
// the caller-assigned 1-based position among non-blank lines.
func Line(lineNumber int, raw string) model.LogEntry {
	return model.LogEntry{
		LineNumber:    lineNumber,
		Raw:           raw,
		Timestamp:     timestampRe.FindString(raw),
		Level:         level(raw),
		API:           apiCall(raw),
		StatusCode:    statusCode(raw),
		Identifiers:   identifiers(raw),
		HasError:      hasError(raw),
		ExceptionType: exceptionType(raw),
	}
}

func level(raw string) string {
	if m := levelRe.FindStringSubmatch(raw); m != nil {
		return strings.ToUpper(m[1])
	}
	return model.LevelInfo
}

func apiCall(raw string) *model.APICall {
	m := apiRe.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	return &model.APICall{Method: m[1], Endpoint: m[2]}
}

func statusCode(raw string) int {
	m := statusRe.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	// The pattern only admits 1xx-5xx shapes, but the range stays
	// authoritative: anything outside [100,599] is no status code.
	if code < 100 || code > 599 {
		return 0
	}
	return code
}

func identifiers(raw string) map[string]string {
	var ids map[string]string
	for _, p := range identifierPatterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		if ids == nil {
			ids = make(map[string]string)
		}
		if len(m) > 1 {
			ids[p.kind] = m[1]
		} else {
			ids[p.kind] = m[0]
		}
	}
	return ids
}

func hasError(raw string) bool {
	if errorRe.MatchString(raw) {
		return true
	}
	lower := strings.ToLower(raw)
	return strings.Contains(lower, "error") || strings.Contains(lower, "exception")
}

func exceptionType(raw string) string {
	if m := exceptionRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}
