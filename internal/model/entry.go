package model

// Level values recognized in log lines. Lines without a level token
// default to LevelInfo.
const (
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarn     = "WARN"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelFatal    = "FATAL"
	LevelCritical = "CRITICAL"
)

// Identifier kinds extracted from log lines. Kinds is the fixed
// extraction and iteration order; Go maps iterate randomly, so any
// code that walks an entry's identifiers deterministically must range
// over Kinds instead.
const (
	KindUserID    = "user_id"
	KindUsername  = "username"
	KindEmail     = "email"
	KindTraceID   = "trace_id"
	KindRequestID = "request_id"
	KindSessionID = "session_id"
	KindIPAddress = "ip_address"
)

// Kinds lists every identifier kind in extraction order.
var Kinds = []string{
	KindUserID,
	KindUsername,
	KindEmail,
	KindTraceID,
	KindRequestID,
	KindSessionID,
	KindIPAddress,
}

// APICall is the method/endpoint pair parsed from a log line.
type APICall struct {
	Method   string `json:"method"`
	Endpoint string `json:"endpoint"`
}

// String returns the "METHOD endpoint" form used as a grouping key.
func (a APICall) String() string {
	return a.Method + " " + a.Endpoint
}

// LogEntry is one structured, parsed log line. Entries are immutable
// once built; optional fields are represented by their zero value
// (empty string, nil pointer, nil map) rather than sentinels.
type LogEntry struct {
	// LineNumber is the 1-based position among non-blank lines.
	LineNumber int `json:"line_number"`
	// Raw is the original line text, unmodified.
	Raw string `json:"raw"`
	// Timestamp is the matched "YYYY-MM-DD[ T]HH:MM:SS" substring,
	// or "" when the line carries none. Stored as matched, never
	// normalized.
	Timestamp string `json:"timestamp,omitempty"`
	// Level is the upper-cased level token, LevelInfo by default.
	Level string `json:"level"`
	// API is the parsed method/endpoint pair, nil when absent.
	API *APICall `json:"api,omitempty"`
	// StatusCode is an HTTP status in [100,599], 0 when absent.
	StatusCode int `json:"status_code,omitempty"`
	// Identifiers maps identifier kind to extracted value. Only kinds
	// that actually matched are present; the map is nil when nothing
	// matched.
	Identifiers map[string]string `json:"identifiers,omitempty"`
	// HasError reports whether the line mentions an error, exception,
	// or traceback.
	HasError bool `json:"has_error"`
	// ExceptionType is the first *Exception/*Error token, "" when absent.
	ExceptionType string `json:"exception_type,omitempty"`
}

// HasStatus reports whether the entry carries a status code.
func (e *LogEntry) HasStatus() bool {
	return e.StatusCode != 0
}

// Failed reports whether the entry represents a failed request:
// an error mention or a status code of 400 or above.
func (e *LogEntry) Failed() bool {
	return e.HasError || e.StatusCode >= 400
}
