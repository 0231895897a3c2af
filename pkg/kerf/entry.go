package kerf

import (
	"github.com/hejijunhao/kerf/internal/engine/aggregate"
	"github.com/hejijunhao/kerf/internal/engine/journey"
	"github.com/hejijunhao/kerf/internal/model"
)

// APICall is a method/endpoint pair parsed from a log line.
type APICall struct {
	Method   string
	Endpoint string
}

// Entry is one structured, parsed log line.
type Entry struct {
	LineNumber    int
	Raw           string
	Timestamp     string
	Level         string
	API           *APICall
	StatusCode    int
	Identifiers   map[string]string
	HasError      bool
	ExceptionType string
}

// Statistics summarizes a whole document.
type Statistics struct {
	TotalLogs   int
	Errors      int
	Warnings    int
	APICalls    int
	UniqueUsers int
	StatusCodes map[int]int
}

// EndpointStats accumulates per-endpoint call outcomes.
type EndpointStats struct {
	TotalCalls int
	Successful int
	Failed     int
	Errors     []string
}

// Patterns reports common failure patterns across error entries.
type Patterns struct {
	MostCommonExceptions map[string]int
	MostFailedAPIs       map[string]int
	ErrorByStatusCode    map[int]int
	AffectedUsers        []string
}

// ErrorSequence partitions one actor's journey into successful and
// failed requests.
type ErrorSequence struct {
	TotalRequests     int
	Successful        []Entry
	Failed            []Entry
	FirstError        *Entry
	LastSuccessfulAPI *APICall
	ErrorAPIs         []APICall
}

func entryFromModel(e *model.LogEntry) Entry {
	out := Entry{
		LineNumber:    e.LineNumber,
		Raw:           e.Raw,
		Timestamp:     e.Timestamp,
		Level:         e.Level,
		StatusCode:    e.StatusCode,
		HasError:      e.HasError,
		ExceptionType: e.ExceptionType,
	}
	if e.API != nil {
		out.API = &APICall{Method: e.API.Method, Endpoint: e.API.Endpoint}
	}
	if e.Identifiers != nil {
		out.Identifiers = make(map[string]string, len(e.Identifiers))
		for k, v := range e.Identifiers {
			out.Identifiers[k] = v
		}
	}
	return out
}

func entriesFromModel(entries []*model.LogEntry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = entryFromModel(e)
	}
	return out
}

func statsFromAggregate(s aggregate.Statistics) Statistics {
	return Statistics{
		TotalLogs:   s.TotalLogs,
		Errors:      s.Errors,
		Warnings:    s.Warnings,
		APICalls:    s.APICalls,
		UniqueUsers: s.UniqueUsers,
		StatusCodes: s.StatusCodes,
	}
}

func sequenceFromJourney(seq *journey.ErrorSequence) *ErrorSequence {
	out := &ErrorSequence{
		TotalRequests: seq.TotalRequests,
		Successful:    entriesFromModel(seq.Successful),
		Failed:        entriesFromModel(seq.Failed),
	}
	if seq.FirstError != nil {
		first := entryFromModel(seq.FirstError)
		out.FirstError = &first
	}
	if seq.LastSuccessfulAPI != nil {
		out.LastSuccessfulAPI = &APICall{
			Method:   seq.LastSuccessfulAPI.Method,
			Endpoint: seq.LastSuccessfulAPI.Endpoint,
		}
	}
	for _, api := range seq.ErrorAPIs {
		out.ErrorAPIs = append(out.ErrorAPIs, APICall{Method: api.Method, Endpoint: api.Endpoint})
	}
	return out
}
