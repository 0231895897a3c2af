package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hejijunhao/kerf/internal/engine/aggregate"
	"github.com/hejijunhao/kerf/internal/engine/journey"
	"github.com/hejijunhao/kerf/internal/engine/store"
	"github.com/hejijunhao/kerf/internal/model"
)

const renderDoc = `2024-01-01 10:00:00 INFO user_id=u1 GET /api/login 200
2024-01-01 10:00:01 ERROR user_id=u1 POST /api/pay 500 PaymentError`

func TestStatisticsTable(t *testing.T) {
	s := store.Build(renderDoc)
	out := StatisticsTable(aggregate.New(s).Statistics())

	// Header auto-formatting may change case, so compare uppercased.
	assert.Contains(t, strings.ToUpper(out), "METRIC")
	assert.Contains(t, strings.ToUpper(out), "VALUE")
	assert.Contains(t, out, "Total Logs")
	assert.Contains(t, out, "Unique Users")
	assert.Contains(t, out, "Status 200")
	assert.Contains(t, out, "Status 500")
}

func TestAPISummaryTable(t *testing.T) {
	s := store.Build(renderDoc)
	out := APISummaryTable(aggregate.New(s).APISummary())

	assert.Contains(t, strings.ToUpper(out), "ENDPOINT")
	assert.Contains(t, strings.ToUpper(out), "EXCEPTIONS")
	assert.Contains(t, out, "GET /api/login")
	assert.Contains(t, out, "POST /api/pay")
	assert.Contains(t, out, "PaymentError")
}

func TestPatternsBlock(t *testing.T) {
	s := store.Build(renderDoc)
	out := PatternsBlock(aggregate.New(s).CommonPatterns())

	assert.Contains(t, out, "PaymentError: 1")
	assert.Contains(t, out, "POST /api/pay: 1")
	assert.Contains(t, out, "500: 1")
	assert.Contains(t, out, "Affected Users: 1")
}

func TestJourneyBlock(t *testing.T) {
	s := store.Build(renderDoc)
	logs := journey.NewResolver(s.Index()).Journey("u1")
	out := JourneyBlock(logs)

	assert.Contains(t, out, "Line 1: [INFO]")
	assert.Contains(t, out, "Line 2: [ERROR]")
}

func TestErrorSequenceBlock(t *testing.T) {
	s := store.Build(renderDoc)
	seq, ok := journey.NewResolver(s.Index()).ErrorSequence("u1")
	require.True(t, ok)

	out := ErrorSequenceBlock(seq)
	assert.Contains(t, out, "Total Requests: 2")
	assert.Contains(t, out, "Successful: 1")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "First Error At: line 2")
	assert.Contains(t, out, "Last Successful API: GET /api/login")
}

func TestErrorSequenceBlockNoFailures(t *testing.T) {
	seq := &journey.ErrorSequence{TotalRequests: 1}
	out := ErrorSequenceBlock(seq)
	assert.Contains(t, out, "First Error At: none")
	assert.Contains(t, out, "Last Successful API: none")
}

func TestRelevantEntriesBlock(t *testing.T) {
	entries := []*model.LogEntry{
		{
			LineNumber: 4,
			Level:      "ERROR",
			Timestamp:  "2024-01-01 10:00:03",
			API:        &model.APICall{Method: "POST", Endpoint: "/api/pay"},
			StatusCode: 500,
			Raw:        "the raw line",
		},
	}
	out := RelevantEntriesBlock(entries)
	assert.Contains(t, out, "Line 4 [ERROR] 2024-01-01 10:00:03 POST /api/pay [500]")
	assert.Contains(t, out, "the raw line")
}
