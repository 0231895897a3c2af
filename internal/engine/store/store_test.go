package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `2024-01-01 10:00:00 INFO user_id=abc123 GET /api/login 200

2024-01-01 10:00:05 INFO user_id=abc123 GET /api/orders 200

2024-01-01 10:00:10 ERROR user_id=abc123 POST /api/checkout 500 NullPointerException
plain line with nothing to extract`

func TestBuildSkipsBlankLinesAndNumbersContiguously(t *testing.T) {
	s := Build(sampleDoc)

	entries := s.Entries()
	require.Len(t, entries, 4)
	for i, e := range entries {
		assert.Equal(t, i+1, e.LineNumber)
	}
	assert.Equal(t, "plain line with nothing to extract", entries[3].Raw)
}

func TestBuildDerivedCollections(t *testing.T) {
	s := Build(sampleDoc)

	require.Len(t, s.Errors(), 1)
	assert.Equal(t, 3, s.Errors()[0].LineNumber)

	require.Len(t, s.APICalls(), 3)
	assert.Equal(t, "/api/login", s.APICalls()[0].API.Endpoint)

	assert.Equal(t, []string{"abc123"}, s.Index().Values())
	assert.Len(t, s.Index().EntriesFor("abc123"), 3)
}

func TestBuildEmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "\n\n\n", "   \n\t\n"} {
		s := Build(doc)
		assert.Zero(t, s.Len())
		assert.Empty(t, s.Errors())
		assert.Empty(t, s.APICalls())
		assert.Zero(t, s.Index().Len())
	}
}

func TestBuildIdempotent(t *testing.T) {
	a := Build(sampleDoc)
	b := Build(sampleDoc)

	require.Equal(t, a.Len(), b.Len())
	for i := range a.Entries() {
		assert.Equal(t, *a.Entries()[i], *b.Entries()[i])
	}
	assert.Equal(t, a.Index().Values(), b.Index().Values())
}

func TestBuildPreservesOrderUnderParallelExtraction(t *testing.T) {
	// Enough lines to exercise the worker pool.
	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString("2024-01-01 10:00:00 INFO request_id=r-")
		b.WriteString(strings.Repeat("x", i%7+1))
		b.WriteString(" handled\n")
	}
	s := Build(b.String())

	entries := s.Entries()
	require.Len(t, entries, 500)
	for i, e := range entries {
		require.Equal(t, i+1, e.LineNumber)
		require.Contains(t, e.Raw, "request_id=r-"+strings.Repeat("x", i%7+1))
	}
}

func TestBuildSingleLineNoTrailingNewline(t *testing.T) {
	s := Build("ERROR boom")
	require.Equal(t, 1, s.Len())
	assert.True(t, s.Entries()[0].HasError)
	assert.Len(t, s.Errors(), 1)
}
