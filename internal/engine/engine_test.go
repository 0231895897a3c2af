package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueriesBeforeLoadReturnErrNoDocument(t *testing.T) {
	e := New()

	_, err := e.Entries()
	assert.ErrorIs(t, err, ErrNoDocument)
	_, err = e.Statistics()
	assert.ErrorIs(t, err, ErrNoDocument)
	_, err = e.APISummary()
	assert.ErrorIs(t, err, ErrNoDocument)
	_, err = e.CommonPatterns()
	assert.ErrorIs(t, err, ErrNoDocument)
	_, err = e.Journey("u1")
	assert.ErrorIs(t, err, ErrNoDocument)
	_, _, err = e.ErrorSequence("u1")
	assert.ErrorIs(t, err, ErrNoDocument)
	_, err = e.Digest(10)
	assert.ErrorIs(t, err, ErrNoDocument)
	_, err = e.RelevantEntries("q", 10)
	assert.ErrorIs(t, err, ErrNoDocument)
	_, _, err = e.ResolveActor("q")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestEmptyJourneyIsNotAnError(t *testing.T) {
	e := New()
	e.Load("2024-01-01 10:00:00 INFO user_id=u1 GET /api/a 200")

	logs, err := e.Journey("nobody")
	require.NoError(t, err)
	assert.Empty(t, logs)

	seq, ok, err := e.ErrorSequence("nobody")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, seq)
}

func TestLoadReplacesSnapshot(t *testing.T) {
	e := New()
	e.Load("2024-01-01 10:00:00 INFO user_id=old1 GET /api/a 200")
	e.Load("2024-01-01 10:00:00 INFO user_id=new1 GET /api/b 200")

	ids, err := e.Identifiers()
	require.NoError(t, err)
	assert.Equal(t, []string{"new1"}, ids)

	logs, err := e.Journey("old1")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestResolveActorKnownIdentifierWins(t *testing.T) {
	e := New()
	e.Load(`2024-01-01 10:00:00 INFO user_id=john123 GET /api/a 200
2024-01-01 10:00:01 INFO username=kate GET /api/b 200`)

	// "kate" appears verbatim; the full-identifier scan resolves it
	// before any keyword pattern runs.
	actor, ok, err := e.ResolveActor("what happened to kate today")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "kate", actor)
}

func TestResolveActorKeywordPatternFallback(t *testing.T) {
	e := New()
	e.Load("2024-01-01 10:00:00 INFO user_id=john123 GET /api/a 200")

	// "john" is not a known value, but "user john" captures a token
	// that is a substring of john123.
	actor, ok, err := e.ResolveActor("show the journey of user john")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "john123", actor)
}

func TestResolveActorNoMatch(t *testing.T) {
	e := New()
	e.Load("2024-01-01 10:00:00 INFO user_id=john123 GET /api/a 200")

	_, ok, err := e.ResolveActor("how is latency trending")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConcurrentReads(t *testing.T) {
	e := New()
	e.Load(`2024-01-01 10:00:00 INFO user_id=u1 GET /api/a 200
2024-01-01 10:00:01 ERROR user_id=u1 POST /api/b 500 PaymentError`)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats, err := e.Statistics()
			assert.NoError(t, err)
			assert.Equal(t, 2, stats.TotalLogs)

			logs, err := e.Journey("u1")
			assert.NoError(t, err)
			assert.Len(t, logs, 2)

			_, err = e.Digest(10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestLoadIdempotentQueries(t *testing.T) {
	doc := `2024-01-01 10:00:00 INFO user_id=u1 GET /api/a 200
2024-01-01 10:00:01 ERROR user_id=u1 POST /api/b 500 PaymentError`

	a, b := New(), New()
	a.Load(doc)
	b.Load(doc)

	da, err := a.Digest(100)
	require.NoError(t, err)
	db, err := b.Digest(100)
	require.NoError(t, err)
	assert.Equal(t, da, db)

	sa, _ := a.Statistics()
	sb, _ := b.Statistics()
	assert.Equal(t, sa, sb)
}
