package aggregate

import (
	"sort"
	"strings"

	"github.com/hejijunhao/kerf/internal/model"
)

// Relevance score weights for query-driven log sampling.
const (
	scoreQueryError = 10 // query mentions "error" and entry has one
	scoreQueryUser  = 5  // query implies a user/journey and entry carries identifiers
	scoreQueryAPI   = 5  // query mentions "api" and entry has an API field
	scoreAnyError   = 3  // flat boost for error entries
)

// userKeywords are the query tokens that imply a user/journey context.
var userKeywords = []string{"user", "username", "journey", "track"}

// RankForQuery scores every entry against the query and returns the
// top max entries by descending relevance. The sort is stable, so
// equally scored entries keep their original relative order. A max of
// zero or below returns nil.
func (a *Aggregator) RankForQuery(query string, max int) []*model.LogEntry {
	if max <= 0 {
		return nil
	}
	q := strings.ToLower(query)
	qUser := containsAny(q, userKeywords)
	qError := strings.Contains(q, "error")
	qAPI := strings.Contains(q, "api")

	entries := a.store.Entries()
	scores := make([]int, len(entries))
	ranked := make([]*model.LogEntry, len(entries))
	for i, e := range entries {
		score := 0
		if qError && e.HasError {
			score += scoreQueryError
		}
		if qUser && len(e.Identifiers) > 0 {
			score += scoreQueryUser
		}
		if qAPI && e.API != nil {
			score += scoreQueryAPI
		}
		if e.HasError {
			score += scoreAnyError
		}
		scores[i] = score
		ranked[i] = e
	}

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if max > len(order) {
		max = len(order)
	}
	out := make([]*model.LogEntry, max)
	for i := 0; i < max; i++ {
		out[i] = ranked[order[i]]
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
