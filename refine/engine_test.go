package refine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuseek/nlq/core"
)

func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(WithClock(fixedClock()))
	require.NoError(t, err)
	return e
}

func resultSet(n int, types []string, authors []string) []core.DocumentSearchResult {
	out := make([]core.DocumentSearchResult, n)
	for i := range out {
		out[i] = core.DocumentSearchResult{
			ID:    fmt.Sprintf("d%d", i),
			Title: fmt.Sprintf("Document %d", i),
			Score: 0.8,
		}
		if len(types) > 0 {
			out[i].Type = types[i%len(types)]
		}
		if len(authors) > 0 {
			out[i].Author = authors[i%len(authors)]
		}
	}
	return out
}

func hasRecencyFilter(suggestions []core.RefinementSuggestion) bool {
	for _, s := range suggestions {
		if s.Value == "modified:last-month" {
			return true
		}
	}
	return false
}

func TestSessionLifecycle(t *testing.T) {
	e := newTestEngine(t)

	id := e.StartSession(nil)
	require.NotEmpty(t, id)

	session, err := e.Session(id)
	require.NoError(t, err)
	assert.Equal(t, id, session.ID)
	assert.Empty(t, session.Queries)

	_, err = e.Session("missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestAddQuery(t *testing.T) {
	e := newTestEngine(t)
	id := e.StartSession(nil)

	t.Run("records query and replaces suggestions", func(t *testing.T) {
		first, err := e.AddQuery(id, "find budget reports", nil, resultSet(12, []string{"pdf"}, nil))
		require.NoError(t, err)
		assert.Equal(t, 1, first.Metrics.TotalQueries)
		assert.Equal(t, "find budget reports", first.CurrentQuery)
		assert.True(t, hasRecencyFilter(first.Refinements))

		second, err := e.AddQuery(id, "find budget reports 2024", nil, resultSet(2, []string{"pdf"}, nil))
		require.NoError(t, err)
		assert.Equal(t, 2, second.Metrics.TotalQueries)
		assert.False(t, hasRecencyFilter(second.Refinements), "suggestions are replaced, not accumulated")
		assert.Equal(t, 1, second.Metrics.RefinementCount)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := e.AddQuery("missing", "q", nil, nil)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestFilterSuggestions(t *testing.T) {
	e := newTestEngine(t)
	id := e.StartSession(nil)

	results := resultSet(12, []string{"pdf", "word"}, []string{"amal", "omar", "sara"})
	session, err := e.AddQuery(id, "project documents", nil, results)
	require.NoError(t, err)

	var typeFilters, authorFilters, recentFilters int
	for _, s := range session.Refinements {
		if s.Type != core.RefinementFilter {
			continue
		}
		switch {
		case s.Value == "modified:last-month":
			recentFilters++
		case len(s.Value) > 5 && s.Value[:5] == "type:":
			typeFilters++
		case len(s.Value) > 7 && s.Value[:7] == "author:":
			authorFilters++
		}
	}
	assert.Equal(t, 2, typeFilters, "one per distinct type")
	assert.Equal(t, 1, recentFilters, "results above ten suggest recency filter")
	assert.Equal(t, maxAuthorChips, authorFilters)
}

func TestExpansionSuggestions(t *testing.T) {
	e := newTestEngine(t)

	user := &core.UserContext{ID: "u1"}
	user.RecentActivity.Topics = []string{"migration"}
	id := e.StartSession(user)

	intent := &core.QueryIntent{
		Type: core.IntentSearch,
		Entities: []core.Entity{
			{Type: core.EntityDocumentType, Value: "pdf"},
			{Type: core.EntityAuthor, Value: "omar"},
			{Type: core.EntityTopic, Value: "budget"},
		},
	}
	session, err := e.AddQuery(id, "pdf by omar about budget", intent, resultSet(1, nil, nil))
	require.NoError(t, err)

	var broaden, topic bool
	for _, s := range session.Refinements {
		if s.Type != core.RefinementExpansion {
			continue
		}
		if s.Value == "budget" {
			broaden = true
		}
		if s.Value == "migration" {
			topic = true
		}
	}
	assert.True(t, broaden, "few results with many entities suggest dropping one")
	assert.True(t, topic, "recent topic inclusion offered")
}

func TestNarrowingSuggestions(t *testing.T) {
	e := newTestEngine(t)
	id := e.StartSession(nil)

	session, err := e.AddQuery(id, "all reports", nil, resultSet(25, []string{"pdf"}, nil))
	require.NoError(t, err)

	var exact bool
	for _, s := range session.Refinements {
		if s.Type == core.RefinementNarrowing && s.Value == `"all reports"` {
			exact = true
		}
	}
	assert.True(t, exact, "too many results suggest exact phrase")

	session, err = e.AddQuery(id, "quarterly reports", nil, resultSet(3, nil, nil))
	require.NoError(t, err)
	var combined string
	for _, s := range session.Refinements {
		if s.Type == core.RefinementNarrowing && s.Suggestion == "Combine with your previous query" {
			combined = s.Value
		}
	}
	assert.Equal(t, "all reports quarterly", combined)
}

func TestRephraseSuggestions(t *testing.T) {
	e := newTestEngine(t)
	id := e.StartSession(nil)

	session, err := e.AddQuery(id, "show me budget reports", nil, resultSet(3, nil, nil))
	require.NoError(t, err)

	var rephrases []core.RefinementSuggestion
	for _, s := range session.Refinements {
		if s.Type == core.RefinementRephrase {
			rephrases = append(rephrases, s)
		}
	}
	require.NotEmpty(t, rephrases)
	assert.Equal(t, "find budget reports", rephrases[0].Value)
}

func TestClarificationSuggestions(t *testing.T) {
	e := newTestEngine(t)
	id := e.StartSession(nil)

	t.Run("vague term named", func(t *testing.T) {
		session, err := e.AddQuery(id, "find stuff", nil, resultSet(3, nil, nil))
		require.NoError(t, err)
		var clarifications []core.RefinementSuggestion
		for _, s := range session.Refinements {
			if s.Type == core.RefinementClarification {
				clarifications = append(clarifications, s)
			}
		}
		require.NotEmpty(t, clarifications)
		assert.Contains(t, clarifications[0].Suggestion, "stuff")
	})

	t.Run("short query asks for context", func(t *testing.T) {
		session, err := e.AddQuery(id, "reports", nil, resultSet(3, nil, nil))
		require.NoError(t, err)
		var found bool
		for _, s := range session.Refinements {
			if s.Type == core.RefinementClarification {
				assert.Contains(t, s.Suggestion, "context")
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("clear query gets none", func(t *testing.T) {
		session, err := e.AddQuery(id, "quarterly finance budget reports", nil, resultSet(3, nil, nil))
		require.NoError(t, err)
		for _, s := range session.Refinements {
			assert.NotEqual(t, core.RefinementClarification, s.Type)
		}
	})
}

func TestFollowUpPriorities(t *testing.T) {
	e := newTestEngine(t)

	t.Run("no results on first query", func(t *testing.T) {
		id := e.StartSession(nil)
		session, err := e.AddQuery(id, "nonexistent thing", nil, nil)
		require.NoError(t, err)
		require.NotEmpty(t, session.FollowUpQuestions)
		assert.Equal(t, "clarification", session.FollowUpQuestions[0].Type)
		assert.Equal(t, priorityNoResults, session.FollowUpQuestions[0].Priority)
	})

	t.Run("too many results", func(t *testing.T) {
		id := e.StartSession(nil)
		session, err := e.AddQuery(id, "reports", nil, resultSet(30, []string{"pdf"}, nil))
		require.NoError(t, err)
		var found bool
		for _, f := range session.FollowUpQuestions {
			if f.Type == "narrowing" {
				assert.Equal(t, priorityTooManyResults, f.Priority)
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("satisfaction check beyond first query", func(t *testing.T) {
		id := e.StartSession(nil)
		_, err := e.AddQuery(id, "first", nil, resultSet(3, nil, nil))
		require.NoError(t, err)
		session, err := e.AddQuery(id, "second", nil, resultSet(3, nil, nil))
		require.NoError(t, err)
		var found bool
		for _, f := range session.FollowUpQuestions {
			if f.Type == "satisfaction" {
				assert.Equal(t, prioritySatisfaction, f.Priority)
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestAnalysisScores(t *testing.T) {
	analysis := analyze("find quarterly budget reports from finance", &core.QueryIntent{
		Type:     core.IntentSearch,
		Entities: []core.Entity{{Type: core.EntityTopic, Value: "budget"}},
	}, resultSet(10, []string{"pdf", "word"}, []string{"amal", "omar"}))

	assert.Greater(t, analysis.QueryQuality.Specificity, 0.5)
	assert.GreaterOrEqual(t, analysis.QueryQuality.Clarity, 0.9)
	assert.InDelta(t, 0.5, analysis.ResultQuality.Coverage, 0.001)
	assert.InDelta(t, 0.8, analysis.ResultQuality.Relevance, 0.001)

	vague := analyze("stuff", nil, nil)
	assert.Less(t, vague.QueryQuality.Clarity, lowClarity)
	assert.Zero(t, vague.ResultQuality.Relevance)
}

func TestRecordSatisfaction(t *testing.T) {
	e := newTestEngine(t)
	id := e.StartSession(nil)

	require.Error(t, e.RecordSatisfaction(id, 0.9))

	_, err := e.AddQuery(id, "first query", nil, resultSet(3, nil, nil))
	require.NoError(t, err)
	require.NoError(t, e.RecordSatisfaction(id, 0.9))

	_, err = e.AddQuery(id, "second query", nil, resultSet(3, nil, nil))
	require.NoError(t, err)
	require.NoError(t, e.RecordSatisfaction(id, 0.5))

	session, err := e.Session(id)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, session.Metrics.AverageSatisfaction, 0.001)
	assert.Equal(t, 1, session.Metrics.SuccessfulSearches)

	assert.ErrorIs(t, e.RecordSatisfaction("missing", 1), core.ErrNotFound)
}

func TestApplyRefinement(t *testing.T) {
	t.Run("filter appends value", func(t *testing.T) {
		got := ApplyRefinement("budget reports", core.RefinementSuggestion{
			Type: core.RefinementFilter, Value: "type:pdf",
		})
		assert.Equal(t, "budget reports type:pdf", got)
	})

	t.Run("rephrase replaces query", func(t *testing.T) {
		got := ApplyRefinement("show me stuff", core.RefinementSuggestion{
			Type: core.RefinementRephrase, Value: "find stuff",
		})
		assert.Equal(t, "find stuff", got)
	})

	t.Run("no duplicate append", func(t *testing.T) {
		got := ApplyRefinement("budget type:pdf", core.RefinementSuggestion{
			Type: core.RefinementFilter, Value: "type:pdf",
		})
		assert.Equal(t, "budget type:pdf", got)
	})

	t.Run("empty value keeps query", func(t *testing.T) {
		got := ApplyRefinement("budget", core.RefinementSuggestion{
			Type: core.RefinementNarrowing,
		})
		assert.Equal(t, "budget", got)
	})
}

func TestCleanupOldSessions(t *testing.T) {
	current := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	e, err := NewEngine(WithClock(func() time.Time { return current }))
	require.NoError(t, err)

	stale := e.StartSession(nil)
	current = current.Add(2 * time.Hour)
	fresh := e.StartSession(nil)

	purged := e.CleanupOldSessions(time.Hour)
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, e.SessionCount())

	_, err = e.Session(stale)
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = e.Session(fresh)
	assert.NoError(t, err)
}
