package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuseek/nlq/core"
	"github.com/docuseek/nlq/multilang"
	"github.com/docuseek/nlq/templates"
)

type stubIntents struct {
	mu         sync.Mutex
	calls      int
	err        error
	confidence float64
	entities   []core.Entity
}

func (s *stubIntents) Extract(query string, lang core.Language) (*core.QueryIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &core.QueryIntent{
		Type:       core.IntentSearch,
		Action:     "find",
		Confidence: s.confidence,
		Entities:   s.entities,
	}, nil
}

func (s *stubIntents) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubExpander struct {
	mu     sync.Mutex
	calls  int
	result *core.ExpandedQuery
}

func (s *stubExpander) ExpandQuery(query string, maxTerms int, lang core.Language) *core.ExpandedQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.result
}

func (s *stubExpander) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubTemplates struct {
	match    *core.TemplateMatch
	executed *templates.ExecutedTemplate
	execErr  error
}

func (s *stubTemplates) SearchTemplates(query string, max int) []core.TemplateMatch {
	if s.match == nil {
		return nil
	}
	return []core.TemplateMatch{*s.match}
}

func (s *stubTemplates) ExecuteTemplate(id string, params map[string]string) (*templates.ExecutedTemplate, error) {
	if s.execErr != nil {
		return nil, s.execErr
	}
	return s.executed, nil
}

func (s *stubTemplates) List(category string, lang core.Language) []core.QuestionTemplate {
	return nil
}

type stubRefiner struct {
	session core.QuerySession
	err     error
}

func (s *stubRefiner) StartSession(user *core.UserContext) string { return "session-1" }

func (s *stubRefiner) AddQuery(sessionID, text string, intent *core.QueryIntent, results []core.DocumentSearchResult) (core.QuerySession, error) {
	if s.err != nil {
		return core.QuerySession{}, s.err
	}
	return s.session, nil
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestMultilang(t *testing.T) *multilang.Processor {
	t.Helper()
	p, err := multilang.NewProcessor()
	require.NoError(t, err)
	return p
}

// countingMultilang wraps a real processor and counts detection calls.
type countingMultilang struct {
	*multilang.Processor
	mu      sync.Mutex
	detects int
}

func (c *countingMultilang) DetectLanguage(text string) core.LanguageDetectionResult {
	c.mu.Lock()
	c.detects++
	c.mu.Unlock()
	return c.Processor.DetectLanguage(text)
}

func (c *countingMultilang) Detects() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detects
}

func TestCacheBehavior(t *testing.T) {
	clock := newTestClock()
	intents := &stubIntents{confidence: 0.8}
	o, err := NewOrchestrator(Components{Intents: intents},
		WithClock(clock.Now),
		WithConfig(Config{
			CacheEnabled:            true,
			CacheTTL:                time.Minute,
			MaxCacheSize:            2,
			PerformanceOptimization: PerformanceBasic,
		}))
	require.NoError(t, err)
	defer o.Close()

	ctx := context.Background()

	t.Run("hit short circuits", func(t *testing.T) {
		first, err := o.ProcessQuery(ctx, "budget reports", ProcessOptions{})
		require.NoError(t, err)
		assert.False(t, first.Metadata.CacheHit)
		require.Equal(t, 1, intents.Calls())

		second, err := o.ProcessQuery(ctx, "budget reports", ProcessOptions{})
		require.NoError(t, err)
		assert.True(t, second.Metadata.CacheHit)
		assert.Equal(t, 1, intents.Calls(), "no component calls on a hit")
		assert.Equal(t, first.Confidence, second.Confidence)
	})

	t.Run("skipCache bypasses", func(t *testing.T) {
		before := intents.Calls()
		result, err := o.ProcessQuery(ctx, "budget reports", ProcessOptions{SkipCache: true})
		require.NoError(t, err)
		assert.False(t, result.Metadata.CacheHit)
		assert.Equal(t, before+1, intents.Calls())
	})

	t.Run("ttl expiry at lookup", func(t *testing.T) {
		before := intents.Calls()
		clock.Advance(2 * time.Minute)
		result, err := o.ProcessQuery(ctx, "budget reports", ProcessOptions{})
		require.NoError(t, err)
		assert.False(t, result.Metadata.CacheHit)
		assert.Equal(t, before+1, intents.Calls())
	})

	t.Run("hit skips language detection", func(t *testing.T) {
		ml := &countingMultilang{Processor: newTestMultilang(t)}
		o2, err := NewOrchestrator(Components{Intents: &stubIntents{confidence: 0.8}, Multilang: ml},
			WithConfig(Config{
				EnableMultilingualSupport: true,
				CacheEnabled:              true,
				CacheTTL:                  time.Minute,
				MaxCacheSize:              2,
				PerformanceOptimization:   PerformanceBasic,
			}))
		require.NoError(t, err)
		defer o2.Close()

		_, err = o2.ProcessQuery(ctx, "annual report", ProcessOptions{})
		require.NoError(t, err)
		second, err := o2.ProcessQuery(ctx, "annual report", ProcessOptions{})
		require.NoError(t, err)
		assert.True(t, second.Metadata.CacheHit)
		assert.Equal(t, 1, ml.Detects(), "a hit must not touch the multilingual component")
	})

	t.Run("fifo eviction", func(t *testing.T) {
		_, err := o.ProcessQuery(ctx, "query one", ProcessOptions{})
		require.NoError(t, err)
		_, err = o.ProcessQuery(ctx, "query two", ProcessOptions{})
		require.NoError(t, err)
		_, err = o.ProcessQuery(ctx, "query three", ProcessOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2, o.cache.len())

		// query one was the oldest entry, so it recomputes.
		before := intents.Calls()
		result, err := o.ProcessQuery(ctx, "query one", ProcessOptions{})
		require.NoError(t, err)
		assert.False(t, result.Metadata.CacheHit)
		assert.Equal(t, before+1, intents.Calls())
	})
}

func TestFallbackOnIntentFailure(t *testing.T) {
	intents := &stubIntents{err: errors.New("classifier exploded")}
	o, err := NewOrchestrator(Components{Intents: intents})
	require.NoError(t, err)
	defer o.Close()

	result, err := o.ProcessQuery(context.Background(), "anything at all", ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, fallbackConfidence, result.Confidence)
	assert.Equal(t, []string{componentFallback}, result.Metadata.UsedComponents)
	assert.True(t, result.Metadata.ErrorOccurred)
	assert.Equal(t, "anything at all", result.ProcessedQuery)

	// Error results are never cached.
	before := intents.Calls()
	_, err = o.ProcessQuery(context.Background(), "anything at all", ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, before+1, intents.Calls())
}

func TestGracefulDegradation(t *testing.T) {
	intents := &stubIntents{confidence: 0.8}
	// A nil expansion result counts as a stage failure.
	expander := &stubExpander{result: nil}
	o, err := NewOrchestrator(Components{
		Intents:   intents,
		Expander:  expander,
		Multilang: newTestMultilang(t),
	})
	require.NoError(t, err)
	defer o.Close()

	result, err := o.ProcessQuery(context.Background(), "find budget documents", ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, expander.Calls())
	assert.Nil(t, result.ExpandedQuery)
	assert.NotContains(t, result.Metadata.UsedComponents, componentExpansion)
	assert.Contains(t, result.Metadata.UsedComponents, componentIntent)
	assert.Contains(t, result.Metadata.UsedComponents, componentMultilingual)
	assert.False(t, result.Metadata.ErrorOccurred)
}

func TestToggles(t *testing.T) {
	intents := &stubIntents{confidence: 0.8}
	expander := &stubExpander{result: &core.ExpandedQuery{}}
	off := false
	o, err := NewOrchestrator(Components{Intents: intents, Expander: expander},
		WithConfig(Config{PerformanceOptimization: PerformanceBasic}))
	require.NoError(t, err)
	defer o.Close()

	require.NoError(t, o.UpdateConfig(ConfigPatch{EnableQueryExpansion: &off}))

	result, err := o.ProcessQuery(context.Background(), "find budget documents", ProcessOptions{})
	require.NoError(t, err)
	assert.Zero(t, expander.Calls(), "disabled component is never invoked")
	assert.Equal(t, []string{componentIntent}, result.Metadata.UsedComponents)
}

func TestFinalQueryPreference(t *testing.T) {
	expanded := &core.ExpandedQuery{
		RankedVariations: []core.QueryVariation{{Query: "budget OR allocation", Score: 0.72}},
	}

	t.Run("template generated wins", func(t *testing.T) {
		intents := &stubIntents{confidence: 0.8}
		tpls := &stubTemplates{
			match:    &core.TemplateMatch{Template: core.QuestionTemplate{ID: "t1"}, Score: 0.9},
			executed: &templates.ExecutedTemplate{TemplateID: "t1", Query: "Find PDF documents"},
		}
		o, err := NewOrchestrator(Components{
			Intents:   intents,
			Expander:  &stubExpander{result: expanded},
			Templates: tpls,
		})
		require.NoError(t, err)
		defer o.Close()

		result, err := o.ProcessQuery(context.Background(), "find budget documents", ProcessOptions{})
		require.NoError(t, err)
		assert.Equal(t, "Find PDF documents", result.ProcessedQuery)
	})

	t.Run("top variation when no template", func(t *testing.T) {
		o, err := NewOrchestrator(Components{
			Intents:  &stubIntents{confidence: 0.8},
			Expander: &stubExpander{result: expanded},
		})
		require.NoError(t, err)
		defer o.Close()

		result, err := o.ProcessQuery(context.Background(), "find budget documents", ProcessOptions{})
		require.NoError(t, err)
		assert.Equal(t, "budget OR allocation", result.ProcessedQuery)
	})

	t.Run("raw query as last resort", func(t *testing.T) {
		o, err := NewOrchestrator(Components{Intents: &stubIntents{confidence: 0.8}})
		require.NoError(t, err)
		defer o.Close()

		result, err := o.ProcessQuery(context.Background(), "find budget documents", ProcessOptions{})
		require.NoError(t, err)
		assert.Equal(t, "find budget documents", result.ProcessedQuery)
	})
}

func TestConfidenceIsMeanOfRanStages(t *testing.T) {
	intents := &stubIntents{confidence: 0.8}
	expander := &stubExpander{result: &core.ExpandedQuery{
		RankedVariations: []core.QueryVariation{{Query: "v", Score: 0.6}},
	}}
	o, err := NewOrchestrator(Components{Intents: intents, Expander: expander})
	require.NoError(t, err)
	defer o.Close()

	result, err := o.ProcessQuery(context.Background(), "find budget documents", ProcessOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, result.Confidence, 0.001, "mean of intent 0.8 and expansion 0.6")
}

func TestUpdateConfig(t *testing.T) {
	o, err := NewOrchestrator(Components{Intents: &stubIntents{confidence: 0.8}})
	require.NoError(t, err)
	defer o.Close()

	t.Run("merges partial updates", func(t *testing.T) {
		ttl := 10 * time.Second
		require.NoError(t, o.UpdateConfig(ConfigPatch{CacheTTL: &ttl}))
		got := o.Config()
		assert.Equal(t, ttl, got.CacheTTL)
		assert.True(t, got.EnableQueryExpansion, "untouched fields keep defaults")
	})

	t.Run("rejects invalid mode", func(t *testing.T) {
		bad := PerformanceMode("turbo")
		err := o.UpdateConfig(ConfigPatch{PerformanceOptimization: &bad})
		assert.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("aggressive switch prewarms", func(t *testing.T) {
		aggressive := PerformanceAggressive
		require.NoError(t, o.UpdateConfig(ConfigPatch{PerformanceOptimization: &aggressive}))
		assert.Equal(t, PerformanceAggressive, o.Config().PerformanceOptimization)
	})
}

func TestValidation(t *testing.T) {
	o, err := NewOrchestrator(Components{Intents: &stubIntents{confidence: 0.8}})
	require.NoError(t, err)
	defer o.Close()

	_, err = o.ProcessQuery(context.Background(), "", ProcessOptions{})
	assert.ErrorIs(t, err, core.ErrEmptyQuery)

	_, err = NewOrchestrator(Components{})
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestProcessQueryBatch(t *testing.T) {
	intents := &stubIntents{confidence: 0.8}
	o, err := NewOrchestrator(Components{Intents: intents},
		WithConfig(Config{PerformanceOptimization: PerformanceAggressive}))
	require.NoError(t, err)
	defer o.Close()

	queries := []string{"first query", "second query", "third query", "fourth query", "fifth query", "sixth query"}
	items := o.ProcessQueryBatch(context.Background(), queries, ProcessOptions{})
	require.Len(t, items, len(queries))
	for i, item := range items {
		assert.Equal(t, queries[i], item.Query)
		require.NoError(t, item.Err)
		assert.Equal(t, queries[i], item.Result.OriginalQuery)
	}

	empty := o.ProcessQueryBatch(context.Background(), nil, ProcessOptions{})
	assert.Empty(t, empty)
}
