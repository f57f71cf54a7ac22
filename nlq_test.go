package nlq

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuseek/nlq/core"
	"github.com/docuseek/nlq/pipeline"
	"github.com/docuseek/nlq/pipeline/mock"
)

func TestNewEngine(t *testing.T) {
	t.Run("in-memory engine", func(t *testing.T) {
		engine, err := NewEngine()
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		assert.NotNil(t, engine.Intents())
		assert.NotNil(t, engine.Expander())
		assert.NotNil(t, engine.Multilingual())
		assert.NotNil(t, engine.Contexts())
		assert.NotNil(t, engine.Templates())
		assert.NotNil(t, engine.Refiner())
		assert.NotNil(t, engine.Orchestrator())
	})

	t.Run("with storage path", func(t *testing.T) {
		engine, err := NewEngine(WithStoragePath(filepath.Join(t.TempDir(), "nlq_db")))
		require.NoError(t, err)
		require.NotNil(t, engine)
		assert.NoError(t, engine.Close())
	})
}

func TestEngine_ProcessQuery(t *testing.T) {
	searcher := mock.NewSearcher(
		core.DocumentSearchResult{ID: "d1", Title: "Budget report", Type: "pdf", Score: 0.9},
		core.DocumentSearchResult{ID: "d2", Title: "Travel policy", Type: "pdf", Score: 0.6},
	)
	engine, err := NewEngine(WithSearcher(searcher))
	require.NoError(t, err)
	defer engine.Close()

	result, err := engine.ProcessQuery(context.Background(), "find pdf documents", pipeline.ProcessOptions{
		User: &core.UserContext{ID: "user-1"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "find pdf documents", result.OriginalQuery)
	assert.NotNil(t, result.Intent)
	assert.Equal(t, 1, searcher.Calls())

	// A matched template feeds the usage analytics.
	require.NotNil(t, result.TemplateMatch)
	stats := engine.Templates().Usage(result.TemplateMatch.Template.ID)
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 1, stats.UniqueUsers)
}

func TestEngine_ProcessVoiceQuery(t *testing.T) {
	speech := mock.NewSpeech(core.VoiceResult{Recognized: "find recent contracts", Confidence: 0.92})
	engine, err := NewEngine(WithSpeech(speech))
	require.NoError(t, err)
	defer engine.Close()

	voice, result, err := engine.ProcessVoiceQuery(context.Background(), []byte("audio"), pipeline.ProcessOptions{})
	require.NoError(t, err)
	require.NotNil(t, voice)
	require.NotNil(t, result)
	assert.Equal(t, "find recent contracts", voice.Recognized)
	assert.Equal(t, "find recent contracts", result.OriginalQuery)
}

func TestEngine_Sessions(t *testing.T) {
	var mu sync.Mutex
	current := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	engine, err := NewEngine(WithClock(clock))
	require.NoError(t, err)
	defer engine.Close()

	sessionID := engine.StartSession(&core.UserContext{ID: "user-1"})
	require.NotEmpty(t, sessionID)

	_, err = engine.ProcessQuery(context.Background(), "find budget reports", pipeline.ProcessOptions{
		SessionID: sessionID,
	})
	require.NoError(t, err)

	require.NoError(t, engine.RecordSatisfaction(sessionID, 0.8))
	assert.Equal(t, 0, engine.CleanupSessions(time.Hour))

	mu.Lock()
	current = current.Add(2 * time.Hour)
	mu.Unlock()
	assert.Equal(t, 1, engine.CleanupSessions(time.Hour))
}

func TestEngine_Suggest(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	defer engine.Close()

	// The seed organizational catalog carries "quarterly budget report".
	suggestions := engine.Suggest("budget")
	assert.NotEmpty(t, suggestions)
}

func TestEngine_Persistence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nlq_db")
	ctx := context.Background()

	engine, err := NewEngine(WithStoragePath(dir))
	require.NoError(t, err)

	require.NoError(t, engine.AddSynonym(ctx, core.LanguageEnglish, "ledger", "journal"))
	require.NoError(t, engine.AddAcronym(ctx, "RFP", "request for proposal"))
	require.NoError(t, engine.AddTranslation(ctx, "ledger", "دفتر الأستاذ", false))

	result, err := engine.ProcessQuery(ctx, "find pdf documents", pipeline.ProcessOptions{
		User: &core.UserContext{ID: "user-1"},
	})
	require.NoError(t, err)
	require.NotNil(t, result.TemplateMatch)
	templateID := result.TemplateMatch.Template.ID
	require.NoError(t, engine.Close())

	// A fresh engine on the same path sees the persisted lexicon and
	// usage counters.
	reopened, err := NewEngine(WithStoragePath(dir))
	require.NoError(t, err)
	defer reopened.Close()

	expanded := reopened.Expander().ExpandQuery("ledger", 10, core.LanguageEnglish)
	require.NotNil(t, expanded)
	terms := make([]string, 0, len(expanded.ExpandedTerms))
	for _, term := range expanded.ExpandedTerms {
		terms = append(terms, term.Term)
	}
	assert.Contains(t, terms, "journal")

	stats := reopened.Templates().Usage(templateID)
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 1, stats.UniqueUsers)
}

func TestEngine_Close(t *testing.T) {
	engine, err := NewEngine(WithStoragePath(t.TempDir()))
	require.NoError(t, err)
	assert.NoError(t, engine.Close())
}
