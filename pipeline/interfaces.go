package pipeline

import (
	"context"

	"github.com/docuseek/nlq/core"
	"github.com/docuseek/nlq/multilang"
	"github.com/docuseek/nlq/templates"
)

// IntentExtractor classifies a query. It is the only mandatory
// component: its failure triggers the whole-pipeline fallback.
type IntentExtractor interface {
	Extract(query string, lang core.Language) (*core.QueryIntent, error)
}

// QueryExpander enriches a query with related terms and variations. A
// nil result is treated as a stage failure and omitted.
type QueryExpander interface {
	ExpandQuery(query string, maxTerms int, lang core.Language) *core.ExpandedQuery
}

// MultilingualProcessor handles detection, translation and
// cross-language matching.
type MultilingualProcessor interface {
	DetectLanguage(text string) core.LanguageDetectionResult
	Translate(text string, target, source core.Language) (multilang.TranslationResult, error)
	FindCrossLanguageMatches(query string, docs []core.DocumentSearchResult, max int) []core.CrossLanguageMatch
	ShouldUseRTL(text string) bool
}

// TemplateLibrary matches and executes question templates.
type TemplateLibrary interface {
	SearchTemplates(query string, max int) []core.TemplateMatch
	ExecuteTemplate(id string, params map[string]string) (*templates.ExecutedTemplate, error)
	List(category string, lang core.Language) []core.QuestionTemplate
}

// RefinementEngine tracks sessions and produces refinement suggestions.
type RefinementEngine interface {
	StartSession(user *core.UserContext) string
	AddQuery(sessionID, text string, intent *core.QueryIntent, results []core.DocumentSearchResult) (core.QuerySession, error)
}

// DocumentSearcher is the document-search collaborator. The orchestrator
// awaits it without imposing a timeout; callers bound it through ctx.
type DocumentSearcher interface {
	Search(ctx context.Context, query string, max int) ([]core.DocumentSearchResult, error)
}

// SpeechToText is the voice input collaborator.
type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte, lang core.Language) (*core.VoiceResult, error)
}

// Monitor receives orchestrator lifecycle callbacks. All methods must be
// cheap and non-blocking.
type Monitor interface {
	CacheHit(key string)
	CacheMiss(key string)
	StageSkipped(stage string)
	StageFailed(stage string, err error)
	FallbackUsed(query string)
}

// NoopMonitor ignores every callback.
type NoopMonitor struct{}

func (NoopMonitor) CacheHit(string)           {}
func (NoopMonitor) CacheMiss(string)          {}
func (NoopMonitor) StageSkipped(string)       {}
func (NoopMonitor) StageFailed(string, error) {}
func (NoopMonitor) FallbackUsed(string)       {}
