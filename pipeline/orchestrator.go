// Copyright 2025 Docuseek Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/docuseek/nlq/core"
)

// Component names recorded in result metadata.
const (
	componentIntent       = "intent"
	componentExpansion    = "expansion"
	componentMultilingual = "multilingual"
	componentTemplates    = "templates"
	componentRefinement   = "refinement"
	componentFallback     = "fallback"
)

const (
	fallbackConfidence = 0.3
	defaultMaxResults  = 20
	defaultMaxTerms    = 10
	defaultPoolSize    = 8
	batchChunkSize     = 4
	warmupQuery        = "find recent documents"
)

// Components are the pipeline stages the orchestrator sequences. Intents
// is mandatory; a nil optional component behaves like a disabled one.
type Components struct {
	Intents   IntentExtractor
	Expander  QueryExpander
	Multilang MultilingualProcessor
	Templates TemplateLibrary
	Refiner   RefinementEngine
	Searcher  DocumentSearcher
	Speech    SpeechToText
}

// Orchestrator sequences the pipeline stages and owns configuration,
// caching and the work queue. Stages within one ProcessQuery call run
// strictly sequentially; independent calls may interleave and share the
// cache.
type Orchestrator struct {
	components Components

	configMu sync.RWMutex
	config   Config

	cache   *resultCache
	pool    *ants.Pool
	monitor Monitor
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithConfig replaces the default configuration.
func WithConfig(config Config) Option {
	return func(o *Orchestrator) error {
		if err := config.validate(); err != nil {
			return err
		}
		o.config = config
		return nil
	}
}

// WithMonitor installs a lifecycle monitor.
// Default is NoopMonitor.
func WithMonitor(m Monitor) Option {
	return func(o *Orchestrator) error {
		if m == nil {
			m = NoopMonitor{}
		}
		o.monitor = m
		return nil
	}
}

// WithClock overrides the time source. Meant for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) error {
		if now == nil {
			now = time.Now
		}
		o.now = now
		return nil
	}
}

// NewOrchestrator wires the pipeline. The intent extractor is required.
func NewOrchestrator(components Components, opts ...Option) (*Orchestrator, error) {
	if components.Intents == nil {
		return nil, fmt.Errorf("%w: intent extractor is required", core.ErrValidation)
	}

	o := &Orchestrator{
		components: components,
		config:     DefaultConfig(),
		monitor:    NoopMonitor{},
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(defaultPoolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("%w: work queue: %w", core.ErrPipelineFailure, err)
	}
	o.pool = pool
	o.cache = newResultCache(o.config.CacheTTL, o.config.MaxCacheSize, o.now)
	return o, nil
}

// Close releases the work queue.
func (o *Orchestrator) Close() {
	o.pool.Release()
}

// Config returns the current configuration.
func (o *Orchestrator) Config() Config {
	o.configMu.RLock()
	defer o.configMu.RUnlock()
	return o.config
}

// UpdateConfig merges a partial update into the configuration. Switching
// to aggressive mode pre-warms the intent extractor and expander and
// preloads the template catalog.
func (o *Orchestrator) UpdateConfig(patch ConfigPatch) error {
	o.configMu.Lock()
	merged := patch.apply(o.config)
	if err := merged.validate(); err != nil {
		o.configMu.Unlock()
		return err
	}
	wasAggressive := o.config.PerformanceOptimization == PerformanceAggressive
	o.config = merged
	o.configMu.Unlock()

	o.cache.resize(merged.CacheTTL, merged.MaxCacheSize)

	if merged.PerformanceOptimization == PerformanceAggressive && !wasAggressive {
		o.prewarm()
	}
	return nil
}

func (o *Orchestrator) prewarm() {
	if _, err := o.components.Intents.Extract(warmupQuery, core.LanguageEnglish); err != nil {
		o.logger.Debug("prewarm intent failed", "error", err)
	}
	if o.components.Expander != nil {
		o.components.Expander.ExpandQuery(warmupQuery, defaultMaxTerms, core.LanguageEnglish)
	}
	if o.components.Templates != nil {
		o.components.Templates.List("", "")
	}
}

// ProcessOptions tune one ProcessQuery call.
type ProcessOptions struct {
	User         *core.UserContext
	SessionID    string
	Language     core.Language // skip detection when set
	SkipCache    bool
	HighPriority bool // aggressive mode only: bypass the work queue
	MaxResults   int
}

// ProcessQuery runs the full pipeline for one query.
//
// Intent extraction always runs; its failure yields the fixed fallback
// result instead of an error. Every later stage is gated by its toggle
// and a stage failure only omits that stage's output. The final query
// prefers a template-generated query, then the top expansion variation,
// then the raw query.
func (o *Orchestrator) ProcessQuery(ctx context.Context, query string, opts ProcessOptions) (*core.ProcessingResult, error) {
	if err := core.ValidateQueryText(query); err != nil {
		return nil, err
	}

	config := o.Config()

	var result *core.ProcessingResult
	run := func() { result = o.process(ctx, query, opts, config) }

	if config.PerformanceOptimization == PerformanceAggressive && opts.HighPriority {
		run()
		return result, ctx.Err()
	}
	done := make(chan struct{})
	if err := o.pool.Submit(func() {
		defer close(done)
		run()
	}); err != nil {
		// Queue unavailable, degrade to inline execution.
		run()
		return result, ctx.Err()
	}
	select {
	case <-done:
		return result, ctx.Err()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (o *Orchestrator) process(ctx context.Context, query string, opts ProcessOptions, config Config) *core.ProcessingResult {
	start := o.now()

	var userID string
	if opts.User != nil {
		userID = opts.User.ID
	}
	// Keyed on the raw request so a hit touches no component.
	key := core.Fingerprint(query, string(opts.Language), userID)

	useCache := config.CacheEnabled && !opts.SkipCache
	if useCache {
		if cached, ok := o.cache.get(key); ok {
			o.monitor.CacheHit(key)
			cached.Metadata.CacheHit = true
			return &cached
		}
		o.monitor.CacheMiss(key)
	}

	lang := opts.Language
	var detection core.LanguageDetectionResult
	if o.components.Multilang != nil {
		detection = o.components.Multilang.DetectLanguage(query)
		if lang == "" {
			lang = detection.Language
		}
	}
	if lang == "" {
		lang = core.LanguageEnglish
	}

	// Pattern tables are per concrete language; mixed queries classify
	// against the English tables.
	stageLang := lang
	if stageLang == core.LanguageMixed {
		stageLang = core.LanguageEnglish
	}

	intent, err := o.components.Intents.Extract(query, stageLang)
	if err != nil {
		o.monitor.FallbackUsed(query)
		o.logger.Warn("intent extraction failed, using fallback", "error", err)
		return &core.ProcessingResult{
			OriginalQuery:  query,
			ProcessedQuery: query,
			Confidence:     fallbackConfidence,
			ProcessingTime: o.now().Sub(start),
			Metadata: core.ResultMetadata{
				UsedComponents: []string{componentFallback},
				ErrorOccurred:  true,
			},
		}
	}

	result := &core.ProcessingResult{
		OriginalQuery: query,
		Intent:        intent,
		Metadata: core.ResultMetadata{
			UsedComponents: []string{componentIntent},
		},
	}
	confidences := []float64{intent.Confidence}

	if config.EnableQueryExpansion && o.components.Expander != nil {
		if expanded := o.components.Expander.ExpandQuery(query, defaultMaxTerms, stageLang); expanded != nil {
			result.ExpandedQuery = expanded
			result.Metadata.UsedComponents = append(result.Metadata.UsedComponents, componentExpansion)
			confidences = append(confidences, expansionConfidence(expanded))
		} else {
			o.monitor.StageFailed(componentExpansion, core.ErrComponentFailure)
		}
	} else {
		o.monitor.StageSkipped(componentExpansion)
	}

	if config.EnableMultilingualSupport && o.components.Multilang != nil {
		if ml := o.multilingualStage(query, detection); ml != nil {
			result.MultilingualResult = ml
			result.Metadata.UsedComponents = append(result.Metadata.UsedComponents, componentMultilingual)
			confidences = append(confidences, ml.TranslationConfidence)
		}
	} else {
		o.monitor.StageSkipped(componentMultilingual)
	}

	if config.EnableTemplateSystem && o.components.Templates != nil {
		if match := o.templateStage(query, intent); match != nil {
			result.TemplateMatch = match
			result.Metadata.UsedComponents = append(result.Metadata.UsedComponents, componentTemplates)
			confidences = append(confidences, match.Score)
		}
	} else {
		o.monitor.StageSkipped(componentTemplates)
	}

	result.ProcessedQuery = finalQuery(query, result)

	if o.components.Searcher != nil {
		maxResults := opts.MaxResults
		if maxResults <= 0 {
			maxResults = defaultMaxResults
		}
		results, err := o.components.Searcher.Search(ctx, result.ProcessedQuery, maxResults)
		if err != nil {
			o.monitor.StageFailed("search", err)
			o.logger.Warn("document search failed", "error", err)
		} else {
			result.SearchResults = results
			if result.MultilingualResult != nil {
				result.MultilingualResult.CrossLanguageMatches =
					o.components.Multilang.FindCrossLanguageMatches(query, results, defaultMaxResults)
			}
		}
	}

	if config.EnableQueryRefinement && o.components.Refiner != nil && opts.SessionID != "" {
		session, err := o.components.Refiner.AddQuery(opts.SessionID, result.ProcessedQuery, intent, result.SearchResults)
		if err != nil {
			o.monitor.StageFailed(componentRefinement, err)
			o.logger.Warn("refinement failed", "error", err)
		} else {
			result.RefinementSuggestions = session.Refinements
			result.Metadata.UsedComponents = append(result.Metadata.UsedComponents, componentRefinement)
			if c, ok := refinementConfidence(session.Refinements); ok {
				confidences = append(confidences, c)
			}
		}
	} else {
		o.monitor.StageSkipped(componentRefinement)
	}

	result.Confidence = core.Clamp01(mean(confidences))
	result.ProcessingTime = o.now().Sub(start)

	if config.DebugMode {
		o.logger.Debug("query processed",
			"query", query,
			"final", result.ProcessedQuery,
			"components", result.Metadata.UsedComponents,
			"confidence", result.Confidence,
			"took", result.ProcessingTime)
	}

	if useCache && !result.Metadata.ErrorOccurred {
		o.cache.put(key, *result)
	}
	return result
}

func (o *Orchestrator) multilingualStage(query string, detection core.LanguageDetectionResult) *core.MultilingualResult {
	target := core.LanguageArabic
	if detection.Language == core.LanguageArabic {
		target = core.LanguageEnglish
	}
	translation, err := o.components.Multilang.Translate(query, target, detection.Language)
	if err != nil {
		o.monitor.StageFailed(componentMultilingual, err)
		o.logger.Warn("translation failed", "error", err)
		return nil
	}
	return &core.MultilingualResult{
		Detection:             detection,
		TranslatedQuery:       translation.Text,
		TranslationConfidence: translation.Confidence,
		RequiresRTL:           o.components.Multilang.ShouldUseRTL(query),
	}
}

func (o *Orchestrator) templateStage(query string, intent *core.QueryIntent) *core.TemplateMatch {
	matches := o.components.Templates.SearchTemplates(query, 1)
	if len(matches) == 0 {
		return nil
	}
	match := matches[0]

	params := make(map[string]string)
	for _, entity := range intent.Entities {
		switch entity.Type {
		case core.EntityDocumentType:
			params["type"] = entity.Value
		case core.EntityAuthor:
			params["author"] = entity.Value
		case core.EntityTopic:
			params["topic"] = entity.Value
		case core.EntityDate:
			params["period"] = entity.Value
		}
	}
	executed, err := o.components.Templates.ExecuteTemplate(match.Template.ID, params)
	if err != nil {
		// Required parameters were not derivable from the query; the
		// match itself still stands.
		o.logger.Debug("template execution skipped", "template", match.Template.ID, "error", err)
		return &match
	}
	match.GeneratedQuery = executed.Query
	return &match
}

// finalQuery prefers a template-generated query, then the top expansion
// variation, then the raw query.
func finalQuery(query string, result *core.ProcessingResult) string {
	if result.TemplateMatch != nil && result.TemplateMatch.GeneratedQuery != "" {
		return result.TemplateMatch.GeneratedQuery
	}
	if result.ExpandedQuery != nil && len(result.ExpandedQuery.RankedVariations) > 0 {
		return result.ExpandedQuery.RankedVariations[0].Query
	}
	return query
}

func expansionConfidence(expanded *core.ExpandedQuery) float64 {
	if len(expanded.RankedVariations) > 0 {
		return expanded.RankedVariations[0].Score
	}
	if len(expanded.ExpandedTerms) == 0 {
		return 0
	}
	var sum float64
	for _, t := range expanded.ExpandedTerms {
		sum += t.Confidence
	}
	return sum / float64(len(expanded.ExpandedTerms))
}

func refinementConfidence(suggestions []core.RefinementSuggestion) (float64, bool) {
	if len(suggestions) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range suggestions {
		sum += s.Confidence
	}
	return sum / float64(len(suggestions)), true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
