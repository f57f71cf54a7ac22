// Copyright 2025 Docuseek Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nlq

import (
	"context"
	"log/slog"
	"time"

	"github.com/docuseek/nlq/core"
	"github.com/docuseek/nlq/expand"
	"github.com/docuseek/nlq/intent"
	"github.com/docuseek/nlq/multilang"
	"github.com/docuseek/nlq/pipeline"
	"github.com/docuseek/nlq/queryctx"
	"github.com/docuseek/nlq/refine"
	"github.com/docuseek/nlq/storage"
	"github.com/docuseek/nlq/storage/badger"
	"github.com/docuseek/nlq/templates"
)

// Engine assembles the full query understanding stack with default
// components and, optionally, persistent lexicons and usage analytics.
type Engine struct {
	intents      *intent.Extractor
	expander     *expand.Expander
	multilingual *multilang.Processor
	contexts     *queryctx.Manager
	library      *templates.Library
	refiner      *refine.Engine
	orchestrator *pipeline.Orchestrator
	repo         storage.Repository
	logger       *slog.Logger
	now          func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	storagePath string
	repo        storage.Repository
	searcher    pipeline.DocumentSearcher
	speech      pipeline.SpeechToText
	config      *pipeline.Config
	monitor     pipeline.Monitor
	logger      *slog.Logger
	now         func() time.Time
}

// WithStoragePath enables badger-backed persistence at the given
// directory. Persisted lexicon entries are loaded on startup and
// template usage snapshots are written back as queries run.
func WithStoragePath(path string) EngineOption {
	return func(o *engineOptions) {
		o.storagePath = path
	}
}

// WithRepository supplies an already-open repository instead of a
// storage path. The engine takes ownership and closes it on Close.
func WithRepository(repo storage.Repository) EngineOption {
	return func(o *engineOptions) {
		o.repo = repo
	}
}

// WithSearcher attaches the document-search collaborator.
func WithSearcher(s pipeline.DocumentSearcher) EngineOption {
	return func(o *engineOptions) {
		o.searcher = s
	}
}

// WithSpeech attaches the speech-to-text collaborator required by
// ProcessVoiceQuery.
func WithSpeech(s pipeline.SpeechToText) EngineOption {
	return func(o *engineOptions) {
		o.speech = s
	}
}

// WithPipelineConfig overrides the orchestrator's default configuration.
func WithPipelineConfig(config pipeline.Config) EngineOption {
	return func(o *engineOptions) {
		o.config = &config
	}
}

// WithMonitor attaches an orchestrator monitor.
func WithMonitor(m pipeline.Monitor) EngineOption {
	return func(o *engineOptions) {
		o.monitor = m
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) EngineOption {
	return func(o *engineOptions) {
		o.now = now
	}
}

// NewEngine builds the default component set and wires it into an
// orchestrator. Without a storage option the engine runs fully
// in-memory on the seed lexicons.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	repo := options.repo
	if repo == nil && options.storagePath != "" {
		var err error
		repo, err = badger.NewRepository(options.storagePath)
		if err != nil {
			return nil, err
		}
	}

	closeRepo := func() {
		if repo != nil {
			repo.Close()
		}
	}

	extractor, err := intent.NewExtractor(intent.WithLogger(options.logger))
	if err != nil {
		closeRepo()
		return nil, err
	}
	expander, err := expand.NewExpander(expand.WithLogger(options.logger))
	if err != nil {
		closeRepo()
		return nil, err
	}
	multilingual, err := multilang.NewProcessor(multilang.WithLogger(options.logger))
	if err != nil {
		closeRepo()
		return nil, err
	}
	contexts, err := queryctx.NewManager(queryctx.WithLogger(options.logger))
	if err != nil {
		closeRepo()
		return nil, err
	}
	library, err := templates.NewLibrary(templates.WithLogger(options.logger))
	if err != nil {
		closeRepo()
		return nil, err
	}
	refineOpts := []refine.Option{refine.WithLogger(options.logger)}
	if options.now != nil {
		refineOpts = append(refineOpts, refine.WithClock(options.now))
	}
	refiner, err := refine.NewEngine(refineOpts...)
	if err != nil {
		closeRepo()
		return nil, err
	}

	e := &Engine{
		intents:      extractor,
		expander:     expander,
		multilingual: multilingual,
		contexts:     contexts,
		library:      library,
		refiner:      refiner,
		repo:         repo,
		logger:       options.logger,
		now:          options.now,
	}

	if repo != nil {
		if err := e.loadPersisted(context.Background()); err != nil {
			closeRepo()
			return nil, err
		}
	}

	orchOpts := []pipeline.Option{pipeline.WithLogger(options.logger)}
	if options.config != nil {
		orchOpts = append(orchOpts, pipeline.WithConfig(*options.config))
	}
	if options.monitor != nil {
		orchOpts = append(orchOpts, pipeline.WithMonitor(options.monitor))
	}
	if options.now != nil {
		orchOpts = append(orchOpts, pipeline.WithClock(options.now))
	}
	orchestrator, err := pipeline.NewOrchestrator(pipeline.Components{
		Intents:   extractor,
		Expander:  expander,
		Multilang: multilingual,
		Templates: library,
		Refiner:   refiner,
		Searcher:  options.searcher,
		Speech:    options.speech,
	}, orchOpts...)
	if err != nil {
		closeRepo()
		return nil, err
	}
	e.orchestrator = orchestrator
	return e, nil
}

// loadPersisted folds stored lexicon entries and usage snapshots into
// the in-memory components on top of the seed data.
func (e *Engine) loadPersisted(ctx context.Context) error {
	synonyms, err := e.repo.Synonyms(ctx)
	if err != nil {
		return err
	}
	for _, entry := range synonyms {
		e.expander.AddSynonym(entry.Language, entry.Term, entry.Synonyms...)
	}

	acronyms, err := e.repo.Acronyms(ctx)
	if err != nil {
		return err
	}
	for _, entry := range acronyms {
		e.expander.AddAcronym(entry.Acronym, entry.Expansion)
	}

	translations, err := e.repo.Translations(ctx)
	if err != nil {
		return err
	}
	for _, entry := range translations {
		if entry.Transliteration {
			e.multilingual.AddTransliteration(entry.English, entry.Arabic)
		} else {
			e.multilingual.AddTranslation(entry.English, entry.Arabic)
		}
	}

	usage, err := e.repo.AllTemplateUsage(ctx)
	if err != nil {
		return err
	}
	for _, u := range usage {
		e.library.RestoreUsage(templates.UsageStats{
			TemplateID:  u.TemplateID,
			Count:       u.Count,
			UniqueUsers: u.UniqueUsers,
			LastUsed:    u.LastUsed,
		})
	}
	return nil
}

// ProcessQuery runs the full pipeline for one query and records
// template usage when a template was matched.
func (e *Engine) ProcessQuery(ctx context.Context, query string, opts pipeline.ProcessOptions) (*core.ProcessingResult, error) {
	result, err := e.orchestrator.ProcessQuery(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	e.recordTemplateUsage(ctx, result, opts.User)
	return result, nil
}

// ProcessVoiceQuery transcribes audio and runs the pipeline on the
// transcription.
func (e *Engine) ProcessVoiceQuery(ctx context.Context, audio []byte, opts pipeline.ProcessOptions) (*core.VoiceResult, *core.ProcessingResult, error) {
	voice, result, err := e.orchestrator.ProcessVoiceQuery(ctx, audio, opts)
	if err != nil {
		return voice, result, err
	}
	e.recordTemplateUsage(ctx, result, opts.User)
	return voice, result, nil
}

// ProcessQueryBatch runs the pipeline over a batch of queries.
func (e *Engine) ProcessQueryBatch(ctx context.Context, queries []string, opts pipeline.ProcessOptions) []pipeline.BatchItem {
	items := e.orchestrator.ProcessQueryBatch(ctx, queries, opts)
	for _, item := range items {
		if item.Err == nil {
			e.recordTemplateUsage(ctx, item.Result, opts.User)
		}
	}
	return items
}

// Suggest returns query completions for a partial input.
func (e *Engine) Suggest(partial string) []string {
	return e.contexts.GetQuerySuggestions(partial)
}

// StartSession opens a refinement session for the user.
func (e *Engine) StartSession(user *core.UserContext) string {
	return e.refiner.StartSession(user)
}

// RecordSatisfaction rates the latest query in a session.
func (e *Engine) RecordSatisfaction(sessionID string, score float64) error {
	return e.refiner.RecordSatisfaction(sessionID, score)
}

// CleanupSessions drops refinement sessions idle longer than maxAge and
// reports how many were removed.
func (e *Engine) CleanupSessions(maxAge time.Duration) int {
	return e.refiner.CleanupOldSessions(maxAge)
}

// AddSynonym extends the synonym lexicon and, when persistence is
// enabled, writes the full entry through to storage.
func (e *Engine) AddSynonym(ctx context.Context, lang core.Language, term string, synonyms ...string) error {
	e.expander.AddSynonym(lang, term, synonyms...)
	if e.repo == nil {
		return nil
	}
	return e.repo.PutSynonyms(ctx, storage.LexiconEntry{
		Language: lang,
		Term:     term,
		Synonyms: synonyms,
	})
}

// AddAcronym extends the acronym lexicon with write-through persistence.
func (e *Engine) AddAcronym(ctx context.Context, acronym, expansion string) error {
	e.expander.AddAcronym(acronym, expansion)
	if e.repo == nil {
		return nil
	}
	return e.repo.PutAcronym(ctx, storage.AcronymEntry{
		Acronym:   acronym,
		Expansion: expansion,
	})
}

// AddTranslation extends the bilingual dictionary with write-through
// persistence. Transliteration marks a phonetic mapping.
func (e *Engine) AddTranslation(ctx context.Context, english, arabic string, transliteration bool) error {
	if transliteration {
		e.multilingual.AddTransliteration(english, arabic)
	} else {
		e.multilingual.AddTranslation(english, arabic)
	}
	if e.repo == nil {
		return nil
	}
	return e.repo.PutTranslation(ctx, storage.TranslationEntry{
		English:         english,
		Arabic:          arabic,
		Transliteration: transliteration,
	})
}

func (e *Engine) recordTemplateUsage(ctx context.Context, result *core.ProcessingResult, user *core.UserContext) {
	if result == nil || result.TemplateMatch == nil {
		return
	}
	id := result.TemplateMatch.Template.ID
	userID := ""
	if user != nil {
		userID = user.ID
	}
	now := e.now
	if now == nil {
		now = time.Now
	}
	e.library.RecordUsage(id, userID, now())
	if e.repo == nil {
		return
	}
	stats := e.library.Usage(id)
	err := e.repo.PutTemplateUsage(ctx, storage.TemplateUsage{
		TemplateID:  id,
		Count:       stats.Count,
		UniqueUsers: stats.UniqueUsers,
		LastUsed:    stats.LastUsed,
	})
	if err != nil {
		e.logger.Warn("persisting template usage", "template", id, "err", err)
	}
}

// Intents exposes the intent extractor.
func (e *Engine) Intents() *intent.Extractor {
	return e.intents
}

// Expander exposes the query expander.
func (e *Engine) Expander() *expand.Expander {
	return e.expander
}

// Multilingual exposes the multilingual processor.
func (e *Engine) Multilingual() *multilang.Processor {
	return e.multilingual
}

// Contexts exposes the context manager.
func (e *Engine) Contexts() *queryctx.Manager {
	return e.contexts
}

// Templates exposes the question template library.
func (e *Engine) Templates() *templates.Library {
	return e.library
}

// Refiner exposes the refinement engine.
func (e *Engine) Refiner() *refine.Engine {
	return e.refiner
}

// Orchestrator exposes the underlying pipeline orchestrator for
// configuration updates.
func (e *Engine) Orchestrator() *pipeline.Orchestrator {
	return e.orchestrator
}

// Close releases the work queue and, when persistence is enabled, the
// storage backend.
func (e *Engine) Close() error {
	e.orchestrator.Close()
	if e.repo == nil {
		return nil
	}
	if err := e.repo.Close(); err != nil {
		e.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}
