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

package refine

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docuseek/nlq/core"
)

// satisfactionSuccess is the satisfaction score at and above which a
// search counts as successful.
const satisfactionSuccess = 0.7

// Engine tracks query sessions and produces refinement suggestions.
// All methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	sessions map[string]*core.QuerySession
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithClock overrides the time source. Meant for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) error {
		if now == nil {
			now = time.Now
		}
		e.now = now
		return nil
	}
}

// NewEngine creates a refinement engine with no sessions.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		sessions: make(map[string]*core.QuerySession),
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// StartSession opens a new session for the given user context (which may
// be nil) and returns its id.
func (e *Engine) StartSession(user *core.UserContext) string {
	id := uuid.NewString()
	e.mu.Lock()
	e.sessions[id] = &core.QuerySession{
		ID:          id,
		UserContext: user,
		LastActive:  e.now(),
	}
	e.mu.Unlock()
	e.logger.Debug("session started", "session", id)
	return id
}

// Session returns a snapshot of the session with the given id.
func (e *Engine) Session(id string) (core.QuerySession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, ok := e.sessions[id]
	if !ok {
		return core.QuerySession{}, fmt.Errorf("%w: session %q", core.ErrNotFound, id)
	}
	return *session, nil
}

// AddQuery appends a query with its intent and search results to the
// session, recomputes the refinement analysis and replaces the session's
// refinement suggestions and follow-up questions. Returns the updated
// session snapshot.
func (e *Engine) AddQuery(sessionID, text string, intent *core.QueryIntent, results []core.DocumentSearchResult) (core.QuerySession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[sessionID]
	if !ok {
		return core.QuerySession{}, fmt.Errorf("%w: session %q", core.ErrNotFound, sessionID)
	}

	now := e.now()
	var previous *core.SessionQuery
	if n := len(session.Queries); n > 0 {
		previous = &session.Queries[n-1]
	}

	session.Queries = append(session.Queries, core.SessionQuery{
		Text:        text,
		Intent:      intent,
		Timestamp:   now,
		Results:     results,
		ResultCount: len(results),
	})
	session.CurrentQuery = text
	session.LastActive = now

	analysis := analyze(text, intent, results)
	session.Refinements = generateRefinements(text, intent, results, previous, session.UserContext, analysis)
	session.FollowUpQuestions = generateFollowUps(text, results, session)

	session.Metrics.TotalQueries++
	if previous != nil && sharesTerm(text, previous.Text) {
		session.Metrics.RefinementCount++
	}

	e.logger.Debug("query added",
		"session", sessionID,
		"results", len(results),
		"refinements", len(session.Refinements))
	return *session, nil
}

// Analysis recomputes the quality analysis for the session's latest
// query.
func (e *Engine) Analysis(sessionID string) (core.RefinementAnalysis, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, ok := e.sessions[sessionID]
	if !ok {
		return core.RefinementAnalysis{}, fmt.Errorf("%w: session %q", core.ErrNotFound, sessionID)
	}
	if len(session.Queries) == 0 {
		return core.RefinementAnalysis{}, nil
	}
	last := session.Queries[len(session.Queries)-1]
	return analyze(last.Text, last.Intent, last.Results), nil
}

// RecordSatisfaction rates the session's latest query and refreshes the
// satisfaction metrics. Score is clamped to [0,1].
func (e *Engine) RecordSatisfaction(sessionID string, score float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: session %q", core.ErrNotFound, sessionID)
	}
	if len(session.Queries) == 0 {
		return fmt.Errorf("%w: session %q has no queries to rate", core.ErrValidation, sessionID)
	}

	score = core.Clamp01(score)
	session.Queries[len(session.Queries)-1].Satisfaction = &score
	session.LastActive = e.now()

	var sum float64
	var rated, successful int
	for _, q := range session.Queries {
		if q.Satisfaction == nil {
			continue
		}
		rated++
		sum += *q.Satisfaction
		if *q.Satisfaction >= satisfactionSuccess {
			successful++
		}
	}
	if rated > 0 {
		session.Metrics.AverageSatisfaction = sum / float64(rated)
	}
	session.Metrics.SuccessfulSearches = successful
	return nil
}

// ApplyRefinement rewrites a query according to a suggestion. The
// mapping is deterministic per suggestion type: rephrase suggestions
// replace the query with their value, all other types append the value
// unless the query already contains it.
func ApplyRefinement(query string, suggestion core.RefinementSuggestion) string {
	value := strings.TrimSpace(suggestion.Value)
	if value == "" {
		return query
	}
	switch suggestion.Type {
	case core.RefinementRephrase:
		return value
	default:
		if strings.Contains(strings.ToLower(query), strings.ToLower(value)) {
			return query
		}
		return strings.TrimSpace(query) + " " + value
	}
}

// CleanupOldSessions removes sessions whose last activity is older than
// maxAge and reports how many were purged.
func (e *Engine) CleanupOldSessions(maxAge time.Duration) int {
	cutoff := e.now().Add(-maxAge)
	e.mu.Lock()
	defer e.mu.Unlock()

	purged := 0
	for id, session := range e.sessions {
		if session.LastActive.Before(cutoff) {
			delete(e.sessions, id)
			purged++
		}
	}
	if purged > 0 {
		e.logger.Debug("sessions purged", "count", purged)
	}
	return purged
}

// SessionCount reports the number of live sessions.
func (e *Engine) SessionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

// sharesTerm reports whether two queries share a term longer than two
// characters.
func sharesTerm(a, b string) bool {
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(a)) {
		if len([]rune(w)) > 2 {
			seen[w] = true
		}
	}
	for _, w := range strings.Fields(strings.ToLower(b)) {
		if seen[w] {
			return true
		}
	}
	return false
}
