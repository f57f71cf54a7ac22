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

package templates

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/docuseek/nlq/core"
)

// Library is a thread-safe catalog of question templates plus their
// usage counters.
type Library struct {
	mu        sync.RWMutex
	templates map[string]core.QuestionTemplate
	order     []string // insertion order, for stable listing
	usage     map[string]*usageRecord
	logger    *slog.Logger
}

// Option configures a Library.
type Option func(*Library) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// WithoutSeedCatalog starts the library empty instead of loading the
// built-in bilingual catalog.
func WithoutSeedCatalog() Option {
	return func(l *Library) error {
		l.templates = make(map[string]core.QuestionTemplate)
		l.order = nil
		return nil
	}
}

// NewLibrary creates a template library preloaded with the built-in
// catalog.
func NewLibrary(opts ...Option) (*Library, error) {
	l := &Library{
		templates: make(map[string]core.QuestionTemplate),
		usage:     make(map[string]*usageRecord),
		logger:    slog.Default(),
	}
	for _, tpl := range seedTemplates() {
		l.templates[tpl.ID] = tpl
		l.order = append(l.order, tpl.ID)
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add registers a template. Fails with a validation error when the
// template is malformed or its id is already taken.
func (l *Library) Add(tpl core.QuestionTemplate) error {
	if err := core.ValidateTemplate(&tpl); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.templates[tpl.ID]; exists {
		return fmt.Errorf("%w: template %q already registered", core.ErrValidation, tpl.ID)
	}
	l.templates[tpl.ID] = tpl
	l.order = append(l.order, tpl.ID)
	return nil
}

// Get returns the template with the given id.
func (l *Library) Get(id string) (core.QuestionTemplate, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tpl, ok := l.templates[id]
	if !ok {
		return core.QuestionTemplate{}, fmt.Errorf("%w: template %q", core.ErrNotFound, id)
	}
	return tpl, nil
}

// List returns all templates in registration order, optionally filtered
// by category and language (empty values match everything).
func (l *Library) List(category string, lang core.Language) []core.QuestionTemplate {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.QuestionTemplate, 0, len(l.order))
	for _, id := range l.order {
		tpl := l.templates[id]
		if category != "" && tpl.Category != category {
			continue
		}
		if lang != "" && tpl.Language != lang {
			continue
		}
		out = append(out, tpl)
	}
	return out
}
