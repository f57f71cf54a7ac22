package storage

import (
	"context"
	"time"

	"github.com/docuseek/nlq/core"
)

// LexiconEntry is a persisted synonym mapping for one term in one
// language.
type LexiconEntry struct {
	Language core.Language
	Term     string
	Synonyms []string
}

// AcronymEntry is a persisted acronym expansion.
type AcronymEntry struct {
	Acronym   string
	Expansion string
}

// TranslationEntry is a persisted bilingual word or phrase pair.
// Transliteration marks phonetic mappings rather than translations.
type TranslationEntry struct {
	English         string
	Arabic          string
	Transliteration bool
}

// TemplateUsage is a persisted usage snapshot for one template.
// UniqueUsers carries the approximate unique-user estimate, not an
// exact count.
type TemplateUsage struct {
	TemplateID  string
	Count       int
	UniqueUsers int
	LastUsed    time.Time
}

// LexiconRepository persists the runtime-extensible lexicons.
type LexiconRepository interface {
	// PutSynonyms stores or replaces the synonym list for a term.
	PutSynonyms(ctx context.Context, entry LexiconEntry) error

	// Synonyms returns all stored synonym entries.
	Synonyms(ctx context.Context) ([]LexiconEntry, error)

	// PutAcronym stores or replaces an acronym expansion.
	PutAcronym(ctx context.Context, entry AcronymEntry) error

	// Acronyms returns all stored acronym entries.
	Acronyms(ctx context.Context) ([]AcronymEntry, error)

	// PutTranslation stores or replaces a bilingual pair.
	PutTranslation(ctx context.Context, entry TranslationEntry) error

	// Translations returns all stored bilingual pairs.
	Translations(ctx context.Context) ([]TranslationEntry, error)
}

// UsageRepository persists template usage analytics.
type UsageRepository interface {
	// PutTemplateUsage stores or replaces a usage snapshot.
	PutTemplateUsage(ctx context.Context, usage TemplateUsage) error

	// TemplateUsage retrieves the snapshot for one template.
	// Returns ErrNotFound when the template has no recorded usage.
	TemplateUsage(ctx context.Context, templateID string) (TemplateUsage, error)

	// AllTemplateUsage returns every stored usage snapshot.
	AllTemplateUsage(ctx context.Context) ([]TemplateUsage, error)
}

// Repository combines all persistence operations behind one handle.
// Implementations must be thread-safe.
type Repository interface {
	LexiconRepository
	UsageRepository

	// Close closes the storage backend and releases resources.
	Close() error
}
