package intent

import (
	"log/slog"
	"strings"
	"time"

	"github.com/docuseek/nlq/core"
)

// Confidence scoring weights.
const (
	baseConfidence       = 0.5
	wordCountBonus       = 0.2 // queries longer than 3 words
	entityBonus          = 0.1 // per extracted entity
	strongPatternBonus   = 0.2
	ambiguityThreshold   = 0.6
	minUnambiguousTokens = 2
)

// Extractor sanitizes, classifies and decomposes free-text queries.
type Extractor struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithClock sets the time source used to resolve relative dates.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) error {
		if now == nil {
			now = time.Now
		}
		e.now = now
		return nil
	}
}

// NewExtractor creates a new intent extractor.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Extract sanitizes and validates the query, then classifies its intent
// and extracts the action, parameters and entities.
// Returns a validation error wrapping core.ErrValidation for empty,
// undersized, oversized or unsupported-language input.
func (e *Extractor) Extract(query string, lang core.Language) (*core.QueryIntent, error) {
	if err := core.ValidateLanguage(lang); err != nil {
		return nil, err
	}

	sanitized := Sanitize(query)
	if err := core.ValidateQueryText(sanitized); err != nil {
		return nil, err
	}

	normalized := e.normalize(sanitized, lang)

	intentType, strong := classify(normalized, lang)
	action := extractAction(normalized, intentType, lang)
	entities := extractEntities(sanitized, e.now())
	params := extractParameters(normalized, intentType)

	confidence := baseConfidence
	if len(strings.Fields(normalized)) > 3 {
		confidence += wordCountBonus
	}
	confidence += entityBonus * float64(len(entities))
	if strong {
		confidence += strongPatternBonus
	}
	confidence = core.Clamp01(confidence)

	e.logger.Debug("extracted intent",
		"type", intentType, "action", action,
		"entities", len(entities), "confidence", confidence)

	return &core.QueryIntent{
		Type:       intentType,
		Action:     action,
		Confidence: confidence,
		Entities:   entities,
		Parameters: params,
	}, nil
}

// IsAmbiguous reports whether the extracted intent needs clarification:
// confidence below the threshold or fewer than two tokens.
func (e *Extractor) IsAmbiguous(qi *core.QueryIntent, query string) bool {
	if qi == nil {
		return true
	}
	tokens := strings.Fields(Sanitize(query))
	return qi.Confidence < ambiguityThreshold || len(tokens) < minUnambiguousTokens
}

// Clarifications returns up to two localized prompts for an ambiguous query.
func (e *Extractor) Clarifications(lang core.Language) []string {
	prompts := clarificationPrompts[lang]
	if prompts == nil {
		prompts = clarificationPrompts[core.LanguageEnglish]
	}
	if len(prompts) > 2 {
		prompts = prompts[:2]
	}
	out := make([]string, len(prompts))
	copy(out, prompts)
	return out
}

// normalize lowercases the query and expands known abbreviations.
func (e *Extractor) normalize(text string, lang core.Language) string {
	lower := strings.ToLower(text)
	table := abbreviations[lang]
	words := strings.Fields(lower)
	for i, word := range words {
		trimmed := strings.Trim(word, ".,!?;:")
		if full, ok := table[trimmed]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}

// classify tests the ordered pattern groups for lang against the
// normalized query. The first matching group wins; the default is search.
// The second return reports whether a strong pattern also matched.
func classify(normalized string, lang core.Language) (core.IntentType, bool) {
	strong := false
	for _, re := range strongPatterns[lang] {
		if re.MatchString(normalized) {
			strong = true
			break
		}
	}

	for _, group := range intentPatterns[lang] {
		for _, re := range group.patterns {
			if re.MatchString(normalized) {
				return group.intent, strong
			}
		}
	}
	return core.IntentSearch, strong
}

// extractAction picks the first vocabulary verb present in the query for
// the classified intent; if none match, the vocabulary's first entry is
// the default.
func extractAction(normalized string, intentType core.IntentType, lang core.Language) string {
	vocab := actionVocab[lang][intentType]
	if len(vocab) == 0 {
		return ""
	}
	for _, verb := range vocab {
		if strings.Contains(normalized, verb) {
			return verb
		}
	}
	return vocab[0]
}

// extractParameters collects intent-specific parameters. The context
// scope is checked on every query regardless of intent.
func extractParameters(normalized string, intentType core.IntentType) map[string]string {
	params := make(map[string]string)

	if intentType == core.IntentAnalytics {
		for _, agg := range aggregationPatterns {
			if agg.pattern.MatchString(normalized) {
				params["aggregation"] = agg.kind
				break
			}
		}
	}

	if intentType == core.IntentFilter {
		if exclusionPattern.MatchString(normalized) {
			params["exclusivity"] = "exclude"
		} else {
			params["exclusivity"] = "include"
		}
	}

	for _, sc := range scopePatterns {
		if sc.pattern.MatchString(normalized) {
			params["scope"] = sc.scope
			break
		}
	}

	return params
}
