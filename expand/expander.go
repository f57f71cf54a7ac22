package expand

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/docuseek/nlq/core"
)

// Expansion confidence per source.
const (
	synonymConfidence    = 0.8
	acronymConfidence    = 0.9
	clusterMaxConfidence = 0.7
	technicalConfidence  = 0.6
)

// Result list bounds.
const (
	DefaultMaxTerms = 10
	maxVariations   = 5
	maxFilters      = 3
)

// Expander broadens queries using dictionaries and corpus statistics.
// All methods are safe for concurrent use.
type Expander struct {
	mu       sync.RWMutex
	synonyms map[core.Language]map[string][]string
	acronyms map[string]string // ACRONYM -> expansion, uppercase keys
	corpus   *corpusStats
	logger   *slog.Logger
}

// Option configures an Expander.
type Option func(*Expander) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExpander creates an expander seeded with the built-in synonym and
// acronym dictionaries.
func NewExpander(opts ...Option) (*Expander, error) {
	e := &Expander{
		synonyms: map[core.Language]map[string][]string{
			core.LanguageEnglish: cloneSynonyms(seedSynonymsEN),
			core.LanguageArabic:  cloneSynonyms(seedSynonymsAR),
		},
		acronyms: make(map[string]string, len(seedAcronyms)),
		corpus: &corpusStats{
			termFreq:  map[string]int{},
			technical: map[string]bool{},
			acronyms:  map[string]string{},
			clusters:  map[string][]string{},
		},
		logger: slog.Default(),
	}
	for k, v := range seedAcronyms {
		e.acronyms[k] = v
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// AddSynonym registers additional synonyms for a term.
func (e *Expander) AddSynonym(lang core.Language, term string, synonyms ...string) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(synonyms) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	dict := e.synonyms[lang]
	if dict == nil {
		dict = make(map[string][]string)
		e.synonyms[lang] = dict
	}
	dict[term] = append(dict[term], synonyms...)
}

// AddAcronym registers an acronym expansion. The key is uppercased.
func (e *Expander) AddAcronym(acronym, expansion string) {
	acronym = strings.ToUpper(strings.TrimSpace(acronym))
	if acronym == "" || expansion == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.acronyms[acronym] = expansion
}

// candidate pairs an expansion term with the query term it came from.
type candidate struct {
	term       core.ExpansionTerm
	sourceTerm string
}

// ExpandQuery produces expansion terms, ranked query variations and
// suggested filters for the query.
//
// Per query term, synonym, acronym, corpus-cluster and technical-flag
// expansions are unioned without cross-source deduplication, sorted by
// confidence descending and truncated to maxTerms (DefaultMaxTerms when
// maxTerms <= 0).
func (e *Expander) ExpandQuery(query string, maxTerms int, lang core.Language) *core.ExpandedQuery {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	if lang == "" || lang == core.LanguageMixed {
		lang = core.LanguageEnglish
	}

	e.mu.RLock()
	synonyms := e.synonyms[lang]
	acronyms := e.acronyms
	corpus := e.corpus
	e.mu.RUnlock()

	terms := tokenize(query)
	var candidates []candidate

	for _, term := range terms {
		for _, syn := range synonyms[term] {
			candidates = append(candidates, candidate{
				sourceTerm: term,
				term: core.ExpansionTerm{
					Term:       syn,
					Type:       core.ExpansionSynonym,
					Confidence: synonymConfidence,
					Source:     core.SourceDictionary,
				},
			})
		}

		upper := strings.ToUpper(term)
		if full, ok := acronyms[upper]; ok {
			candidates = append(candidates, candidate{
				sourceTerm: term,
				term: core.ExpansionTerm{
					Term:       full,
					Type:       core.ExpansionAcronym,
					Confidence: acronymConfidence,
					Source:     core.SourceDictionary,
				},
			})
		}
		if full, ok := corpus.acronyms[upper]; ok {
			candidates = append(candidates, candidate{
				sourceTerm: term,
				term: core.ExpansionTerm{
					Term:       full,
					Type:       core.ExpansionAcronym,
					Confidence: acronymConfidence,
					Source:     core.SourceCorpus,
				},
			})
		}

		for _, related := range corpus.clusters[term] {
			confidence := float64(corpus.termFreq[related]) / 100
			if confidence > clusterMaxConfidence {
				confidence = clusterMaxConfidence
			}
			candidates = append(candidates, candidate{
				sourceTerm: term,
				term: core.ExpansionTerm{
					Term:       related,
					Type:       core.ExpansionRelated,
					Confidence: confidence,
					Source:     core.SourceCorpus,
				},
			})
		}

		if corpus.technical[term] {
			candidates = append(candidates, candidate{
				sourceTerm: term,
				term: core.ExpansionTerm{
					Term:       term,
					Type:       core.ExpansionTechnical,
					Confidence: technicalConfidence,
					Source:     core.SourceCorpus,
				},
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].term.Confidence > candidates[j].term.Confidence
	})
	if len(candidates) > maxTerms {
		candidates = candidates[:maxTerms]
	}

	expanded := make([]core.ExpansionTerm, len(candidates))
	for i, c := range candidates {
		expanded[i] = c.term
	}

	result := &core.ExpandedQuery{
		OriginalQuery:    query,
		ExpandedTerms:    expanded,
		RankedVariations: buildVariations(query, candidates),
		SuggestedFilters: suggestFilters(terms, corpus),
	}

	e.logger.Debug("expanded query",
		"query", query, "terms", len(expanded), "variations", len(result.RankedVariations))

	return result
}

// buildVariations rewrites the query once per expansion by substituting
// the matched term, skipping rewrites that leave the query unchanged.
// Acronym expansions additionally produce an "OR" form. The top five by
// score are returned.
func buildVariations(query string, candidates []candidate) []core.QueryVariation {
	var variations []core.QueryVariation
	seen := map[string]bool{query: true}

	for _, c := range candidates {
		substituted := replaceWord(query, c.sourceTerm, c.term.Term)
		if substituted != query && !seen[substituted] {
			seen[substituted] = true
			variations = append(variations, core.QueryVariation{
				Query:       substituted,
				Score:       c.term.Confidence,
				Explanation: fmt.Sprintf("replaced %q with %s %q", c.sourceTerm, c.term.Type, c.term.Term),
			})
		}

		if c.term.Type == core.ExpansionAcronym {
			orForm := query + " OR " + c.term.Term
			if !seen[orForm] {
				seen[orForm] = true
				variations = append(variations, core.QueryVariation{
					Query:       orForm,
					Score:       c.term.Confidence * 0.9,
					Explanation: fmt.Sprintf("included acronym expansion %q", c.term.Term),
				})
			}
		}
	}

	sort.SliceStable(variations, func(i, j int) bool {
		return variations[i].Score > variations[j].Score
	})
	if len(variations) > maxVariations {
		variations = variations[:maxVariations]
	}
	return variations
}

// knownTypeWords and temporalWords drive filter suggestions.
var knownTypeWords = map[string]string{
	"pdf": "pdf", "word": "word", "doc": "word", "docx": "word",
	"excel": "excel", "xlsx": "excel", "spreadsheet": "excel",
	"powerpoint": "powerpoint", "pptx": "powerpoint", "presentation": "powerpoint",
	"report": "report", "reports": "report",
	"contract": "contract", "contracts": "contract",
	"invoice": "invoice", "invoices": "invoice",
	"memo": "memo", "email": "email",
	"تقرير": "report", "تقارير": "report", "عقد": "contract", "فاتورة": "invoice",
}

var temporalWords = map[string]bool{
	"today": true, "yesterday": true, "week": true, "month": true,
	"year": true, "recent": true, "latest": true, "last": true,
	"اليوم": true, "أمس": true, "أسبوع": true, "شهر": true, "سنة": true,
}

// suggestFilters proposes up to three structured filters, sorted by
// relevance: a documentType filter when a known type word is present, a
// dateRange filter for temporal words, and category=technical when a
// corpus-flagged technical term appears.
func suggestFilters(terms []string, corpus *corpusStats) []core.SuggestedFilter {
	var filters []core.SuggestedFilter

	for _, term := range terms {
		if typ, ok := knownTypeWords[term]; ok {
			filters = append(filters, core.SuggestedFilter{
				Field:     "documentType",
				Value:     typ,
				Relevance: 0.9,
			})
			break
		}
	}

	for _, term := range terms {
		if temporalWords[term] {
			filters = append(filters, core.SuggestedFilter{
				Field:     "dateRange",
				Value:     term,
				Relevance: 0.8,
			})
			break
		}
	}

	for _, term := range terms {
		if corpus.technical[term] {
			filters = append(filters, core.SuggestedFilter{
				Field:     "category",
				Value:     "technical",
				Relevance: 0.7,
			})
			break
		}
	}

	sort.SliceStable(filters, func(i, j int) bool {
		return filters[i].Relevance > filters[j].Relevance
	})
	if len(filters) > maxFilters {
		filters = filters[:maxFilters]
	}
	return filters
}

// replaceWord substitutes whole-word, case-insensitive occurrences of old
// with new, tolerating edge punctuation.
func replaceWord(text, old, new string) string {
	fields := strings.Fields(text)
	changed := false
	for i, field := range fields {
		trimmed := strings.Trim(field, `.,!?;:'"()[]{}«»؟،`)
		if strings.EqualFold(trimmed, old) {
			fields[i] = new
			changed = true
		}
	}
	if !changed {
		return text
	}
	return strings.Join(fields, " ")
}

func cloneSynonyms(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}
