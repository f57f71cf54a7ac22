package multilang

import (
	"sort"
	"strings"

	"github.com/docuseek/nlq/core"
)

// DefaultMaxMatches bounds cross-language match results when the caller
// does not specify a limit.
const DefaultMaxMatches = 10

// FindCrossLanguageMatches links the query to documents written in a
// different language. The query is translated into each candidate
// document's language and scored by textual overlap. Documents in the
// query's own language are excluded entirely. Results are sorted by
// MatchScore descending and truncated to max (DefaultMaxMatches when
// max <= 0).
func (p *Processor) FindCrossLanguageMatches(query string, docs []core.DocumentSearchResult, max int) []core.CrossLanguageMatch {
	if max <= 0 {
		max = DefaultMaxMatches
	}

	queryLang := p.DetectLanguage(query).Language

	// Translations are cached per target language; most collections hold
	// only en and ar documents.
	translations := make(map[core.Language][]tokenTranslation)

	var matches []core.CrossLanguageMatch
	for _, doc := range docs {
		docLang := doc.Language
		if docLang == "" || docLang == queryLang || docLang == core.LanguageMixed {
			continue
		}
		if docLang != core.LanguageEnglish && docLang != core.LanguageArabic {
			continue
		}

		tokens, ok := translations[docLang]
		if !ok {
			tokens = p.translateTokens(query, docLang)
			translations[docLang] = tokens
		}
		if len(tokens) == 0 {
			continue
		}

		docTerms := documentTermSet(doc)

		var matched []core.MatchedTerm
		for _, tok := range tokens {
			term := lookupKey(tok.translated)
			if term == "" || !docTerms[term] {
				continue
			}
			matched = append(matched, core.MatchedTerm{
				QueryTerm:    tok.original,
				DocumentTerm: tok.translated,
				Type:         matchType(tok.kind),
			})
		}
		if len(matched) == 0 {
			continue
		}

		score := core.Clamp01(float64(len(matched)) / float64(len(tokens)))
		translatedParts := make([]string, len(tokens))
		for i, tok := range tokens {
			translatedParts[i] = tok.translated
		}

		matches = append(matches, core.CrossLanguageMatch{
			Document:         doc,
			DocumentLanguage: docLang,
			MatchScore:       score,
			TranslatedQuery:  strings.Join(translatedParts, " "),
			MatchedTerms:     matched,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > max {
		matches = matches[:max]
	}
	return matches
}

// BilingualResultSet partitions search results by language relative to
// the query.
type BilingualResultSet struct {
	SameLanguage         []core.DocumentSearchResult
	CrossLanguage        []core.DocumentSearchResult
	Mixed                []core.DocumentSearchResult
	LanguageDistribution map[core.Language]int
	TotalMatches         int
}

// CreateBilingualResultSet buckets documents into same-language,
// cross-language and mixed groups relative to the detected query
// language. TotalMatches is the sum of the bucket sizes.
func (p *Processor) CreateBilingualResultSet(query string, docs []core.DocumentSearchResult) BilingualResultSet {
	queryLang := p.DetectLanguage(query).Language

	set := BilingualResultSet{
		LanguageDistribution: make(map[core.Language]int),
	}
	for _, doc := range docs {
		set.LanguageDistribution[doc.Language]++
		switch {
		case doc.Language == core.LanguageMixed:
			set.Mixed = append(set.Mixed, doc)
		case doc.Language == queryLang:
			set.SameLanguage = append(set.SameLanguage, doc)
		default:
			set.CrossLanguage = append(set.CrossLanguage, doc)
		}
	}
	set.TotalMatches = len(set.SameLanguage) + len(set.CrossLanguage) + len(set.Mixed)
	return set
}

func matchType(kind translationKind) core.TranslationType {
	switch kind {
	case kindDictionary:
		return core.TranslationTranslated
	case kindTransliterated:
		return core.TranslationTransliterated
	default:
		return core.TranslationDirect
	}
}

// documentTermSet builds the lowercase term set of a document's title,
// content and tags.
func documentTermSet(doc core.DocumentSearchResult) map[string]bool {
	terms := make(map[string]bool)
	for _, field := range []string{doc.Title, doc.Content} {
		for _, word := range strings.Fields(field) {
			if key := lookupKey(word); key != "" {
				terms[key] = true
			}
		}
	}
	for _, tag := range doc.Tags {
		if key := lookupKey(tag); key != "" {
			terms[key] = true
		}
	}
	return terms
}
