package queryctx

import (
	"fmt"
	"strings"

	"github.com/docuseek/nlq/core"
)

// Enhancement bounds.
const (
	maxSuggestedTerms    = 5
	maxAlternatives      = 3
	maxClarifications    = 2
	lowIntentConfidence  = 0.7
	clarifyDocumentTypes = 3
)

// Enhancement is the contextual enrichment of a query.
type Enhancement struct {
	SuggestedTerms     []string
	AlternativeQueries []string
	Clarifications     []string
}

// EnhanceQuery enriches the query with organizational terminology, user
// preferences and collection statistics.
//
// For every whole-word terminology match in a relevant context the term's
// synonyms become suggested terms and substitution-based alternative
// queries. The user's top preferred document type and two most recent
// topics are suggested when absent from the query. When intent confidence
// is low, clarification prompts name candidate departments (if several
// contexts matched) and the collection's top document types. All lists
// are deduplicated and capped.
func (m *Manager) EnhanceQuery(query string, intent *core.QueryIntent, user *core.UserContext) Enhancement {
	relevant := m.GetRelevantContexts(query, user)

	m.mu.RLock()
	collection := m.collection
	m.mu.RUnlock()

	lower := strings.ToLower(query)
	var enhancement Enhancement

	for _, octx := range relevant {
		for term, synonyms := range octx.Terminology {
			termLower := strings.ToLower(term)
			if !containsWord(lower, termLower) {
				continue
			}
			for _, syn := range synonyms {
				enhancement.SuggestedTerms = append(enhancement.SuggestedTerms, syn)
				if alt := substituteWord(query, termLower, syn); alt != query {
					enhancement.AlternativeQueries = append(enhancement.AlternativeQueries, alt)
				}
			}
		}
	}

	if user != nil {
		if types := user.Preferences.DocumentTypes; len(types) > 0 {
			if !containsWord(lower, strings.ToLower(types[0])) {
				enhancement.SuggestedTerms = append(enhancement.SuggestedTerms, types[0])
			}
		}
		for i, topic := range user.RecentActivity.Topics {
			if i >= 2 {
				break
			}
			if !containsWord(lower, strings.ToLower(topic)) {
				enhancement.SuggestedTerms = append(enhancement.SuggestedTerms, topic)
			}
		}
	}

	if intent != nil && intent.Confidence < lowIntentConfidence {
		if len(relevant) > 1 {
			names := make([]string, len(relevant))
			for i, octx := range relevant {
				names[i] = octx.Name
			}
			enhancement.Clarifications = append(enhancement.Clarifications,
				fmt.Sprintf("Which department are you interested in: %s?", strings.Join(names, ", ")))
		}
		if collection != nil && len(collection.DocumentTypes) > 0 {
			types := topDocumentTypes(collection.DocumentTypes, clarifyDocumentTypes)
			enhancement.Clarifications = append(enhancement.Clarifications,
				fmt.Sprintf("Are you looking for a specific document type, such as %s?", strings.Join(types, ", ")))
		}
	}

	enhancement.SuggestedTerms = dedupeCap(enhancement.SuggestedTerms, maxSuggestedTerms)
	enhancement.AlternativeQueries = dedupeCap(enhancement.AlternativeQueries, maxAlternatives)
	enhancement.Clarifications = dedupeCap(enhancement.Clarifications, maxClarifications)

	return enhancement
}

// substituteWord replaces whole-word occurrences of term (matched
// case-insensitively) with replacement. Multi-word terms are replaced
// as phrases.
func substituteWord(query, term, replacement string) string {
	if strings.Contains(term, " ") {
		idx := strings.Index(strings.ToLower(query), term)
		if idx < 0 {
			return query
		}
		return query[:idx] + replacement + query[idx+len(term):]
	}
	fields := strings.Fields(query)
	changed := false
	for i, field := range fields {
		if strings.EqualFold(strings.Trim(field, ".,!?;:"), term) {
			fields[i] = replacement
			changed = true
		}
	}
	if !changed {
		return query
	}
	return strings.Join(fields, " ")
}

func dedupeCap(list []string, max int) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, max)
	for _, v := range list {
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out
}
