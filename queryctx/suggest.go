package queryctx

import (
	"fmt"
	"strings"

	"github.com/docuseek/nlq/core"
)

const maxSuggestions = 8

// GetQuerySuggestions proposes completions for a partially typed query.
// Candidates come from the user's search history (prefix match), the
// relevant contexts' common queries (substring match), the collection's
// common terms (prefix match) and the collection's topics (substring
// match). Results are deduplicated and capped.
func (m *Manager) GetQuerySuggestions(partial string) []string {
	partial = strings.TrimSpace(strings.ToLower(partial))
	if partial == "" {
		return nil
	}

	m.mu.RLock()
	user := m.user
	collection := m.collection
	catalog := make([]core.OrganizationalContext, len(m.catalog))
	copy(catalog, m.catalog)
	m.mu.RUnlock()

	suggestions := make([]string, 0, maxSuggestions)

	if user != nil {
		for _, past := range user.Preferences.SearchHistory {
			if strings.HasPrefix(strings.ToLower(past), partial) {
				suggestions = append(suggestions, past)
			}
		}
	}

	for _, octx := range catalog {
		for _, common := range octx.CommonQueries {
			if strings.Contains(strings.ToLower(common), partial) {
				suggestions = append(suggestions, common)
			}
		}
	}

	if collection != nil {
		for _, term := range topTerms(collection.CommonTerms, len(collection.CommonTerms)) {
			if strings.HasPrefix(strings.ToLower(term), partial) {
				suggestions = append(suggestions, fmt.Sprintf("find documents about %s", term))
			}
		}
		for _, topic := range collection.Topics {
			if strings.Contains(strings.ToLower(topic), partial) {
				suggestions = append(suggestions, fmt.Sprintf("show me %s documents", topic))
			}
		}
	}

	return dedupeCap(suggestions, maxSuggestions)
}
