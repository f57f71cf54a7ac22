package templates

import (
	"sort"
	"strings"

	"github.com/docuseek/nlq/core"
)

// Relevance weights for SuggestTemplates.
const (
	suggestPriorityWeight   = 0.2
	suggestLanguageWeight   = 0.3
	suggestBodyWeight       = 0.4
	suggestTagWeight        = 0.3
	suggestTopicWeight      = 0.2
	suggestDepartmentWeight = 0.2
)

// TemplateSuggestion pairs a template with its relevance to a user and
// the first reason that contributed to it.
type TemplateSuggestion struct {
	Template  core.QuestionTemplate
	Relevance float64
	Reason    string
}

// SuggestTemplates ranks templates for a user and an optional query
// fragment. Relevance combines template priority, language match, body
// and tag matches against the query text, overlap with the user's
// recent topics and a department tag match, capped at 1. The reason is
// the first satisfied criterion.
func (l *Library) SuggestTemplates(user *core.UserContext, queryText string, max int) []TemplateSuggestion {
	if max <= 0 {
		max = DefaultMaxMatches
	}
	words := queryWords(queryText)

	l.mu.RLock()
	defer l.mu.RUnlock()

	var suggestions []TemplateSuggestion
	for _, id := range l.order {
		tpl := l.templates[id]
		relevance := suggestPriorityWeight * float64(tpl.Priority) / 5
		reason := "popular template"

		if user != nil && user.Preferences.Language != "" && tpl.Language == user.Preferences.Language {
			relevance += suggestLanguageWeight
			reason = "matches your language"
		}
		if len(words) > 0 && anyWordIn(strings.ToLower(tpl.Template), words) {
			relevance += suggestBodyWeight
			if reason == "popular template" {
				reason = "matches your query"
			}
		}
		if len(words) > 0 && anyTagMatches(tpl.Tags, words) {
			relevance += suggestTagWeight
			if reason == "popular template" {
				reason = "tagged like your query"
			}
		}
		if user != nil && topicsOverlap(tpl, user.RecentActivity.Topics) {
			relevance += suggestTopicWeight
			if reason == "popular template" {
				reason = "related to your recent topics"
			}
		}
		if user != nil && user.Department != "" && hasTag(tpl.Tags, user.Department) {
			relevance += suggestDepartmentWeight
			if reason == "popular template" {
				reason = "matches your department"
			}
		}

		suggestions = append(suggestions, TemplateSuggestion{
			Template:  tpl,
			Relevance: core.Clamp01(relevance),
			Reason:    reason,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Relevance > suggestions[j].Relevance
	})
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions
}

// PersonalizeTemplate returns a copy of the template with guessable
// parameters filled from the user's preferences, rendered in brackets
// so the substitution is visible. The stored template is untouched.
func (l *Library) PersonalizeTemplate(id string, user *core.UserContext) (core.QuestionTemplate, error) {
	tpl, err := l.Get(id)
	if err != nil {
		return core.QuestionTemplate{}, err
	}
	if user == nil {
		return tpl, nil
	}

	body := tpl.Template
	for _, p := range tpl.Parameters {
		var guess string
		switch p.Name {
		case "type":
			if len(user.Preferences.DocumentTypes) > 0 {
				guess = user.Preferences.DocumentTypes[0]
			}
		case "topic":
			if len(user.RecentActivity.Topics) > 0 {
				guess = user.RecentActivity.Topics[0]
			}
		case "author":
			guess = user.ID
		}
		if guess != "" {
			body = strings.ReplaceAll(body, "{"+p.Name+"}", "["+guess+"]")
		}
	}
	tpl.Template = body
	return tpl, nil
}

func anyWordIn(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func anyTagMatches(tags []string, words []string) bool {
	for _, tag := range tags {
		tagLower := strings.ToLower(tag)
		for _, word := range words {
			if strings.Contains(tagLower, word) || strings.Contains(word, tagLower) {
				return true
			}
		}
	}
	return false
}

func topicsOverlap(tpl core.QuestionTemplate, topics []string) bool {
	body := strings.ToLower(tpl.Template)
	for _, topic := range topics {
		topicLower := strings.ToLower(topic)
		if strings.Contains(body, topicLower) || hasTag(tpl.Tags, topicLower) {
			return true
		}
	}
	return false
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}
