package refine

import (
	"fmt"
	"strings"

	"github.com/docuseek/nlq/core"
)

// Generator thresholds.
const (
	manyResults        = 10
	tooManyResults     = 20
	fewResults         = 5
	minAuthorsForChips = 2
	maxAuthorsForChips = 5
	maxAuthorChips     = 3
	lowClarity         = 0.5
	maxRephrases       = 2
)

// Follow-up priorities on the 0..9 scale.
const (
	priorityNoResults      = 9
	priorityTooManyResults = 7
	priorityTypeChoice     = 6
	priorityRelatedTopic   = 5
	prioritySatisfaction   = 4
)

// generateRefinements builds the full replacement suggestion list for
// the latest query.
func generateRefinements(text string, intent *core.QueryIntent, results []core.DocumentSearchResult, previous *core.SessionQuery, user *core.UserContext, analysis core.RefinementAnalysis) []core.RefinementSuggestion {
	var out []core.RefinementSuggestion
	out = append(out, filterSuggestions(results)...)
	out = append(out, expansionSuggestions(intent, results, user)...)
	out = append(out, narrowingSuggestions(text, results, previous)...)
	out = append(out, rephraseSuggestions(text)...)
	out = append(out, clarificationSuggestions(text, analysis)...)
	return out
}

func filterSuggestions(results []core.DocumentSearchResult) []core.RefinementSuggestion {
	var out []core.RefinementSuggestion

	if types := distinctTypes(results); len(types) > 1 {
		for _, t := range types {
			out = append(out, core.RefinementSuggestion{
				Type:       core.RefinementFilter,
				Suggestion: fmt.Sprintf("Show only %s documents", t),
				Value:      "type:" + t,
				Confidence: 0.8,
			})
		}
	}

	if len(results) > manyResults {
		out = append(out, core.RefinementSuggestion{
			Type:       core.RefinementFilter,
			Suggestion: "Limit to recently modified documents",
			Value:      "modified:last-month",
			Confidence: 0.7,
		})
	}

	if authors := distinctAuthors(results); len(authors) >= minAuthorsForChips && len(authors) <= maxAuthorsForChips {
		for i, a := range authors {
			if i == maxAuthorChips {
				break
			}
			out = append(out, core.RefinementSuggestion{
				Type:       core.RefinementFilter,
				Suggestion: fmt.Sprintf("Show only documents by %s", a),
				Value:      "author:" + a,
				Confidence: 0.6,
			})
		}
	}

	return out
}

func expansionSuggestions(intent *core.QueryIntent, results []core.DocumentSearchResult, user *core.UserContext) []core.RefinementSuggestion {
	var out []core.RefinementSuggestion

	if intent != nil && len(results) < fewResults && len(intent.Entities) > 2 {
		last := intent.Entities[len(intent.Entities)-1]
		out = append(out, core.RefinementSuggestion{
			Type:       core.RefinementExpansion,
			Suggestion: fmt.Sprintf("Broaden the search by dropping %q", last.Value),
			Value:      last.Value,
			Confidence: 0.7,
		})
	}

	if user != nil && len(user.RecentActivity.Topics) > 0 {
		topic := user.RecentActivity.Topics[0]
		out = append(out, core.RefinementSuggestion{
			Type:       core.RefinementExpansion,
			Suggestion: fmt.Sprintf("Include your recent topic %q", topic),
			Value:      topic,
			Confidence: 0.6,
		})
	}

	return out
}

func narrowingSuggestions(text string, results []core.DocumentSearchResult, previous *core.SessionQuery) []core.RefinementSuggestion {
	var out []core.RefinementSuggestion

	if len(results) > tooManyResults {
		out = append(out,
			core.RefinementSuggestion{
				Type:       core.RefinementNarrowing,
				Suggestion: "Add more specific terms to narrow the results",
				Value:      "",
				Confidence: 0.7,
			},
			core.RefinementSuggestion{
				Type:       core.RefinementNarrowing,
				Suggestion: "Search for the exact phrase",
				Value:      fmt.Sprintf("%q", text),
				Confidence: 0.65,
			})
	}

	if previous != nil && sharesTerm(text, previous.Text) {
		out = append(out, core.RefinementSuggestion{
			Type:       core.RefinementNarrowing,
			Suggestion: "Combine with your previous query",
			Value:      mergeQueries(previous.Text, text),
			Confidence: 0.6,
		})
	}

	return out
}

// rephraseSuggestions emits up to two mechanical rewrites plus a
// question form.
func rephraseSuggestions(text string) []core.RefinementSuggestion {
	var out []core.RefinementSuggestion
	lower := strings.ToLower(text)

	rewrites := 0
	for _, rule := range []struct{ from, to string }{
		{"show me", "find"},
		{"i want", "find"},
		{"i need", "find"},
		{"give me", "list"},
	} {
		if rewrites == maxRephrases {
			break
		}
		if strings.Contains(lower, rule.from) {
			out = append(out, core.RefinementSuggestion{
				Type:       core.RefinementRephrase,
				Suggestion: fmt.Sprintf("Say %q instead of %q", rule.to, rule.from),
				Value:      strings.Replace(lower, rule.from, rule.to, 1),
				Confidence: 0.5,
			})
			rewrites++
		}
	}

	subject := strings.TrimSpace(strings.NewReplacer(
		"show me", "", "find", "", "i want", "", "i need", "", "give me", "", "list", "",
	).Replace(lower))
	if subject != "" {
		out = append(out, core.RefinementSuggestion{
			Type:       core.RefinementRephrase,
			Suggestion: "Try asking it as a question",
			Value:      fmt.Sprintf("what documents relate to %s?", subject),
			Confidence: 0.45,
		})
	}

	return out
}

func clarificationSuggestions(text string, analysis core.RefinementAnalysis) []core.RefinementSuggestion {
	words := strings.Fields(strings.ToLower(text))
	if analysis.QueryQuality.Clarity >= lowClarity && len(words) >= 3 {
		return nil
	}

	var out []core.RefinementSuggestion
	for _, w := range words {
		if ambiguousWords[strings.Trim(w, ".,!?")] {
			out = append(out, core.RefinementSuggestion{
				Type:       core.RefinementClarification,
				Suggestion: fmt.Sprintf("Replace the vague term %q with what you mean", w),
				Value:      "",
				Confidence: 0.6,
			})
		}
	}
	if len(out) == 0 {
		out = append(out, core.RefinementSuggestion{
			Type:       core.RefinementClarification,
			Suggestion: "Add more context, such as a topic, author or date",
			Value:      "",
			Confidence: 0.6,
		})
	}
	return out
}

// generateFollowUps builds the replacement follow-up list for the
// session's latest query.
func generateFollowUps(text string, results []core.DocumentSearchResult, session *core.QuerySession) []core.FollowUpQuestion {
	var out []core.FollowUpQuestion

	if len(results) == 0 {
		out = append(out, core.FollowUpQuestion{
			Question: "No documents matched. Could you describe what you are looking for differently?",
			Type:     "clarification",
			Priority: priorityNoResults,
		})
	}

	if len(results) > tooManyResults {
		out = append(out, core.FollowUpQuestion{
			Question: fmt.Sprintf("That matched %d documents. Would you like to narrow it down?", len(results)),
			Type:     "narrowing",
			Priority: priorityTooManyResults,
		})
	}

	if types := distinctTypes(results); len(types) > 1 {
		out = append(out, core.FollowUpQuestion{
			Question: fmt.Sprintf("Are you looking for a specific format: %s?", strings.Join(types, ", ")),
			Type:     "disambiguation",
			Priority: priorityTypeChoice,
		})
	}

	if topic := relatedTopic(text, results); topic != "" {
		out = append(out, core.FollowUpQuestion{
			Question: fmt.Sprintf("Would you also like documents about %s?", topic),
			Type:     "related-topic",
			Priority: priorityRelatedTopic,
		})
	}

	if len(session.Queries) > 1 {
		out = append(out, core.FollowUpQuestion{
			Question: "Did the previous results help you find what you needed?",
			Type:     "satisfaction",
			Priority: prioritySatisfaction,
		})
	}

	return out
}

// relatedTopic picks the first result tag not already in the query.
func relatedTopic(text string, results []core.DocumentSearchResult) string {
	lower := strings.ToLower(text)
	for _, r := range results {
		for _, tag := range r.Tags {
			if tag != "" && !strings.Contains(lower, strings.ToLower(tag)) {
				return tag
			}
		}
	}
	return ""
}

// mergeQueries appends the terms of next that prior does not already
// contain.
func mergeQueries(prior, next string) string {
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(prior)) {
		seen[w] = true
	}
	merged := strings.Fields(prior)
	for _, w := range strings.Fields(next) {
		if !seen[strings.ToLower(w)] {
			merged = append(merged, w)
		}
	}
	return strings.Join(merged, " ")
}
