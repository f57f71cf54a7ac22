package refine

import (
	"strings"

	"github.com/docuseek/nlq/core"
)

// Words that make a query hard to act on.
var ambiguousWords = map[string]bool{
	"stuff":     true,
	"things":    true,
	"something": true,
	"anything":  true,
	"it":        true,
	"that":      true,
	"whatever":  true,
	"etc":       true,
}

// analyze scores the query itself and the results it produced. All
// scores are heuristic and clamped to [0,1].
func analyze(text string, intent *core.QueryIntent, results []core.DocumentSearchResult) core.RefinementAnalysis {
	return core.RefinementAnalysis{
		QueryQuality:  queryQuality(text, intent),
		ResultQuality: resultQuality(results),
	}
}

func queryQuality(text string, intent *core.QueryIntent) core.QualityScores {
	words := strings.Fields(strings.ToLower(text))
	entityCount := 0
	if intent != nil {
		entityCount = len(intent.Entities)
	}

	specificity := 0.2 + 0.08*float64(len(words)) + 0.15*float64(entityCount)

	clarity := 0.9
	if len(words) < 3 {
		clarity -= 0.3
	}
	for _, w := range words {
		if ambiguousWords[strings.Trim(w, ".,!?")] {
			clarity -= 0.2
		}
	}

	completeness := 0.15 * float64(len(words))
	if entityCount > 0 {
		completeness += 0.2
	}
	if intent != nil && intent.Type != core.IntentSearch {
		// A non-default intent means the query carried an explicit verb
		// or aggregation cue.
		completeness += 0.1
	}

	return core.QualityScores{
		Specificity:  core.Clamp01(specificity),
		Clarity:      core.Clamp01(clarity),
		Completeness: core.Clamp01(completeness),
	}
}

func resultQuality(results []core.DocumentSearchResult) core.ResultScores {
	if len(results) == 0 {
		return core.ResultScores{}
	}

	var scoreSum float64
	types := make(map[string]bool)
	authors := make(map[string]bool)
	for _, r := range results {
		scoreSum += core.Clamp01(r.Score)
		if r.Type != "" {
			types[strings.ToLower(r.Type)] = true
		}
		if r.Author != "" {
			authors[r.Author] = true
		}
	}

	n := float64(len(results))
	diversity := (float64(len(types)) + float64(len(authors))) / (2 * n)

	return core.ResultScores{
		Relevance: core.Clamp01(scoreSum / n),
		Coverage:  core.Clamp01(n / 20),
		Diversity: core.Clamp01(diversity),
	}
}

// distinctTypes returns the distinct lowercased document types in order
// of first appearance.
func distinctTypes(results []core.DocumentSearchResult) []string {
	seen := make(map[string]bool)
	var types []string
	for _, r := range results {
		t := strings.ToLower(r.Type)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}
	return types
}

// distinctAuthors returns the distinct authors in order of first
// appearance.
func distinctAuthors(results []core.DocumentSearchResult) []string {
	seen := make(map[string]bool)
	var authors []string
	for _, r := range results {
		if r.Author == "" || seen[r.Author] {
			continue
		}
		seen[r.Author] = true
		authors = append(authors, r.Author)
	}
	return authors
}
