package templates

import (
	"sort"
	"strings"

	"github.com/docuseek/nlq/core"
)

// Field weights for SearchTemplates.
const (
	weightBody        = 0.6
	weightTitle       = 0.5
	weightDescription = 0.3
	weightTags        = 0.4
	weightExamples    = 0.2
)

// DefaultMaxMatches bounds SearchTemplates and SuggestTemplates results.
const DefaultMaxMatches = 5

// SearchTemplates scores every template against the query with weighted
// substring matching across the template body, title, description, tags
// and examples. Only templates with a positive score are returned,
// sorted by descending score and truncated to max. Each match carries
// the matched words and tags as evidence.
func (l *Library) SearchTemplates(query string, max int) []core.TemplateMatch {
	if max <= 0 {
		max = DefaultMaxMatches
	}
	words := queryWords(query)
	if len(words) == 0 {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var matches []core.TemplateMatch
	for _, id := range l.order {
		tpl := l.templates[id]
		match := scoreTemplate(tpl, words)
		if match.Score > 0 {
			matches = append(matches, match)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > max {
		matches = matches[:max]
	}
	return matches
}

func scoreTemplate(tpl core.QuestionTemplate, words []string) core.TemplateMatch {
	match := core.TemplateMatch{Template: tpl}
	total := float64(len(words))

	var bodyHits, titleHits, descHits, exampleHits float64
	for _, word := range words {
		if strings.Contains(strings.ToLower(tpl.Template), word) {
			bodyHits++
			match.MatchedText = append(match.MatchedText, word)
		}
		if strings.Contains(strings.ToLower(tpl.Title), word) {
			titleHits++
		}
		if strings.Contains(strings.ToLower(tpl.Description), word) {
			descHits++
		}
		for _, example := range tpl.Examples {
			if strings.Contains(strings.ToLower(example), word) {
				exampleHits++
				break
			}
		}
	}

	var tagHits float64
	for _, tag := range tpl.Tags {
		tagLower := strings.ToLower(tag)
		for _, word := range words {
			if strings.Contains(tagLower, word) || strings.Contains(word, tagLower) {
				tagHits++
				match.MatchedTags = append(match.MatchedTags, tag)
				break
			}
		}
	}

	score := weightBody*(bodyHits/total) +
		weightTitle*(titleHits/total) +
		weightDescription*(descHits/total) +
		weightExamples*(exampleHits/total)
	if len(tpl.Tags) > 0 {
		score += weightTags * (tagHits / float64(len(tpl.Tags)))
	}
	match.Score = core.Clamp01(score)
	return match
}

// queryWords lowercases and splits a query, dropping single-rune tokens.
func queryWords(query string) []string {
	var words []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		field = strings.Trim(field, ".,!?;:")
		if len([]rune(field)) > 1 {
			words = append(words, field)
		}
	}
	return words
}
