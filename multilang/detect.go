package multilang

import (
	"strings"
	"unicode"

	"github.com/docuseek/nlq/core"
)

// isArabicRune reports whether r belongs to an Arabic script block.
func isArabicRune(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

// isLatinRune reports whether r is a Latin letter.
func isLatinRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// tokenLanguage classifies a whitespace token by the letters it contains.
// Returns "" for tokens with no letters (numbers, punctuation).
func tokenLanguage(token string) core.Language {
	for _, r := range token {
		if isArabicRune(r) {
			return core.LanguageArabic
		}
		if isLatinRune(r) {
			return core.LanguageEnglish
		}
	}
	return ""
}

// DetectLanguage segments text into contiguous same-script runs and
// reports the overall language.
//
// Text with no letters at all falls back to {en, 0.5}. Single-script text
// reports that language with confidence scaled by how much of the text the
// script's letters cover. Text containing both scripts reports
// core.LanguageMixed with the ordered per-run segments.
func (p *Processor) DetectLanguage(text string) core.LanguageDetectionResult {
	tokens := strings.Fields(text)

	var segments []core.LanguageSegment
	var pending []string // letterless tokens awaiting a language
	letterCount := 0
	totalCount := 0
	hasArabic := false
	hasEnglish := false

	appendToken := func(lang core.Language, token string) {
		if len(segments) > 0 && segments[len(segments)-1].Language == lang {
			segments[len(segments)-1].Text += " " + token
			return
		}
		segments = append(segments, core.LanguageSegment{Language: lang, Text: token})
	}

	for _, token := range tokens {
		for _, r := range token {
			if !unicode.IsSpace(r) {
				totalCount++
			}
			if isArabicRune(r) || isLatinRune(r) {
				letterCount++
			}
		}

		lang := tokenLanguage(token)
		if lang == "" {
			// Attach to the current run if one exists, otherwise hold
			// until the next language-bearing token.
			if len(segments) > 0 {
				segments[len(segments)-1].Text += " " + token
			} else {
				pending = append(pending, token)
			}
			continue
		}

		if lang == core.LanguageArabic {
			hasArabic = true
		} else {
			hasEnglish = true
		}

		for _, held := range pending {
			appendToken(lang, held)
		}
		pending = nil
		appendToken(lang, token)
	}

	if !hasArabic && !hasEnglish {
		result := core.LanguageDetectionResult{
			Language:   core.LanguageEnglish,
			Confidence: 0.5,
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			result.Segments = []core.LanguageSegment{{Language: core.LanguageEnglish, Text: trimmed}}
		}
		return result
	}

	confidence := 0.5
	if totalCount > 0 {
		confidence = core.Clamp01(float64(letterCount) / float64(totalCount))
	}

	language := core.LanguageEnglish
	switch {
	case hasArabic && hasEnglish:
		language = core.LanguageMixed
	case hasArabic:
		language = core.LanguageArabic
	}

	return core.LanguageDetectionResult{
		Language:   language,
		Confidence: confidence,
		Segments:   segments,
	}
}
