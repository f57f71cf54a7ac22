package multilang

import (
	"strings"

	"github.com/docuseek/nlq/core"
)

// TranslationResult is the outcome of translating a text.
type TranslationResult struct {
	Text       string
	Source     core.Language
	Target     core.Language
	Confidence float64 // fraction of tokens actually translated
}

// translationKind records how a single token was handled.
type translationKind int

const (
	kindPassthrough translationKind = iota
	kindDictionary
	kindTransliterated
)

// tokenTranslation is a single token's translation with provenance.
type tokenTranslation struct {
	original   string
	translated string
	kind       translationKind
}

// Translate translates text into target. If source is empty it is
// auto-detected. Translating into the source language is the identity
// with confidence 1.0. Unmapped tokens (numbers, symbols, unknown words)
// pass through unchanged; confidence is the fraction of tokens that were
// actually translated.
func (p *Processor) Translate(text string, target, source core.Language) (TranslationResult, error) {
	if err := core.ValidateLanguage(target); err != nil {
		return TranslationResult{}, err
	}

	if source == "" {
		source = p.DetectLanguage(text).Language
	}

	if source == target {
		return TranslationResult{
			Text:       text,
			Source:     source,
			Target:     target,
			Confidence: 1.0,
		}, nil
	}

	tokens := p.translateTokens(text, target)

	parts := make([]string, len(tokens))
	translated := 0
	for i, tok := range tokens {
		parts[i] = tok.translated
		if tok.kind != kindPassthrough {
			translated++
		}
	}

	confidence := 0.0
	if len(tokens) > 0 {
		confidence = float64(translated) / float64(len(tokens))
	}

	return TranslationResult{
		Text:       strings.Join(parts, " "),
		Source:     source,
		Target:     target,
		Confidence: confidence,
	}, nil
}

// translateTokens maps each whitespace token of text into target.
// Two-token phrases are tried before single tokens; the transliteration
// table is the fallback for proper nouns and brands.
func (p *Processor) translateTokens(text string, target core.Language) []tokenTranslation {
	p.mu.RLock()
	defer p.mu.RUnlock()

	dict, translit := p.arToEn, p.translitArEn
	if target == core.LanguageArabic {
		dict, translit = p.enToAr, p.translitEnAr
	}

	words := strings.Fields(text)
	out := make([]tokenTranslation, 0, len(words))

	for i := 0; i < len(words); i++ {
		word := words[i]

		// Tokens already in the target language pass through.
		if tokenLanguage(word) == target {
			out = append(out, tokenTranslation{original: word, translated: word})
			continue
		}

		// Phrase match over a two-token window.
		if i+1 < len(words) {
			phrase := lookupKey(words[i] + " " + words[i+1])
			if mapped, ok := dict[phrase]; ok {
				out = append(out, tokenTranslation{
					original:   words[i] + " " + words[i+1],
					translated: mapped,
					kind:       kindDictionary,
				})
				i++
				continue
			}
		}

		key := lookupKey(word)
		if mapped, ok := dict[key]; ok {
			out = append(out, tokenTranslation{original: word, translated: mapped, kind: kindDictionary})
			continue
		}
		if mapped, ok := translit[key]; ok {
			out = append(out, tokenTranslation{original: word, translated: mapped, kind: kindTransliterated})
			continue
		}

		out = append(out, tokenTranslation{original: word, translated: word})
	}

	return out
}

// lookupKey normalizes a token for dictionary lookup: lowercased with
// edge punctuation trimmed. Arabic keys are stored as written.
func lookupKey(token string) string {
	return strings.ToLower(strings.Trim(token, ".,!?;:'\"()[]{}«»؟،"))
}
