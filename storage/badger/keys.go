package badger

import "fmt"

// Key prefixes for different record types
const (
	synonymPrefix     = "lexsyn"
	acronymPrefix     = "lexacr"
	translationPrefix = "lextrn"
	usagePrefix       = "tplusg"
)

// makeSynonymKey generates a key for a synonym entry by language and term.
func makeSynonymKey(lang, term string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", synonymPrefix, lang, term))
}

// makeAcronymKey generates a key for an acronym entry.
func makeAcronymKey(acronym string) []byte {
	return []byte(fmt.Sprintf("%s:%s", acronymPrefix, acronym))
}

// makeTranslationKey generates a key for a bilingual pair by its English
// side.
func makeTranslationKey(english string) []byte {
	return []byte(fmt.Sprintf("%s:%s", translationPrefix, english))
}

// makeUsageKey generates a key for a template usage snapshot.
func makeUsageKey(templateID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", usagePrefix, templateID))
}
