package expand

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docuseek/nlq/core"
)

// Corpus analysis thresholds.
const (
	minTokenLength    = 2
	clusterMinFreq    = 3 // terms below this frequency get no cluster
	clusterMinCooccur = 2
	clusterSize       = 5
)

// tokenRe matches alphanumeric or Arabic runs.
var tokenRe = regexp.MustCompile(`[A-Za-z0-9]+|[\x{0600}-\x{06FF}]+`)

// technicalPatterns flag technical terms lexically. They are applied to
// original-case text; matched terms are stored lowercased.
var technicalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z]{2,6}\b`),                            // acronyms
	regexp.MustCompile(`\b\w+\.(?:pdf|docx?|xlsx?|pptx?|txt|csv|json|xml)\b`), // file extensions
	regexp.MustCompile(`\b[a-z0-9-]+\.(?:com|org|net|io|gov|edu)\b`),          // domains
	regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),              // IPv4
	regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`), // UUID
	regexp.MustCompile(`https?://[^\s]+`),                           // URLs
	regexp.MustCompile(`\b[A-Z][a-z0-9]+(?:[A-Z][a-z0-9]+)+\b`),     // CamelCase
	regexp.MustCompile(`\b[a-z0-9]+_[a-z0-9_]+\b`),                  // snake_case
	regexp.MustCompile(`\b[a-z0-9]+-[a-z0-9-]+\b`),                  // kebab-case
}

// acronymDefRe matches "<expansion> (ACRONYM)" definitions.
var acronymDefRe = regexp.MustCompile(`([A-Za-z][a-z]+(?: [A-Za-z][a-z]+)*) \(([A-Z]{2,6})\)`)

// corpusStats is an immutable snapshot of corpus-derived statistics,
// replaced wholesale by AnalyzeCorpus.
type corpusStats struct {
	termFreq  map[string]int
	technical map[string]bool
	acronyms  map[string]string   // ACRONYM -> expansion
	clusters  map[string][]string // term -> top co-occurring terms
}

// AnalyzeCorpus rebuilds the expander's corpus statistics from document
// snapshots. Title and content are tokenized into alphanumeric or Arabic
// runs of at least two characters; term frequencies and adjacent-term
// co-occurrence feed concept clusters for terms seen at least three times.
func (e *Expander) AnalyzeCorpus(docs []core.DocumentSearchResult) {
	stats := &corpusStats{
		termFreq:  make(map[string]int),
		technical: make(map[string]bool),
		acronyms:  make(map[string]string),
		clusters:  make(map[string][]string),
	}
	cooccur := make(map[string]map[string]int)

	for _, doc := range docs {
		text := doc.Title + " " + doc.Content

		// Technical flags and acronym definitions see original case.
		for _, re := range technicalPatterns {
			for _, m := range re.FindAllString(text, -1) {
				stats.technical[strings.ToLower(m)] = true
			}
		}
		for _, groups := range acronymDefRe.FindAllStringSubmatch(text, -1) {
			stats.acronyms[groups[2]] = strings.ToLower(groups[1])
		}

		tokens := tokenize(text)
		for i, token := range tokens {
			stats.termFreq[token]++
			if i > 0 {
				prev := tokens[i-1]
				if prev == token {
					continue
				}
				addCooccurrence(cooccur, prev, token)
				addCooccurrence(cooccur, token, prev)
			}
		}
	}

	for term, freq := range stats.termFreq {
		if freq < clusterMinFreq {
			continue
		}
		stats.clusters[term] = topCooccurring(cooccur[term], clusterSize, clusterMinCooccur)
	}

	e.mu.Lock()
	e.corpus = stats
	e.mu.Unlock()

	e.logger.Debug("corpus analyzed",
		"documents", len(docs),
		"terms", len(stats.termFreq),
		"technical", len(stats.technical),
		"acronyms", len(stats.acronyms))
}

func tokenize(text string) []string {
	raw := tokenRe.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if len([]rune(t)) < minTokenLength {
			continue
		}
		tokens = append(tokens, strings.ToLower(t))
	}
	return tokens
}

func addCooccurrence(cooccur map[string]map[string]int, term, neighbor string) {
	m := cooccur[term]
	if m == nil {
		m = make(map[string]int)
		cooccur[term] = m
	}
	m[neighbor]++
}

// topCooccurring returns up to limit neighbors with count >= minCount,
// most frequent first.
func topCooccurring(counts map[string]int, limit, minCount int) []string {
	type pair struct {
		term  string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for term, count := range counts {
		if count >= minCount {
			pairs = append(pairs, pair{term, count})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].term < pairs[j].term
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.term
	}
	return out
}
