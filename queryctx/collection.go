package queryctx

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/docuseek/nlq/core"
)

const (
	maxAccessedDocuments = 10
	maxCommonTerms       = 20
	minCommonTermLength  = 4
)

var collectionTokenRe = regexp.MustCompile(`[A-Za-z0-9]+|[\x{0600}-\x{06FF}]+`)

var collectionStopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"were": true, "been": true, "will": true, "them": true, "they": true,
	"then": true, "than": true, "what": true, "when": true, "where": true,
	"which": true, "there": true, "their": true, "about": true, "into": true,
	"also": true, "more": true, "over": true, "such": true, "only": true,
}

// UpdateCollection derives a fresh collection snapshot from the given
// documents and installs it, replacing any previous snapshot wholesale.
func (m *Manager) UpdateCollection(docs []core.DocumentSearchResult, now time.Time) *core.DocumentCollectionContext {
	snapshot := buildCollectionContext(docs, now)
	m.mu.Lock()
	m.collection = snapshot
	m.mu.Unlock()
	m.logger.Debug("collection context updated",
		"documents", snapshot.TotalDocuments,
		"types", len(snapshot.DocumentTypes))
	return snapshot
}

// SetCollectionContext installs a precomputed snapshot.
func (m *Manager) SetCollectionContext(snapshot *core.DocumentCollectionContext) {
	m.mu.Lock()
	m.collection = snapshot
	m.mu.Unlock()
}

// CollectionContext returns the current snapshot, or nil when none has
// been installed.
func (m *Manager) CollectionContext() *core.DocumentCollectionContext {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collection
}

func buildCollectionContext(docs []core.DocumentSearchResult, now time.Time) *core.DocumentCollectionContext {
	snapshot := &core.DocumentCollectionContext{
		TotalDocuments:       len(docs),
		DocumentTypes:        make(map[string]int),
		CommonTerms:          make(map[string]int),
		LanguageDistribution: make(map[core.Language]int),
	}
	if len(docs) == 0 {
		return snapshot
	}

	authorSeen := make(map[string]bool)
	topicSeen := make(map[string]bool)
	termCounts := make(map[string]int)
	var ageSum float64

	for _, doc := range docs {
		if doc.Type != "" {
			snapshot.DocumentTypes[strings.ToLower(doc.Type)]++
		}
		if doc.Author != "" && !authorSeen[doc.Author] {
			authorSeen[doc.Author] = true
			snapshot.Authors = append(snapshot.Authors, doc.Author)
		}
		for _, tag := range doc.Tags {
			if tag != "" && !topicSeen[tag] {
				topicSeen[tag] = true
				snapshot.Topics = append(snapshot.Topics, tag)
			}
		}
		if !doc.CreatedAt.IsZero() {
			ageSum += now.Sub(doc.CreatedAt).Hours() / 24
		}
		snapshot.LanguageDistribution[doc.Language]++
		countTerms(termCounts, doc.Title)
		countTerms(termCounts, doc.Content)
	}
	snapshot.AverageDocumentAge = ageSum / float64(len(docs))

	for _, term := range topTerms(termCounts, maxCommonTerms) {
		snapshot.CommonTerms[term] = termCounts[term]
	}

	ranked := make([]core.DocumentSearchResult, len(docs))
	copy(ranked, docs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AccessCount > ranked[j].AccessCount
	})
	for i, doc := range ranked {
		if i == maxAccessedDocuments {
			break
		}
		snapshot.MostAccessedDocuments = append(snapshot.MostAccessedDocuments, core.DocumentAccess{
			ID:          doc.ID,
			Title:       doc.Title,
			AccessCount: doc.AccessCount,
		})
	}

	return snapshot
}

func countTerms(counts map[string]int, text string) {
	for _, token := range collectionTokenRe.FindAllString(strings.ToLower(text), -1) {
		if len([]rune(token)) < minCommonTermLength || collectionStopwords[token] {
			continue
		}
		counts[token]++
	}
}

// topTerms returns up to max keys ordered by descending count; ties break
// alphabetically so the order is stable.
func topTerms(counts map[string]int, max int) []string {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > max {
		terms = terms[:max]
	}
	return terms
}

// topDocumentTypes orders a type histogram the same way.
func topDocumentTypes(counts map[string]int, max int) []string {
	return topTerms(counts, max)
}
