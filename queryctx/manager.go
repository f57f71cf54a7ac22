package queryctx

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/docuseek/nlq/core"
)

// Manager owns the organizational catalog, the current user context and
// the document-collection snapshot.
// All methods are safe for concurrent use.
type Manager struct {
	mu         sync.RWMutex
	catalog    []core.OrganizationalContext
	user       *core.UserContext
	collection *core.DocumentCollectionContext
	logger     *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithoutSeedCatalog starts the manager with an empty organizational
// catalog instead of the built-in departments.
func WithoutSeedCatalog() Option {
	return func(m *Manager) error {
		m.catalog = nil
		return nil
	}
}

// NewManager creates a context manager seeded with the default
// organizational catalog.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		catalog: seedCatalog(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddOrganizationalContext appends a context to the catalog. This is the
// only way the catalog is mutated.
func (m *Manager) AddOrganizationalContext(octx core.OrganizationalContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = append(m.catalog, octx)
}

// OrganizationalContexts returns a copy of the catalog in order.
func (m *Manager) OrganizationalContexts() []core.OrganizationalContext {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.OrganizationalContext, len(m.catalog))
	copy(out, m.catalog)
	return out
}

// SetUserContext installs the current user. Exactly one user context is
// live at a time; the previous one is replaced.
func (m *Manager) SetUserContext(user *core.UserContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
}

// UserContext returns the current user context, or nil.
func (m *Manager) UserContext() *core.UserContext {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// ActivityUpdate carries one user interaction. Zero-valued fields are
// ignored.
type ActivityUpdate struct {
	Query    string
	Document string
	Topic    string
}

// UpdateUserActivity records an interaction for the current user.
// A no-op unless userID matches the live user context. New entries are
// pushed most-recent-first into the bounded activity lists; queries are
// additionally pushed into the deduplicated search history.
func (m *Manager) UpdateUserActivity(userID string, update ActivityUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil || m.user.ID != userID {
		return
	}

	if update.Query != "" {
		m.user.RecentActivity.Queries = core.PushBounded(
			m.user.RecentActivity.Queries, update.Query, core.MaxRecentQueries)
		m.user.Preferences.SearchHistory = core.PushBoundedUnique(
			m.user.Preferences.SearchHistory, update.Query, core.MaxSearchHistory)
	}
	if update.Document != "" {
		m.user.RecentActivity.Documents = core.PushBounded(
			m.user.RecentActivity.Documents, update.Document, core.MaxRecentDocuments)
	}
	if update.Topic != "" {
		m.user.RecentActivity.Topics = core.PushBounded(
			m.user.RecentActivity.Topics, update.Topic, core.MaxRecentTopics)
	}
}

// GetRelevantContexts returns the organizational contexts relevant to the
// query: the user's own department first, then any other context whose
// terminology (term or synonym) appears in the query or whose common
// queries substring-match it, in catalog order.
func (m *Manager) GetRelevantContexts(query string, user *core.UserContext) []core.OrganizationalContext {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lower := strings.ToLower(query)
	var relevant []core.OrganizationalContext
	seen := make(map[string]bool)

	if user != nil && user.Department != "" {
		for _, octx := range m.catalog {
			if strings.EqualFold(octx.ID, user.Department) || strings.EqualFold(octx.Name, user.Department) {
				relevant = append(relevant, octx)
				seen[octx.ID] = true
				break
			}
		}
	}

	for _, octx := range m.catalog {
		if seen[octx.ID] {
			continue
		}
		if contextMatches(octx, lower) {
			relevant = append(relevant, octx)
			seen[octx.ID] = true
		}
	}

	return relevant
}

func contextMatches(octx core.OrganizationalContext, lowerQuery string) bool {
	for term, synonyms := range octx.Terminology {
		if containsWord(lowerQuery, strings.ToLower(term)) {
			return true
		}
		for _, syn := range synonyms {
			if containsWord(lowerQuery, strings.ToLower(syn)) {
				return true
			}
		}
	}
	for _, common := range octx.CommonQueries {
		commonLower := strings.ToLower(common)
		if strings.Contains(lowerQuery, commonLower) || strings.Contains(commonLower, lowerQuery) {
			return true
		}
	}
	return false
}

// containsWord reports whether text contains word on whole-word
// boundaries.
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || text[start-1] == ' '
		afterOK := end == len(text) || text[end] == ' ' || isEdgePunct(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isEdgePunct(b byte) bool {
	switch b {
	case '.', ',', '!', '?', ';', ':', ')', ']':
		return true
	}
	return false
}
