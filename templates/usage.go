package templates

import (
	"sort"
	"time"
)

// maxTrackedUsers bounds the per-template set of observed user IDs.
// Beyond it unique-user counting degrades to an estimate.
const maxTrackedUsers = 100

type usageRecord struct {
	count    int
	users    map[string]struct{}
	overflow int
	lastUsed time.Time
}

// UsageStats summarizes a template's recorded usage. UniqueUsers is
// approximate: once more than maxTrackedUsers distinct users have been
// seen, additional unknown users are estimated, not tracked exactly.
type UsageStats struct {
	TemplateID  string
	Count       int
	UniqueUsers int
	LastUsed    time.Time
}

// RecordUsage increments the template's usage counters. Unknown
// template IDs are ignored so analytics never fail a query path.
func (l *Library) RecordUsage(templateID, userID string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.templates[templateID]; !ok {
		return
	}
	rec := l.usage[templateID]
	if rec == nil {
		rec = &usageRecord{users: make(map[string]struct{})}
		l.usage[templateID] = rec
	}
	rec.count++
	rec.lastUsed = now
	if userID == "" {
		return
	}
	if _, seen := rec.users[userID]; seen {
		return
	}
	if len(rec.users) < maxTrackedUsers {
		rec.users[userID] = struct{}{}
		return
	}
	// The tracked set is full. Every unseen ID past this point bumps the
	// estimate, which overcounts users whose first visit fell after the
	// set filled. Approximate on purpose.
	rec.overflow++
}

// RestoreUsage seeds a template's counters from a persisted snapshot.
// Individual user IDs are not persisted, so the restored unique-user
// estimate lives entirely in the overflow counter. Existing in-memory
// counters for the template are replaced.
func (l *Library) RestoreUsage(stats UsageStats) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.templates[stats.TemplateID]; !ok {
		return
	}
	l.usage[stats.TemplateID] = &usageRecord{
		count:    stats.Count,
		users:    make(map[string]struct{}),
		overflow: stats.UniqueUsers,
		lastUsed: stats.LastUsed,
	}
}

// Usage returns the stats for one template.
func (l *Library) Usage(templateID string) UsageStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.statsLocked(templateID)
}

func (l *Library) statsLocked(templateID string) UsageStats {
	stats := UsageStats{TemplateID: templateID}
	rec := l.usage[templateID]
	if rec == nil {
		return stats
	}
	stats.Count = rec.count
	stats.UniqueUsers = len(rec.users) + rec.overflow
	stats.LastUsed = rec.lastUsed
	return stats
}

// PopularTemplates ranks templates by usage count, ties broken by
// approximate unique users then template ID.
func (l *Library) PopularTemplates(max int) []UsageStats {
	if max <= 0 {
		max = DefaultMaxMatches
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]UsageStats, 0, len(l.usage))
	for id := range l.usage {
		out = append(out, l.statsLocked(id))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].UniqueUsers != out[j].UniqueUsers {
			return out[i].UniqueUsers > out[j].UniqueUsers
		}
		return out[i].TemplateID < out[j].TemplateID
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}
