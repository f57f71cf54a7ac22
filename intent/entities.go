package intent

import (
	"strings"
	"time"

	"github.com/docuseek/nlq/core"
)

// extractEntities pulls typed entities from the original-case sanitized
// text. Quoted substrings are treated as topic entities. Each value is
// normalized: document types are canonicalized, relative dates become ISO
// dates, everything else is lowercased.
func extractEntities(text string, now time.Time) []core.Entity {
	var entities []core.Entity

	for _, m := range documentTypeRe.FindAllString(text, -1) {
		entities = append(entities, core.Entity{
			Type:       core.EntityDocumentType,
			Value:      m,
			Normalized: normalizeDocumentType(m),
		})
	}

	for _, m := range dateRe.FindAllString(text, -1) {
		entities = append(entities, core.Entity{
			Type:       core.EntityDate,
			Value:      m,
			Normalized: normalizeDate(m, now),
		})
	}

	for _, groups := range authorRe.FindAllStringSubmatch(text, -1) {
		name := groups[1]
		if name == "" {
			continue
		}
		entities = append(entities, core.Entity{
			Type:       core.EntityAuthor,
			Value:      name,
			Normalized: strings.ToLower(name),
		})
	}

	for _, groups := range topicRe.FindAllStringSubmatch(text, -1) {
		topic := groups[1]
		if topic == "" {
			topic = groups[2]
		}
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		entities = append(entities, core.Entity{
			Type:       core.EntityTopic,
			Value:      topic,
			Normalized: strings.ToLower(topic),
		})
	}

	for _, groups := range quotedRe.FindAllStringSubmatch(text, -1) {
		quoted := firstNonEmpty(groups[1:])
		if quoted == "" {
			continue
		}
		entities = append(entities, core.Entity{
			Type:       core.EntityTopic,
			Value:      quoted,
			Normalized: strings.ToLower(quoted),
		})
	}

	return entities
}

func normalizeDocumentType(value string) string {
	if canonical, ok := docTypeCanonical[strings.ToLower(value)]; ok {
		return canonical
	}
	return strings.ToLower(value)
}

// normalizeDate converts relative date expressions to ISO dates anchored
// at now. Absolute dates pass through lowercased.
func normalizeDate(value string, now time.Time) string {
	const iso = "2006-01-02"
	switch strings.ToLower(value) {
	case "today", "اليوم":
		return now.Format(iso)
	case "yesterday", "أمس":
		return now.AddDate(0, 0, -1).Format(iso)
	case "last week", "الأسبوع الماضي":
		return now.AddDate(0, 0, -7).Format(iso)
	case "this week":
		return now.AddDate(0, 0, -int(now.Weekday())).Format(iso)
	case "last month", "الشهر الماضي":
		return now.AddDate(0, -1, 0).Format(iso)
	case "this month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(iso)
	case "this year", "هذا العام":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format(iso)
	}
	return strings.ToLower(value)
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
