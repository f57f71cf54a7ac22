package templates

import (
	"encoding/json"
	"fmt"

	"github.com/docuseek/nlq/core"
)

type exportEnvelope struct {
	Version   int                     `json:"version"`
	Templates []core.QuestionTemplate `json:"templates"`
}

const exportVersion = 1

// Export serializes the full catalog to JSON in registration order.
func (l *Library) Export() ([]byte, error) {
	l.mu.RLock()
	envelope := exportEnvelope{Version: exportVersion}
	for _, id := range l.order {
		envelope.Templates = append(envelope.Templates, l.templates[id])
	}
	l.mu.RUnlock()
	return json.MarshalIndent(envelope, "", "  ")
}

// ImportResult reports what an import did.
type ImportResult struct {
	Added    int
	Replaced int
	Skipped  int
}

// Import loads templates from an Export payload. Every template is
// validated; a single invalid template fails the whole import before
// anything is applied. Templates whose id already exists are skipped
// unless replace is set.
func (l *Library) Import(data []byte, replace bool) (ImportResult, error) {
	var envelope exportEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ImportResult{}, fmt.Errorf("%w: decode templates: %w", core.ErrValidation, err)
	}
	for i := range envelope.Templates {
		if err := core.ValidateTemplate(&envelope.Templates[i]); err != nil {
			return ImportResult{}, err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var result ImportResult
	for _, tpl := range envelope.Templates {
		if _, exists := l.templates[tpl.ID]; exists {
			if !replace {
				result.Skipped++
				continue
			}
			l.templates[tpl.ID] = tpl
			result.Replaced++
			continue
		}
		l.templates[tpl.ID] = tpl
		l.order = append(l.order, tpl.ID)
		result.Added++
	}
	l.logger.Debug("templates imported",
		"added", result.Added, "replaced", result.Replaced, "skipped", result.Skipped)
	return result, nil
}
