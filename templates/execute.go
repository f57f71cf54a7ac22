package templates

import (
	"fmt"
	"strings"

	"github.com/docuseek/nlq/core"
)

// TemplateFilters are search filters derived from recognized parameter
// names during execution.
type TemplateFilters struct {
	DocumentTypes []string
	Authors       []string
	Status        []string
}

// ExecutedTemplate is the result of filling a template's placeholders.
type ExecutedTemplate struct {
	TemplateID string
	Query      string
	Filters    TemplateFilters
}

// ExecuteTemplate substitutes every {name} placeholder in the template
// with the supplied parameter value. A missing or empty required
// parameter is a validation error. Recognized parameter names also
// populate the derived filters: type feeds documentTypes (lowercased),
// author feeds authors, status feeds status.
func (l *Library) ExecuteTemplate(id string, params map[string]string) (*ExecutedTemplate, error) {
	tpl, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	for _, p := range tpl.Parameters {
		if p.Required && strings.TrimSpace(params[p.Name]) == "" {
			return nil, fmt.Errorf("%w: template %q parameter %q", core.ErrMissingParameter, id, p.Name)
		}
	}

	query := tpl.Template
	out := &ExecutedTemplate{TemplateID: id}
	for _, p := range tpl.Parameters {
		value := params[p.Name]
		query = strings.ReplaceAll(query, "{"+p.Name+"}", value)
		if value == "" {
			continue
		}
		switch p.Name {
		case "type":
			out.Filters.DocumentTypes = append(out.Filters.DocumentTypes, strings.ToLower(value))
		case "author":
			out.Filters.Authors = append(out.Filters.Authors, value)
		case "status":
			out.Filters.Status = append(out.Filters.Status, strings.ToLower(value))
		}
	}
	out.Query = strings.Join(strings.Fields(query), " ")

	l.logger.Debug("template executed", "template", id, "query", out.Query)
	return out, nil
}
