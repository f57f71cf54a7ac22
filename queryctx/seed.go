package queryctx

import "github.com/docuseek/nlq/core"

// seedCatalog is the default organizational context catalog.
func seedCatalog() []core.OrganizationalContext {
	return []core.OrganizationalContext{
		{
			ID:   "finance",
			Name: "Finance",
			Type: "department",
			Terminology: map[string][]string{
				"invoice": {"bill", "receipt"},
				"budget":  {"financial plan", "allocation"},
				"expense": {"cost", "expenditure"},
				"revenue": {"income", "earnings"},
			},
			CommonQueries: []string{
				"quarterly budget report",
				"unpaid invoices",
				"expense summary",
			},
			DocumentTypes: []string{"invoice", "report", "excel"},
		},
		{
			ID:   "hr",
			Name: "Human Resources",
			Type: "department",
			Terminology: map[string][]string{
				"employee": {"staff member", "personnel"},
				"policy":   {"guideline", "procedure"},
				"leave":    {"vacation", "time off"},
				"contract": {"employment agreement"},
			},
			CommonQueries: []string{
				"employee handbook",
				"leave policy",
				"onboarding checklist",
			},
			DocumentTypes: []string{"word", "pdf"},
		},
		{
			ID:   "legal",
			Name: "Legal",
			Type: "department",
			Terminology: map[string][]string{
				"contract":   {"agreement", "covenant"},
				"liability":  {"obligation"},
				"compliance": {"regulatory adherence"},
			},
			CommonQueries: []string{
				"signed contracts",
				"compliance checklist",
			},
			DocumentTypes: []string{"pdf", "word"},
		},
		{
			ID:   "engineering",
			Name: "Engineering",
			Type: "department",
			Terminology: map[string][]string{
				"design":   {"specification", "blueprint"},
				"incident": {"outage", "failure"},
				"release":  {"deployment", "rollout"},
			},
			CommonQueries: []string{
				"design documents",
				"incident reports",
				"release notes",
			},
			DocumentTypes: []string{"pdf", "report"},
		},
	}
}
