package templates

import "github.com/docuseek/nlq/core"

// seedTemplates is the built-in bilingual template catalog.
func seedTemplates() []core.QuestionTemplate {
	return []core.QuestionTemplate{
		{
			ID:          "find-documents-by-type",
			Category:    "discovery",
			Title:       "Find documents by type",
			Description: "Locate all documents of a given file type",
			Template:    "Find {type} documents",
			Parameters: []core.TemplateParameter{
				{Name: "type", Type: "string", Required: true, Options: []string{"PDF", "Word", "Excel", "Image"}},
			},
			Language: core.LanguageEnglish,
			Examples: []string{"Find PDF documents", "Find Word documents"},
			Tags:     []string{"documents", "type", "search"},
			Priority: 3,
		},
		{
			ID:          "find-documents-by-author",
			Category:    "discovery",
			Title:       "Find documents by author",
			Description: "Locate documents created by a specific person",
			Template:    "Show documents created by {author}",
			Parameters: []core.TemplateParameter{
				{Name: "author", Type: "string", Required: true},
			},
			Language: core.LanguageEnglish,
			Examples: []string{"Show documents created by Ahmed"},
			Tags:     []string{"documents", "author"},
			Priority: 2,
		},
		{
			ID:          "recent-documents",
			Category:    "discovery",
			Title:       "Recent documents",
			Description: "List documents modified within a time window",
			Template:    "Show documents from the last {period}",
			Parameters: []core.TemplateParameter{
				{Name: "period", Type: "string", Required: true, Options: []string{"week", "month", "quarter", "year"}},
			},
			Language: core.LanguageEnglish,
			Examples: []string{"Show documents from the last week"},
			Tags:     []string{"documents", "recent", "date"},
			Priority: 2,
		},
		{
			ID:          "documents-by-status",
			Category:    "workflow",
			Title:       "Documents by status",
			Description: "Find documents in a given workflow status",
			Template:    "List {type} documents with status {status}",
			Parameters: []core.TemplateParameter{
				{Name: "type", Type: "string", Required: false},
				{Name: "status", Type: "string", Required: true, Options: []string{"draft", "review", "approved", "archived"}},
			},
			Language: core.LanguageEnglish,
			Examples: []string{"List report documents with status approved"},
			Tags:     []string{"documents", "status", "workflow"},
			Priority: 1,
		},
		{
			ID:          "count-documents-by-topic",
			Category:    "analytics",
			Title:       "Count documents about a topic",
			Description: "How many documents exist for a topic",
			Template:    "How many documents about {topic} do we have",
			Parameters: []core.TemplateParameter{
				{Name: "topic", Type: "string", Required: true},
			},
			Language: core.LanguageEnglish,
			Examples: []string{"How many documents about security do we have"},
			Tags:     []string{"analytics", "count", "topic"},
			Priority: 1,
		},
		{
			ID:          "find-documents-by-type-ar",
			Category:    "discovery",
			Title:       "البحث عن المستندات حسب النوع",
			Description: "العثور على جميع المستندات من نوع معين",
			Template:    "ابحث عن مستندات {type}",
			Parameters: []core.TemplateParameter{
				{Name: "type", Type: "string", Required: true, Options: []string{"PDF", "Word", "Excel"}},
			},
			Language: core.LanguageArabic,
			Examples: []string{"ابحث عن مستندات PDF"},
			Tags:     []string{"مستندات", "نوع", "بحث"},
			Priority: 3,
		},
		{
			ID:          "find-documents-by-author-ar",
			Category:    "discovery",
			Title:       "البحث عن المستندات حسب المؤلف",
			Description: "العثور على المستندات التي أنشأها شخص معين",
			Template:    "اعرض المستندات من إعداد {author}",
			Parameters: []core.TemplateParameter{
				{Name: "author", Type: "string", Required: true},
			},
			Language: core.LanguageArabic,
			Examples: []string{"اعرض المستندات من إعداد أحمد"},
			Tags:     []string{"مستندات", "مؤلف"},
			Priority: 2,
		},
		{
			ID:          "recent-documents-ar",
			Category:    "discovery",
			Title:       "المستندات الحديثة",
			Description: "عرض المستندات المعدلة خلال فترة زمنية",
			Template:    "اعرض مستندات {period} الماضي",
			Parameters: []core.TemplateParameter{
				{Name: "period", Type: "string", Required: true, Options: []string{"الأسبوع", "الشهر", "العام"}},
			},
			Language: core.LanguageArabic,
			Examples: []string{"اعرض مستندات الأسبوع الماضي"},
			Tags:     []string{"مستندات", "حديث", "تاريخ"},
			Priority: 2,
		},
	}
}
