package expand

// seedSynonymsEN is the default English synonym dictionary, keyed by
// lowercase term.
var seedSynonymsEN = map[string][]string{
	"document":  {"file", "record", "paper"},
	"documents": {"files", "records", "papers"},
	"report":    {"summary", "analysis"},
	"reports":   {"summaries", "analyses"},
	"contract":  {"agreement"},
	"contracts": {"agreements"},
	"invoice":   {"bill"},
	"search":    {"find", "lookup"},
	"find":      {"locate", "search"},
	"new":       {"recent", "latest"},
	"old":       {"previous", "archived"},
	"delete":    {"remove"},
	"budget":    {"financial plan"},
	"meeting":   {"session"},
	"policy":    {"guideline", "procedure"},
	"employee":  {"staff member"},
	"customer":  {"client"},
}

// seedSynonymsAR is the default Arabic synonym dictionary.
var seedSynonymsAR = map[string][]string{
	"مستند": {"وثيقة", "ملف"},
	"مستندات": {"وثائق", "ملفات"},
	"تقرير": {"ملخص"},
	"عقد":   {"اتفاقية"},
	"بحث":   {"استعلام"},
	"جديد":  {"حديث"},
	"قديم":  {"سابق"},
	"موظف":  {"عامل"},
	"عميل":  {"زبون"},
}

// seedAcronyms is the default acronym dictionary, keyed by uppercase
// acronym. Corpus analysis learns additional entries from
// "<expansion> (ACRONYM)" definitions.
var seedAcronyms = map[string]string{
	"AI":  "artificial intelligence",
	"ML":  "machine learning",
	"HR":  "human resources",
	"IT":  "information technology",
	"KPI": "key performance indicator",
	"ROI": "return on investment",
	"SLA": "service level agreement",
	"FAQ": "frequently asked questions",
	"CEO": "chief executive officer",
	"API": "application programming interface",
}
